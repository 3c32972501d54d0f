package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aide-sh/aide/internal/llm"
	"github.com/aide-sh/aide/internal/models"
	"github.com/aide-sh/aide/internal/storage"
)

type stubProvider struct{}

func (stubProvider) Initialize(context.Context) error { return nil }
func (stubProvider) Chat(context.Context, []models.Message, llm.Options) (string, error) {
	return "stub reply", nil
}
func (stubProvider) ModelInfo() map[string]string {
	return map[string]string{"provider": "stub", "model": "stub"}
}

func newChatFixture(t *testing.T) (Model, *storage.Store) {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), "conversations.db"))
	if err := store.Open(); err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	id, err := store.CreateConversation(models.ConversationGeneral, "test chat", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	conv, err := store.LoadConversation(id)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	return NewModel(store, stubProvider{}, conv), store
}

func TestReplyAppendsAndPersists(t *testing.T) {
	m, store := newChatFixture(t)
	m.conv.Messages = append(m.conv.Messages, models.Human("hello"))
	m.waiting = true

	updated, _ := m.Update(replyMsg{content: "hi there"})
	m = updated.(Model)

	if m.waiting {
		t.Error("waiting not cleared after reply")
	}
	if n := len(m.conv.Messages); n != 2 {
		t.Fatalf("got %d messages, want 2", n)
	}
	if m.conv.Messages[1].Role != models.RoleAssistant || m.conv.Messages[1].Content != "hi there" {
		t.Errorf("assistant message = %+v", m.conv.Messages[1])
	}

	saved, err := store.LoadConversation(m.conv.ID)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if len(saved.Messages) != 2 {
		t.Errorf("store has %d messages, want 2", len(saved.Messages))
	}
}

func TestReplyErrorDropsUnansweredTurn(t *testing.T) {
	m, store := newChatFixture(t)
	m.conv.Messages = append(m.conv.Messages, models.Human("hello"))
	m.waiting = true

	updated, _ := m.Update(replyMsg{err: errors.New("backend down")})
	m = updated.(Model)

	if m.err == nil {
		t.Error("error not surfaced")
	}
	if len(m.conv.Messages) != 0 {
		t.Errorf("unanswered turn kept: %+v", m.conv.Messages)
	}

	saved, err := store.LoadConversation(m.conv.ID)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if len(saved.Messages) != 0 {
		t.Errorf("store has %d messages, want 0", len(saved.Messages))
	}
}
