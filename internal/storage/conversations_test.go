package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aide-sh/aide/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "data", "conversations.db"))
	if err := s.Open(); err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateConversationAssignsUUID(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateConversation(models.ConversationDailyCheckin, "morning", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a UUID: %v", id, err)
	}

	conv, err := s.LoadConversation(id)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if conv.Type != models.ConversationDailyCheckin {
		t.Errorf("type = %q, want %q", conv.Type, models.ConversationDailyCheckin)
	}
	if conv.Title != "morning" {
		t.Errorf("title = %q, want %q", conv.Title, "morning")
	}
	if len(conv.Messages) != 0 {
		t.Errorf("messages = %d, want 0", len(conv.Messages))
	}
	if !conv.CreatedAt.Equal(conv.UpdatedAt) {
		t.Errorf("created_at %v != updated_at %v on fresh record", conv.CreatedAt, conv.UpdatedAt)
	}
}

func TestConversationMessagesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	messages := []models.Message{
		models.Human("hëllo\nthere 👋"),
		models.Assistant(""),
		models.Human(`with "quotes" and \backslashes\`),
		models.Assistant("line one\nline two"),
	}

	id, err := s.CreateConversation(models.ConversationGeneral, "", messages)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	conv, err := s.LoadConversation(id)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if len(conv.Messages) != len(messages) {
		t.Fatalf("got %d messages, want %d", len(conv.Messages), len(messages))
	}
	for i, m := range messages {
		if conv.Messages[i].Role != m.Role || conv.Messages[i].Content != m.Content {
			t.Errorf("message %d = %+v, want %+v", i, conv.Messages[i], m)
		}
	}
}

func TestSaveConversationBumpsUpdatedAt(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateConversation(models.ConversationRoutine, "first", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	before, _ := s.LoadConversation(id)

	time.Sleep(2 * time.Millisecond)
	if err := s.SaveConversation(id, []models.Message{models.Human("hi")}, ""); err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}

	after, err := s.LoadConversation(id)
	if err != nil {
		t.Fatalf("LoadConversation: %v", err)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updated_at not bumped: before %v, after %v", before.UpdatedAt, after.UpdatedAt)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("created_at changed: before %v, after %v", before.CreatedAt, after.CreatedAt)
	}
	if after.Title != "first" {
		t.Errorf("empty title overwrote existing one: %q", after.Title)
	}

	if err := s.SaveConversation(id, after.Messages, "renamed"); err != nil {
		t.Fatalf("SaveConversation with title: %v", err)
	}
	renamed, _ := s.LoadConversation(id)
	if renamed.Title != "renamed" {
		t.Errorf("title = %q, want %q", renamed.Title, "renamed")
	}
}

func TestSaveConversationUpsertsUnknownID(t *testing.T) {
	s := newTestStore(t)

	id := uuid.New().String()
	messages := []models.Message{models.Human("imported")}
	if err := s.SaveConversation(id, messages, "restored"); err != nil {
		t.Fatalf("SaveConversation: %v", err)
	}

	conv, err := s.LoadConversation(id)
	if err != nil {
		t.Fatalf("LoadConversation after upsert: %v", err)
	}
	if conv.Type != models.ConversationGeneral {
		t.Errorf("upserted type = %q, want %q", conv.Type, models.ConversationGeneral)
	}
	if conv.Title != "restored" {
		t.Errorf("title = %q, want %q", conv.Title, "restored")
	}
	if len(conv.Messages) != 1 || conv.Messages[0].Content != "imported" {
		t.Errorf("messages = %+v", conv.Messages)
	}
}

func TestLoadConversationNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadConversation("no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadConversationRejectsUnknownMessageType(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateConversation(models.ConversationGeneral, "", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	_, err = s.db.Exec(`UPDATE conversations SET messages = ? WHERE id = ?`,
		`[{"type":"SystemMessage","content":"x"}]`, id)
	if err != nil {
		t.Fatalf("corrupting record: %v", err)
	}

	_, err = s.LoadConversation(id)
	if !errors.Is(err, ErrUnknownMessageType) {
		t.Errorf("err = %v, want ErrUnknownMessageType", err)
	}
}

func TestGetLatestConversation(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetLatestConversation("")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("latest on empty store: err = %v, want ErrNotFound", err)
	}

	var last string
	for i := 0; i < 3; i++ {
		id, err := s.CreateConversation(models.ConversationGeneral, fmt.Sprintf("c%d", i), nil)
		if err != nil {
			t.Fatalf("CreateConversation: %v", err)
		}
		last = id
		time.Sleep(2 * time.Millisecond)
	}
	checkinID, err := s.CreateConversation(models.ConversationDailyCheckin, "checkin", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	latest, err := s.GetLatestConversation("")
	if err != nil {
		t.Fatalf("GetLatestConversation: %v", err)
	}
	if latest.ID != checkinID {
		t.Errorf("latest = %s, want %s", latest.ID, checkinID)
	}

	latestGeneral, err := s.GetLatestConversation(models.ConversationGeneral)
	if err != nil {
		t.Fatalf("GetLatestConversation(general): %v", err)
	}
	if latestGeneral.ID != last {
		t.Errorf("latest general = %s, want %s", latestGeneral.ID, last)
	}
}

func TestListConversationsFiltersAndPaginates(t *testing.T) {
	s := newTestStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		typ := models.ConversationGeneral
		if i%2 == 0 {
			typ = models.ConversationRoutine
		}
		id, err := s.CreateConversation(typ, fmt.Sprintf("c%d", i), nil)
		if err != nil {
			t.Fatalf("CreateConversation: %v", err)
		}
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := s.ListConversations("", 10, 0)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("got %d summaries, want 5", len(all))
	}
	if all[0].ID != ids[4] || all[4].ID != ids[0] {
		t.Errorf("summaries not newest-first: %s .. %s", all[0].ID, all[4].ID)
	}

	routines, err := s.ListConversations(models.ConversationRoutine, 10, 0)
	if err != nil {
		t.Fatalf("ListConversations(routine): %v", err)
	}
	if len(routines) != 3 {
		t.Errorf("got %d routine summaries, want 3", len(routines))
	}
	for _, sum := range routines {
		if sum.Type != models.ConversationRoutine {
			t.Errorf("summary %s has type %q", sum.ID, sum.Type)
		}
	}

	page, err := s.ListConversations("", 2, 2)
	if err != nil {
		t.Fatalf("ListConversations paged: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d summaries, want 2", len(page))
	}
	if page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Errorf("page = [%s %s], want [%s %s]", page[0].ID, page[1].ID, ids[2], ids[1])
	}
}

func TestDeleteConversation(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateConversation(models.ConversationGeneral, "", nil)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	deleted, err := s.DeleteConversation(id)
	if err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}
	if !deleted {
		t.Error("first delete reported no row removed")
	}

	if _, err := s.LoadConversation(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("load after delete: err = %v, want ErrNotFound", err)
	}

	deleted, err = s.DeleteConversation(id)
	if err != nil {
		t.Fatalf("repeat DeleteConversation: %v", err)
	}
	if deleted {
		t.Error("repeat delete reported a row removed")
	}
}
