// Package tui implements the interactive chat screen. One
// conversation is open at a time; every completed exchange is saved
// back to the store so a crash never loses more than the in-flight
// reply.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aide-sh/aide/internal/llm"
	"github.com/aide-sh/aide/internal/models"
	"github.com/aide-sh/aide/internal/storage"
)

type Model struct {
	store    *storage.Store
	provider llm.Provider
	conv     models.Conversation

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	waiting  bool
	ready    bool
	quitting bool
	err      error
	width    int
	height   int
}

// NewModel returns a chat screen over an already loaded or freshly
// created conversation.
func NewModel(store *storage.Store, provider llm.Provider, conv models.Conversation) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message (ctrl+c to quit)"
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		store:    store,
		provider: provider,
		conv:     conv,
		textarea: ta,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// replyMsg carries one completed model turn back into Update.
type replyMsg struct {
	content string
	err     error
}

// chatCmd asks the provider for the next turn off the UI goroutine.
func chatCmd(provider llm.Provider, messages []models.Message) tea.Cmd {
	history := make([]models.Message, len(messages))
	copy(history, messages)
	return func() tea.Msg {
		reply, err := provider.Chat(context.Background(), history, nil)
		return replyMsg{content: reply, err: err}
	}
}
