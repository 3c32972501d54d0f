package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aide-sh/aide/internal/models"
	"github.com/aide-sh/aide/internal/storage"
	"github.com/aide-sh/aide/internal/tui"
)

type ChatCmd struct {
	Type   string `help:"Conversation type."`
	Resume string `help:"Conversation id to resume, or 'latest'."`
	Title  string `help:"Title for a new conversation."`
}

func (c *ChatCmd) Run(ctx *Context) error {
	convType, err := parseType(c.Type)
	if err != nil {
		return err
	}
	// An explicit --type narrows 'latest'; otherwise any type matches.
	latestFilter := models.ConversationType("")
	if c.Type != "" {
		latestFilter = convType
	}

	var conv models.Conversation
	switch {
	case c.Resume == "latest":
		conv, err = ctx.Store.GetLatestConversation(latestFilter)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no conversation to resume")
		}
		if err != nil {
			return err
		}
	case c.Resume != "":
		conv, err = ctx.Store.LoadConversation(c.Resume)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("conversation %s not found", c.Resume)
		}
		if err != nil {
			return err
		}
	default:
		id, err := ctx.Store.CreateConversation(convType, c.Title, nil)
		if err != nil {
			return err
		}
		conv, err = ctx.Store.LoadConversation(id)
		if err != nil {
			return err
		}
	}

	provider, err := ctx.Provider()
	if err != nil {
		return err
	}

	program := tea.NewProgram(
		tui.NewModel(ctx.Store, provider, conv),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
