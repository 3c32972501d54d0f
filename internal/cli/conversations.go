package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/aide-sh/aide/internal/models"
	"github.com/aide-sh/aide/internal/storage"
)

type ConversationListCmd struct {
	Type   string `help:"Filter by conversation type."`
	Limit  int    `help:"Maximum rows to show." default:"10"`
	Offset int    `help:"Rows to skip."`
}

func (c *ConversationListCmd) Run(ctx *Context) error {
	filter := models.ConversationType("")
	if c.Type != "" {
		t, err := parseType(c.Type)
		if err != nil {
			return err
		}
		filter = t
	}

	summaries, err := ctx.Store.ListConversations(filter, c.Limit, c.Offset)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	for _, s := range summaries {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %-14s  %s  %s\n",
			s.ID, s.Type, s.CreatedAt.Format("2006-01-02 15:04"), title)
	}
	return nil
}

type ConversationShowCmd struct {
	ID   string `arg:"" help:"Conversation id."`
	JSON bool   `help:"Emit the full record as JSON."`
}

func (c *ConversationShowCmd) Run(ctx *Context) error {
	conv, err := ctx.Store.LoadConversation(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("conversation %s not found", c.ID)
	}
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(conv, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printConversation(conv)
	return nil
}

type ConversationLatestCmd struct {
	Type string `help:"Filter by conversation type."`
}

func (c *ConversationLatestCmd) Run(ctx *Context) error {
	filter := models.ConversationType("")
	if c.Type != "" {
		t, err := parseType(c.Type)
		if err != nil {
			return err
		}
		filter = t
	}

	conv, err := ctx.Store.GetLatestConversation(filter)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("No conversations found.")
		return nil
	}
	if err != nil {
		return err
	}

	printConversation(conv)
	return nil
}

type ConversationDeleteCmd struct {
	ID  string `arg:"" help:"Conversation id."`
	Yes bool   `help:"Skip the confirmation prompt."`
}

func (c *ConversationDeleteCmd) Run(ctx *Context) error {
	if !c.Yes {
		confirmed := false
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Delete conversation %s?", c.ID)).
			Description("This cannot be undone.").
			Value(&confirmed)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	deleted, err := ctx.Store.DeleteConversation(c.ID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Printf("No conversation with id %s.\n", c.ID)
		return nil
	}
	fmt.Printf("✓ Deleted conversation %s\n", c.ID)
	return nil
}

func printConversation(conv models.Conversation) {
	title := conv.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Printf("%s  [%s]  %s\n", conv.ID, conv.Type, title)
	fmt.Printf("created %s · updated %s · %d messages\n\n",
		conv.CreatedAt.Format("2006-01-02 15:04"),
		conv.UpdatedAt.Format("2006-01-02 15:04"),
		len(conv.Messages))

	for _, m := range conv.Messages {
		speaker := "You"
		if m.Role == models.RoleAssistant {
			speaker = "Assistant"
		}
		fmt.Printf("%s: %s\n\n", speaker, m.Content)
	}
}
