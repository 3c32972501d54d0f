package cli

import (
	"context"
	"fmt"

	"github.com/aide-sh/aide/internal/models"
)

type AskCmd struct {
	Prompt string `arg:"" help:"Question to ask."`
	Type   string `help:"Conversation type to save under." default:"general"`
	Save   bool   `help:"Persist the exchange as a conversation." default:"true" negatable:""`
}

func (c *AskCmd) Run(ctx *Context) error {
	convType, err := parseType(c.Type)
	if err != nil {
		return err
	}

	provider, err := ctx.Provider()
	if err != nil {
		return err
	}

	messages := []models.Message{models.Human(c.Prompt)}
	reply, err := provider.Chat(context.Background(), messages, nil)
	if err != nil {
		return err
	}
	fmt.Println(reply)

	if c.Save {
		messages = append(messages, models.Assistant(reply))
		if _, err := ctx.Store.CreateConversation(convType, "", messages); err != nil {
			return fmt.Errorf("saving conversation: %w", err)
		}
	}
	return nil
}
