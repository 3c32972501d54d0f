// Package cli holds the kong command implementations. Commands
// receive a shared *Context and return errors for the entrypoint to
// report; terminal output goes straight to stdout the way the command
// produced it.
package cli

import (
	"fmt"
	"strings"

	"github.com/aide-sh/aide/internal/backup"
	"github.com/aide-sh/aide/internal/config"
	"github.com/aide-sh/aide/internal/llm"
	"github.com/aide-sh/aide/internal/logger"
	"github.com/aide-sh/aide/internal/models"
	"github.com/aide-sh/aide/internal/storage"
)

type Context struct {
	Store     *storage.Store
	Config    config.Config
	Workspace string
}

// Provider builds the configured LLM provider. The provider is lazy;
// construction never touches the network.
func (c *Context) Provider() (llm.Provider, error) {
	return llm.New(c.Config)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.Path())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// parseType validates a conversation type flag; empty input means
// general.
func parseType(s string) (models.ConversationType, error) {
	if s == "" {
		return models.ConversationGeneral, nil
	}
	t, err := models.ParseConversationType(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("%w (valid: %s)", err, joinTypes())
	}
	return t, nil
}

func joinTypes() string {
	parts := make([]string, len(models.ConversationTypes))
	for i, t := range models.ConversationTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
