package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/aide-sh/aide/internal/keyring"
)

func validKeyProvider(provider string) error {
	switch provider {
	case "openai", "gemini":
		return nil
	default:
		return fmt.Errorf("unknown provider %q (valid: openai, gemini)", provider)
	}
}

// ConfigSetKeyCmd stores a provider API key in the OS keyring
type ConfigSetKeyCmd struct {
	Provider string `arg:"" help:"Provider to store the key for (openai or gemini)."`
	Key      string `arg:"" optional:"" help:"API key. Prompted for when omitted."`
}

func (c *ConfigSetKeyCmd) Run(ctx *Context) error {
	if err := validKeyProvider(c.Provider); err != nil {
		return err
	}

	key := c.Key
	if key == "" {
		prompt := huh.NewInput().
			Title(fmt.Sprintf("API key for %s", c.Provider)).
			EchoMode(huh.EchoModePassword).
			Value(&key)
		if err := prompt.Run(); err != nil {
			return err
		}
	}

	if err := keyring.SetAPIKey(c.Provider, key); err != nil {
		return err
	}
	fmt.Printf("✓ API key for %s stored in OS keyring\n", c.Provider)
	return nil
}

// ConfigClearKeyCmd removes a provider API key from the OS keyring
type ConfigClearKeyCmd struct {
	Provider string `arg:"" help:"Provider to clear the key for (openai or gemini)."`
}

func (c *ConfigClearKeyCmd) Run(ctx *Context) error {
	if err := validKeyProvider(c.Provider); err != nil {
		return err
	}

	err := keyring.DeleteAPIKey(c.Provider)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no API key stored for %s", c.Provider)
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ API key for %s deleted from OS keyring\n", c.Provider)
	return nil
}
