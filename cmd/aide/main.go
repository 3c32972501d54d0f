package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/aide-sh/aide/internal/cli"
	"github.com/aide-sh/aide/internal/config"
	"github.com/aide-sh/aide/internal/keyring"
	"github.com/aide-sh/aide/internal/logger"
	"github.com/aide-sh/aide/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `help:"Database file path." default:"data/conversations.db" env:"AIDE_DB"`
	Workspace string `help:"Directory for PDF output files." default:"pdf_workspace" env:"AIDE_WORKSPACE"`
	Debug     bool   `help:"Enable debug logging."`

	Provider      string `help:"LLM provider: ollama, openai, or gemini." default:"ollama" env:"LLM_PROVIDER"`
	OllamaBaseURL string `help:"Ollama server URL." default:"http://localhost:11434" env:"OLLAMA_BASE_URL"`
	OllamaModel   string `help:"Ollama model name." default:"mistral" env:"OLLAMA_MODEL"`
	OpenAIAPIKey  string `help:"OpenAI API key." env:"OPENAI_API_KEY"`
	OpenAIModel   string `help:"OpenAI model name." default:"gpt-4o-mini" env:"OPENAI_MODEL"`
	GeminiAPIKey  string `help:"Gemini API key." env:"GEMINI_API_KEY"`
	GeminiModel   string `help:"Gemini model name." default:"gemini-2.0-flash" env:"GEMINI_MODEL"`

	Init cli.InitCmd `cmd:"" help:"Initialize aide storage."`
	Chat cli.ChatCmd `cmd:"" help:"Open an interactive chat session."`
	Ask  cli.AskCmd  `cmd:"" help:"Ask a one-shot question."`

	Conversations struct {
		List   cli.ConversationListCmd   `cmd:"" help:"List conversations." default:"1"`
		Show   cli.ConversationShowCmd   `cmd:"" help:"Show one conversation."`
		Latest cli.ConversationLatestCmd `cmd:"" help:"Show the most recent conversation."`
		Delete cli.ConversationDeleteCmd `cmd:"" help:"Delete a conversation."`
	} `cmd:"" help:"Manage saved conversations."`

	Habit struct {
		Log   cli.HabitLogCmd   `cmd:"" help:"Log a habit for a day."`
		Today cli.HabitTodayCmd `cmd:"" help:"Show today's habit status."`
		Stats cli.HabitStatsCmd `cmd:"" help:"Show habit statistics."`
		List  cli.HabitListCmd  `cmd:"" help:"List the habit catalog."`
	} `cmd:"" help:"Track daily habits."`

	Pdf struct {
		Merge  cli.PdfMergeCmd  `cmd:"" help:"Merge PDF files."`
		Split  cli.PdfSplitCmd  `cmd:"" help:"Split a PDF into parts."`
		Text   cli.PdfTextCmd   `cmd:"" help:"Extract text from a PDF."`
		Pages  cli.PdfPagesCmd  `cmd:"" help:"Extract pages into a new PDF."`
		Rotate cli.PdfRotateCmd `cmd:"" help:"Rotate PDF pages."`
		Info   cli.PdfInfoCmd   `cmd:"" help:"Show PDF metadata."`
		Task   cli.PdfTaskCmd   `cmd:"" help:"Run a natural-language PDF task through the model."`
	} `cmd:"" help:"PDF operations."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Config struct {
		SetKey   cli.ConfigSetKeyCmd   `cmd:"" name:"set-key" help:"Store a provider API key in the OS keyring."`
		ClearKey cli.ConfigClearKeyCmd `cmd:"" name:"clear-key" help:"Remove a provider API key from the OS keyring."`
	} `cmd:"" help:"Manage credentials."`

	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("aide"),
		kong.Description("Personal assistant: chat, habit tracking, and PDF tooling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.3.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: filepath.Dir(CLI.DB)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.New(CLI.DB)
	appCtx := &cli.Context{
		Store:     store,
		Config:    buildConfig(),
		Workspace: CLI.Workspace,
	}

	// Open the store up front for every command except init, which
	// manages the database file itself.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig assembles the provider configuration from flags and
// environment, falling back to the OS keyring for missing API keys.
func buildConfig() config.Config {
	cfg := config.Config{
		Provider:      CLI.Provider,
		OllamaBaseURL: CLI.OllamaBaseURL,
		OllamaModel:   CLI.OllamaModel,
		OpenAIAPIKey:  CLI.OpenAIAPIKey,
		OpenAIModel:   CLI.OpenAIModel,
		GeminiAPIKey:  CLI.GeminiAPIKey,
		GeminiModel:   CLI.GeminiModel,
	}

	if cfg.OpenAIAPIKey == "" {
		if key, err := keyring.GetAPIKey("openai"); err == nil {
			cfg.OpenAIAPIKey = key
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "provider", "openai", "error", err)
		}
	}
	if cfg.GeminiAPIKey == "" {
		if key, err := keyring.GetAPIKey("gemini"); err == nil {
			cfg.GeminiAPIKey = key
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "provider", "gemini", "error", err)
		}
	}
	return cfg
}
