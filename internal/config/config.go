// Package config defines the application configuration. A Config is
// constructed explicitly (from CLI flags and environment variables)
// and passed to the components that need it; there is no process-wide
// settings singleton.
package config

// Defaults for provider configuration when neither flag nor
// environment variable is set.
const (
	DefaultProvider      = "ollama"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "mistral"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultGeminiModel   = "gemini-2.0-flash"

	// DefaultDBPath is the default location of the conversation store.
	DefaultDBPath = "data/conversations.db"
)

// Config holds LLM provider settings.
type Config struct {
	Provider string

	OllamaBaseURL string
	OllamaModel   string

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string
	GeminiModel  string
}

// Default returns a Config populated with the documented defaults.
func Default() Config {
	return Config{
		Provider:      DefaultProvider,
		OllamaBaseURL: DefaultOllamaBaseURL,
		OllamaModel:   DefaultOllamaModel,
		OpenAIModel:   DefaultOpenAIModel,
		GeminiModel:   DefaultGeminiModel,
	}
}
