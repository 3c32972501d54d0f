package llm

import (
	"fmt"
	"strings"

	"github.com/aide-sh/aide/internal/config"
)

// New constructs the provider selected by cfg.Provider
// (case-insensitive). It validates that the parameters the selected
// backend requires are present, but never initializes the provider;
// initialization happens explicitly or on first Chat call.
func New(cfg config.Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		if cfg.OllamaBaseURL == "" || cfg.OllamaModel == "" {
			return nil, fmt.Errorf("%w: ollama requires a base URL and model", ErrMissingParameter)
		}
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	case "openai":
		if cfg.OpenAIAPIKey == "" || cfg.OpenAIModel == "" {
			return nil, fmt.Errorf("%w: openai requires an API key and model", ErrMissingParameter)
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil

	case "gemini":
		if cfg.GeminiAPIKey == "" || cfg.GeminiModel == "" {
			return nil, fmt.Errorf("%w: gemini requires an API key and model", ErrMissingParameter)
		}
		return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
