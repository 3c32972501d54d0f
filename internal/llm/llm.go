// Package llm presents one chat interface over three backend
// variants: a local Ollama server, the OpenAI API, and the Google
// Gemini API. Providers are constructed by the factory in New and
// initialized lazily; the factory never initializes.
package llm

import (
	"context"

	"github.com/aide-sh/aide/internal/models"
)

// Options carries per-call parameters forwarded to the backend
// client. Recognized keys are backend-dependent ("temperature",
// "max_tokens"); unrecognized keys are ignored.
type Options map[string]any

// Temperature returns the "temperature" option if present.
func (o Options) Temperature() (float64, bool) {
	v, ok := o["temperature"]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	}
	return 0, false
}

// MaxTokens returns the "max_tokens" option if present.
func (o Options) MaxTokens() (int, bool) {
	v, ok := o["max_tokens"]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

// Provider is the common capability interface over the backends.
//
// Initialize constructs the underlying client; it is idempotent
// (re-initializing reconstructs the client) and there is no teardown
// state. Chat initializes lazily if needed, forwards the ordered
// message sequence and options, and returns the response text.
// ModelInfo returns static metadata about the provider and model.
type Provider interface {
	Initialize(ctx context.Context) error
	Chat(ctx context.Context, messages []models.Message, opts Options) (string, error)
	ModelInfo() map[string]string
}
