package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/aide-sh/aide/internal/models"
)

// ollamaClient is the slice of the Ollama API client we use. It
// exists so tests can substitute a fake backend.
type ollamaClient interface {
	Chat(ctx context.Context, req *api.ChatRequest, fn api.ChatResponseFunc) error
}

// Ollama talks to a local Ollama server.
type Ollama struct {
	baseURL string
	model   string

	client ollamaClient

	// newClient builds the underlying client from the parsed base
	// URL. Overridden in tests.
	newClient func(base *url.URL) ollamaClient
}

// NewOllama returns an uninitialized Ollama provider bound to the
// given server URL and model.
func NewOllama(baseURL, model string) *Ollama {
	return &Ollama{
		baseURL: baseURL,
		model:   model,
		newClient: func(base *url.URL) ollamaClient {
			return api.NewClient(base, http.DefaultClient)
		},
	}
}

// Initialize constructs the Ollama client. Idempotent; calling it
// again reconstructs the client.
func (p *Ollama) Initialize(_ context.Context) error {
	base, err := url.Parse(p.baseURL)
	if err != nil {
		return fmt.Errorf("%w: parsing ollama base URL %q: %v", ErrBackendUnavailable, p.baseURL, err)
	}
	p.client = p.newClient(base)
	return nil
}

// Chat forwards messages to the server and returns the accumulated
// response text. Initializes lazily on first use.
func (p *Ollama) Chat(ctx context.Context, messages []models.Message, opts Options) (string, error) {
	if p.client == nil {
		if err := p.Initialize(ctx); err != nil {
			return "", err
		}
	}

	stream := false
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: toOllamaMessages(messages),
		Stream:   &stream,
		Options:  map[string]any(opts),
	}

	var sb strings.Builder
	err := p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: ollama chat: %v", ErrBackendUnavailable, err)
	}
	return sb.String(), nil
}

// ModelInfo reports static metadata about the configured backend.
func (p *Ollama) ModelInfo() map[string]string {
	return map[string]string{
		"provider": "ollama",
		"model":    p.model,
		"base_url": p.baseURL,
		"type":     "local",
	}
}

func toOllamaMessages(messages []models.Message) []api.Message {
	out := make([]api.Message, len(messages))
	for i, m := range messages {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "assistant"
		}
		out[i] = api.Message{Role: role, Content: m.Content}
	}
	return out
}
