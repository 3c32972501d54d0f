package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/aide-sh/aide/internal/models"
)

// geminiTemperature is fixed at client construction and is not
// overridable through per-call options.
const geminiTemperature float32 = 0.7

// geminiGenerateFn matches genai.Client.Models.GenerateContent; held
// as a function value so tests can substitute a fake backend.
type geminiGenerateFn func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gemini talks to the Google Gemini API.
type Gemini struct {
	apiKey string
	model  string

	generate geminiGenerateFn
}

// NewGemini returns an uninitialized Gemini provider.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

// Initialize constructs the Gemini client. Fails if the API key is
// empty. Idempotent.
func (p *Gemini) Initialize(ctx context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY not set", ErrMissingCredential)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("%w: creating gemini client: %v", ErrBackendUnavailable, err)
	}
	p.generate = client.Models.GenerateContent
	return nil
}

// Chat forwards messages to the API and returns the response text.
// Initializes lazily on first use.
func (p *Gemini) Chat(ctx context.Context, messages []models.Message, opts Options) (string, error) {
	if p.generate == nil {
		if err := p.Initialize(ctx); err != nil {
			return "", err
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(geminiTemperature),
	}
	if n, ok := opts.MaxTokens(); ok {
		cfg.MaxOutputTokens = int32(n)
	}

	resp, err := p.generate(ctx, p.model, toGeminiContents(messages), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini chat: %v", ErrBackendUnavailable, err)
	}
	return resp.Text(), nil
}

// ModelInfo reports static metadata about the configured backend.
func (p *Gemini) ModelInfo() map[string]string {
	return map[string]string{
		"provider": "gemini",
		"model":    p.model,
		"type":     "cloud",
	}
}

func toGeminiContents(messages []models.Message) []*genai.Content {
	out := make([]*genai.Content, len(messages))
	for i, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		out[i] = genai.NewContentFromText(m.Content, role)
	}
	return out
}
