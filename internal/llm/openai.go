package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/aide-sh/aide/internal/models"
)

// openaiCreateFn matches openai.Client.Chat.Completions.New; held as
// a function value so tests can substitute a fake backend.
type openaiCreateFn func(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)

// OpenAI talks to the OpenAI chat completions API.
type OpenAI struct {
	apiKey string
	model  string

	create openaiCreateFn
}

// NewOpenAI returns an uninitialized OpenAI provider.
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{apiKey: apiKey, model: model}
}

// Initialize constructs the OpenAI client. Fails if the API key is
// empty. Idempotent.
func (p *OpenAI) Initialize(_ context.Context) error {
	if p.apiKey == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY not set", ErrMissingCredential)
	}
	client := openai.NewClient(option.WithAPIKey(p.apiKey))
	p.create = client.Chat.Completions.New
	return nil
}

// Chat forwards messages to the API and returns the first choice's
// text. Initializes lazily on first use.
func (p *OpenAI) Chat(ctx context.Context, messages []models.Message, opts Options) (string, error) {
	if p.create == nil {
		if err := p.Initialize(ctx); err != nil {
			return "", err
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: toOpenAIMessages(messages),
	}
	if t, ok := opts.Temperature(); ok {
		params.Temperature = openai.Float(t)
	}
	if n, ok := opts.MaxTokens(); ok {
		params.MaxTokens = openai.Int(int64(n))
	}

	completion, err := p.create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: openai chat: %v", ErrBackendUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrBackendUnavailable)
	}
	return completion.Choices[0].Message.Content, nil
}

// ModelInfo reports static metadata about the configured backend.
func (p *OpenAI) ModelInfo() map[string]string {
	return map[string]string{
		"provider": "openai",
		"model":    p.model,
		"type":     "cloud",
	}
}

func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, m := range messages {
		if m.Role == models.RoleAssistant {
			out[i] = openai.AssistantMessage(m.Content)
		} else {
			out[i] = openai.UserMessage(m.Content)
		}
	}
	return out
}
