package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aide-sh/aide/internal/llm"
	"github.com/aide-sh/aide/internal/logger"
	"github.com/aide-sh/aide/internal/models"
)

// maxSteps bounds the tool loop so a confused model cannot spin
// forever.
const maxSteps = 5

// ErrTooManySteps is returned when the model keeps requesting tools
// past the step budget without producing an answer.
var ErrTooManySteps = errors.New("tool loop exceeded step budget")

// Runner drives a model through the tool registry: the model is shown
// the available tools and asked to either request one as a JSON action
// or answer directly. Tool output is fed back as an observation until
// the model answers or the step budget runs out.
type Runner struct {
	provider llm.Provider
	tools    []Tool
}

// NewRunner returns a runner over the given provider and tools.
func NewRunner(provider llm.Provider, tools []Tool) *Runner {
	return &Runner{provider: provider, tools: tools}
}

type action struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args"`
}

// Run executes one task. history carries prior turns of the
// conversation and may be nil.
func (r *Runner) Run(ctx context.Context, task string, history []models.Message) (string, error) {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Human(r.instructions()))
	messages = append(messages, history...)
	messages = append(messages, models.Human(task))

	for step := 0; step < maxSteps; step++ {
		reply, err := r.provider.Chat(ctx, messages, nil)
		if err != nil {
			return "", err
		}

		act, ok := parseAction(reply)
		if !ok {
			return reply, nil
		}

		tool, found := r.lookup(act.Tool)
		observation := ""
		if !found {
			observation = fmt.Sprintf("Error: unknown tool %q", act.Tool)
		} else {
			logger.Debug("Tool requested", "tool", act.Tool, "step", step)
			observation = tool.Call(ctx, act.Args)
		}

		messages = append(messages,
			models.Assistant(reply),
			models.Human("Observation: "+observation),
		)
	}
	return "", ErrTooManySteps
}

func (r *Runner) lookup(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

func (r *Runner) instructions() string {
	var b strings.Builder
	b.WriteString("You are a PDF assistant with access to these tools:\n\n")
	for _, t := range r.tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
	}
	b.WriteString("\nTo use a tool, reply with ONLY a JSON object: ")
	b.WriteString(`{"tool": "<name>", "args": {...}}`)
	b.WriteString("\nAfter each tool call you will receive an Observation. ")
	b.WriteString("When you have the final answer, reply with plain text instead of JSON.")
	return b.String()
}

// parseAction extracts a tool request from a model reply. The reply
// counts as an action only if it contains a JSON object carrying a
// "tool" key; anything else is treated as the final answer.
func parseAction(reply string) (action, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return action{}, false
	}

	var act action
	if err := json.Unmarshal([]byte(reply[start:end+1]), &act); err != nil {
		return action{}, false
	}
	if act.Tool == "" {
		return action{}, false
	}
	if act.Args == nil {
		act.Args = json.RawMessage("{}")
	}
	return act, true
}
