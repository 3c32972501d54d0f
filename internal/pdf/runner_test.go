package pdf

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aide-sh/aide/internal/llm"
	"github.com/aide-sh/aide/internal/models"
)

// scriptedProvider replays canned replies and records what it was
// asked.
type scriptedProvider struct {
	replies []string
	calls   [][]models.Message
}

func (p *scriptedProvider) Initialize(context.Context) error { return nil }

func (p *scriptedProvider) Chat(_ context.Context, messages []models.Message, _ llm.Options) (string, error) {
	p.calls = append(p.calls, messages)
	if len(p.replies) == 0 {
		return "", errors.New("script exhausted")
	}
	reply := p.replies[0]
	p.replies = p.replies[1:]
	return reply, nil
}

func (p *scriptedProvider) ModelInfo() map[string]string {
	return map[string]string{"provider": "scripted"}
}

func TestRunnerReturnsPlainReplyAsAnswer(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"All done, nothing to do."}}
	runner := NewRunner(provider, Tools(newTestAgent(t)))

	out, err := runner.Run(context.Background(), "say hi", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "All done, nothing to do." {
		t.Errorf("out = %q", out)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.calls))
	}

	prompt := provider.calls[0][0].Content
	for _, name := range []string{"merge_pdfs", "split_pdf", "rotate_pdf_pages"} {
		if !strings.Contains(prompt, name) {
			t.Errorf("instructions missing tool %q", name)
		}
	}
}

func TestRunnerExecutesToolAndFeedsObservation(t *testing.T) {
	called := false
	tools := []Tool{{
		Name:        "probe",
		Description: "test probe",
		Call: func(_ context.Context, args json.RawMessage) string {
			called = true
			return "probe says " + string(args)
		},
	}}
	provider := &scriptedProvider{replies: []string{
		`{"tool": "probe", "args": {"x": 1}}`,
		"finished",
	}}
	runner := NewRunner(provider, tools)

	out, err := runner.Run(context.Background(), "use the probe", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "finished" {
		t.Errorf("out = %q, want %q", out, "finished")
	}
	if !called {
		t.Error("tool was never invoked")
	}

	// The second round must carry the observation back to the model.
	second := provider.calls[1]
	last := second[len(second)-1]
	if last.Role != models.RoleHuman || !strings.Contains(last.Content, "Observation: probe says") {
		t.Errorf("observation message = %+v", last)
	}
}

func TestRunnerReportsUnknownTool(t *testing.T) {
	provider := &scriptedProvider{replies: []string{
		`{"tool": "shredder", "args": {}}`,
		"ok, giving up",
	}}
	runner := NewRunner(provider, nil)

	out, err := runner.Run(context.Background(), "shred it", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "ok, giving up" {
		t.Errorf("out = %q", out)
	}

	second := provider.calls[1]
	last := second[len(second)-1]
	if !strings.Contains(last.Content, `unknown tool "shredder"`) {
		t.Errorf("observation = %q", last.Content)
	}
}

func TestRunnerStopsAfterStepBudget(t *testing.T) {
	replies := make([]string, maxSteps+2)
	for i := range replies {
		replies[i] = `{"tool": "probe", "args": {}}`
	}
	tools := []Tool{{
		Name:        "probe",
		Description: "test probe",
		Call:        func(context.Context, json.RawMessage) string { return "again" },
	}}
	runner := NewRunner(&scriptedProvider{replies: replies}, tools)

	_, err := runner.Run(context.Background(), "loop forever", nil)
	if !errors.Is(err, ErrTooManySteps) {
		t.Errorf("err = %v, want ErrTooManySteps", err)
	}
}

func TestRunnerPropagatesProviderFailure(t *testing.T) {
	runner := NewRunner(&scriptedProvider{}, nil)

	if _, err := runner.Run(context.Background(), "anything", nil); err == nil {
		t.Error("expected provider failure to propagate")
	}
}
