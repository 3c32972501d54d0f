package llm

import (
	"errors"
	"testing"

	"github.com/aide-sh/aide/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.GeminiAPIKey = "g-test"
	return cfg
}

func TestNewReturnsMatchingProvider(t *testing.T) {
	for _, tag := range []string{"ollama", "openai", "gemini"} {
		cfg := testConfig()
		cfg.Provider = tag

		p, err := New(cfg)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tag, err)
		}
		if got := p.ModelInfo()["provider"]; got != tag {
			t.Errorf("ModelInfo()[provider] = %q, want %q", got, tag)
		}
	}
}

func TestNewIsCaseInsensitive(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "OpenAI"

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.ModelInfo()["provider"]; got != "openai" {
		t.Errorf("ModelInfo()[provider] = %q, want openai", got)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "anthropic"

	if _, err := New(cfg); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestNewRequiresBackendParameters(t *testing.T) {
	tests := []struct {
		name  string
		mutil func(*config.Config)
	}{
		{"ollama missing base URL", func(c *config.Config) { c.Provider = "ollama"; c.OllamaBaseURL = "" }},
		{"ollama missing model", func(c *config.Config) { c.Provider = "ollama"; c.OllamaModel = "" }},
		{"openai missing key", func(c *config.Config) { c.Provider = "openai"; c.OpenAIAPIKey = "" }},
		{"openai missing model", func(c *config.Config) { c.Provider = "openai"; c.OpenAIModel = "" }},
		{"gemini missing key", func(c *config.Config) { c.Provider = "gemini"; c.GeminiAPIKey = "" }},
		{"gemini missing model", func(c *config.Config) { c.Provider = "gemini"; c.GeminiModel = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutil(&cfg)
			if _, err := New(cfg); !errors.Is(err, ErrMissingParameter) {
				t.Errorf("expected ErrMissingParameter, got %v", err)
			}
		})
	}
}

func TestOllamaModelInfoExactKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Provider = "ollama"
	cfg.OllamaBaseURL = "http://x"
	cfg.OllamaModel = "m"

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := map[string]string{
		"provider": "ollama",
		"model":    "m",
		"base_url": "http://x",
		"type":     "local",
	}
	got := p.ModelInfo()
	if len(got) != len(want) {
		t.Fatalf("ModelInfo() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ModelInfo()[%s] = %q, want %q", k, got[k], v)
		}
	}
}

func TestCloudModelInfoOmitsBaseURL(t *testing.T) {
	cfg := testConfig()
	cfg.Provider = "gemini"

	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	info := p.ModelInfo()
	if _, ok := info["base_url"]; ok {
		t.Error("cloud provider ModelInfo should not contain base_url")
	}
	if info["type"] != "cloud" {
		t.Errorf("ModelInfo()[type] = %q, want cloud", info["type"])
	}
}
