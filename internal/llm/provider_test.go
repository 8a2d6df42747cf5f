package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"level":2}`)},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"level":2}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}

	_, err = mock.Generate(context.Background(), Request{System: "second"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable once exhausted, got %v", err)
	}

	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
	if mock.Calls[1].System != "second" {
		t.Fatalf("expected requests to be recorded, got %q", mock.Calls[1].System)
	}
}

func TestPurpose(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	ctx := WithPurpose(context.Background(), "response-classification")
	if got := PurposeFrom(ctx); got != "response-classification" {
		t.Fatalf("unexpected purpose %q", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("COGNILEVEL_LLM_PROVIDER", "openai")
	t.Setenv("COGNILEVEL_OPENAI_API_KEY", "sk-test")
	t.Setenv("COGNILEVEL_OPENAI_MODEL", "gpt-4o")
	t.Setenv("COGNILEVEL_LLM_TIMEOUT", "7s")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("unexpected provider %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected openai config %+v", cfg.OpenAI)
	}
	if cfg.Timeout != 7*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"unknown provider", Config{Provider: "ollama"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, name := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(name, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "a-key" {
		t.Fatalf("unexpected discovery result %+v ok=%v", cfg, ok)
	}

	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, _ = DiscoverConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai to win over anthropic, got %q", cfg.Provider)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Fatalf("alias not resolved: %q", got)
	}
	if got := resolveModel("claude-opus-custom", anthropicModels); got != "claude-opus-custom" {
		t.Fatalf("unknown model should pass through, got %q", got)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 0); got != 0.15 {
		t.Fatalf("unexpected input cost %v", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
