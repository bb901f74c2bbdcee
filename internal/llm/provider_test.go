package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

var testVerdictSchema = &Schema{
	Name: "test-verdict",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{"type": "boolean"},
			"feedback":   map[string]any{"type": "string"},
		},
		"required": []any{"is_correct", "feedback"},
	},
}

func TestSingleTurn(t *testing.T) {
	req := SingleTurn("sys", "두 수의 합을 구하세요")
	if req.System != "sys" || len(req.Messages) != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Messages[0].Role != RoleUser {
		t.Fatalf("role = %q, want user", req.Messages[0].Role)
	}
}

func TestFinish(t *testing.T) {
	valid := json.RawMessage("```json\n{\"is_correct\":false,\"feedback\":\"오답\"}\n```")
	cut := json.RawMessage(`{"is_correct":false,"fee`)

	resp, err := finish(Request{Schema: testVerdictSchema}, valid, "m", Usage{InputTokens: 3, OutputTokens: 4}, StopEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"is_correct":false,"feedback":"오답"}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 7 {
		t.Fatalf("total tokens = %d, want 7", resp.Usage.TotalTokens)
	}

	_, err = finish(Request{Schema: testVerdictSchema}, cut, "m", Usage{}, StopMaxTokens)
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}

	_, err = finish(Request{Schema: testVerdictSchema}, cut, "m", Usage{}, StopEnd)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}

	resp, err = finish(Request{}, json.RawMessage(`plain`), "m", Usage{}, StopEnd)
	if err != nil || string(resp.Content) != "plain" {
		t.Fatalf("schemaless finish = %v, %v", resp, err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_StringHidesKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "secret-gemini-key"
	if s := cfg.String(); s == "" || strings.Contains(s, "secret-gemini-key") {
		t.Fatalf("String() leaked the key: %q", s)
	}
}
