package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := newOpenAICompatible(openai.DefaultConfig("test-key"), OpenAIConfig{
		Model:   "gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("newOpenAICompatible: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_StructuredAnswer(t *testing.T) {
	var sent struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ResponseFormat *struct {
			JSONSchema *struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("```json\n{\"is_correct\":true,\"feedback\":\"정답입니다.\"}\n```", "stop"))
	})

	req := SingleTurn("You are a programming instructor.", "Grade this submission.")
	req.Schema = testVerdictSchema
	req.MaxTokens = 256
	resp, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sent.Messages) != 2 || sent.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system then user message, got %+v", sent.Messages)
	}
	if sent.ResponseFormat == nil || sent.ResponseFormat.JSONSchema == nil || sent.ResponseFormat.JSONSchema.Name != "test-verdict" {
		t.Fatalf("schema not sent: %+v", sent.ResponseFormat)
	}
	if string(resp.Content) != `{"is_correct":true,"feedback":"정답입니다."}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 65 || resp.StopReason != StopEnd {
		t.Fatalf("usage = %+v stop = %q", resp.Usage, resp.StopReason)
	}
}

func TestOpenAIProvider_LengthFinish(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"is_correct":tr`, "length"))
	})
	req := SingleTurn("", "Grade this submission.")
	req.Schema = testVerdictSchema
	_, err := p.Generate(context.Background(), req)
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, func(err error) bool { var e *ErrAuth; return errors.As(err, &e) }},
		{http.StatusTooManyRequests, func(err error) bool { var e *ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool { var e *ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), SingleTurn("", "test"))
			if err == nil || !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o", BaseURL: "https://llm.internal.example/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("model = %q, want gpt-4o", p.ModelID())
	}
}
