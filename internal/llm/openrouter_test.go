package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		wantErr bool
	}{
		{"valid", OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash"}, false},
		{"empty key", OpenRouterConfig{Model: "google/gemini-2.5-flash"}, true},
		{"empty model", OpenRouterConfig{APIKey: "sk-or-test"}, true},
		{"vendor alias is not mapped", OpenRouterConfig{APIKey: "sk-or-test", Model: "gemini-flash"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.ModelID() != tt.cfg.Model {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.cfg.Model)
			}
		})
	}
}

func TestOpenRouterProvider_SendsTitle(t *testing.T) {
	var title, auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "deepseek/deepseek-chat",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "ok"},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "deepseek/deepseek-chat",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), SingleTurn("", "hi")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "codemaster" {
		t.Errorf("X-Title = %q, want codemaster", title)
	}
	if auth != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", auth)
	}
}
