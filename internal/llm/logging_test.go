package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/codemaster/internal/store"
)

func openTestRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := openTestRepo(t)
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"hint":"반복문"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, "gemini", repo)

	ctx := WithUser(WithPurpose(context.Background(), PurposeHint), "kim")
	req := Request{
		System:   "You are a helpful programming tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Problem: 두 수의 합"}},
		Schema:   &Schema{Name: "problem-hint", Definition: map[string]any{"type": "object"}},
	}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Provider != "gemini" || ev.Purpose != "hint" || ev.User != "kim" || !ev.Success {
		t.Errorf("unexpected event: %+v", ev.LLMRequestEventData)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Errorf("tokens = %d/%d, want 12/4", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "[schema: problem-hint]") || !strings.Contains(ev.RequestBody, "[user]") {
		t.Errorf("request body missing sections:\n%s", ev.RequestBody)
	}
	if ev.ResponseBody != `{"hint":"반복문"}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := openTestRepo(t)
	mock := NewMockProvider(MockResponse{Err: errors.New("quota exhausted")})
	p := WithLogging(mock, "openai", repo)

	_, err := p.Generate(WithPurpose(context.Background(), PurposeGrade), Request{})
	if err == nil {
		t.Fatal("expected error")
	}

	stats, err := repo.LLMUsageByPurpose(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Purpose != "grade" || stats[0].Calls != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	events, _ := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: 1})
	if events[0].Success || events[0].ErrorMessage != "quota exhausted" || events[0].User != "" {
		t.Errorf("unexpected event: %+v", events[0].LLMRequestEventData)
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("mock needs no key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "mock"
		p, err := NewProvider(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "mock" {
			t.Errorf("model = %q, want mock", p.ModelID())
		}
		resp, err := p.Generate(context.Background(), Request{Schema: &Schema{
			Name:       "problem-hint",
			Definition: map[string]any{"type": "object", "properties": map[string]any{"hint": map[string]any{"type": "string"}}},
		}})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !strings.Contains(string(resp.Content), `"hint"`) {
			t.Errorf("content = %s", resp.Content)
		}
	})

	t.Run("charges the context meter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "mock"
		p, err := NewProvider(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		meter := &countingMeter{limit: 10}
		if _, err := p.Generate(WithMeter(context.Background(), meter), Request{}); err != nil {
			t.Fatalf("generate: %v", err)
		}
		if meter.admits != 1 || meter.charges != 1 {
			t.Errorf("admits = %d, charges = %d, want 1 each", meter.admits, meter.charges)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "cohere"
		if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "openai"
		if _, err := NewProvider(context.Background(), cfg, nil); err == nil {
			t.Fatal("expected error for missing API key")
		}
	})

	t.Run("wrapped with timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = "sk-test"
		p, err := NewProvider(context.Background(), cfg, openTestRepo(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := p.(*TimeoutProvider); !ok {
			t.Errorf("outermost provider = %T, want *TimeoutProvider", p)
		}
	})
}
