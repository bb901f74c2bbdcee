package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsQueuedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	ctx := WithUser(WithPurpose(context.Background(), PurposeGrade), "lee")

	resp, err := mock.Generate(ctx, SingleTurn("sys", "first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != StopEnd {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = mock.Generate(ctx, SingleTurn("sys", "second"))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable from an empty queue, got %T", err)
	}

	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" || mock.CallUsers[1] != "lee" || mock.CallPurposes[2] != PurposeGrade {
		t.Fatalf("calls not recorded: %+v %v %v", mock.Calls, mock.CallUsers, mock.CallPurposes)
	}
	if mock.ModelID() != "mock" {
		t.Fatalf("model = %q", mock.ModelID())
	}
}

func TestCallContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnknown {
		t.Fatalf("expected unknown, got %q", p)
	}
	if u := UserFrom(ctx); u != "" {
		t.Fatalf("expected no user, got %q", u)
	}

	ctx = WithUser(WithPurpose(ctx, PurposeHint), "kim")
	if p := PurposeFrom(ctx); p != PurposeHint {
		t.Fatalf("expected hint, got %q", p)
	}
	if u := UserFrom(ctx); u != "kim" {
		t.Fatalf("expected kim, got %q", u)
	}
}
