package llm

import (
	"context"
	"errors"
	"testing"
)

type countingMeter struct {
	limit   int
	admits  int
	charges int
}

func (m *countingMeter) Admit(context.Context) error {
	m.admits++
	if m.charges >= m.limit {
		return errors.New("limit reached")
	}
	return nil
}

func (m *countingMeter) Charge(context.Context) { m.charges++ }

func TestMetering_ChargesEveryRetry(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), okVerdict)
	p := WithRetry(WithMetering(mock), retryConfig())
	meter := &countingMeter{limit: 10}

	if _, err := p.Generate(WithMeter(context.Background(), meter), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if meter.charges != mock.CallCount() || meter.charges != 3 {
		t.Fatalf("charges = %d, round trips = %d, want 3 each", meter.charges, mock.CallCount())
	}
}

func TestMetering_DeniedRetryStopsLoop(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), okVerdict)
	p := WithRetry(WithMetering(mock), retryConfig())
	meter := &countingMeter{limit: 1}

	_, err := p.Generate(WithMeter(context.Background(), meter), Request{})
	var denied *ErrQuotaDenied
	if !errors.As(err, &denied) {
		t.Fatalf("err = %v, want *ErrQuotaDenied", err)
	}
	if mock.CallCount() != 1 || meter.charges != 1 {
		t.Fatalf("round trips = %d, charges = %d, want 1 each", mock.CallCount(), meter.charges)
	}
	if meter.admits != 2 {
		t.Fatalf("admits = %d, want 2", meter.admits)
	}
}

func TestMetering_NoMeterPassesThrough(t *testing.T) {
	mock := NewMockProvider(okVerdict)
	if _, err := WithMetering(mock).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("round trips = %d, want 1", mock.CallCount())
	}
}
