package llm

import (
	"context"
	"fmt"
)

// Meter charges individual round trips against a quota. The session
// engine attaches one to the context of every oracle call it makes;
// MeteredProvider consults it before each attempt and charges it after.
type Meter interface {
	Admit(ctx context.Context) error
	Charge(ctx context.Context)
}

// WithMeter attaches m to ctx.
func WithMeter(ctx context.Context, m Meter) context.Context {
	return context.WithValue(ctx, meterKey, m)
}

// MeterFrom returns the meter set by WithMeter, or nil.
func MeterFrom(ctx context.Context) Meter {
	m, _ := ctx.Value(meterKey).(Meter)
	return m
}

// ErrQuotaDenied means the meter refused an attempt. Retrying cannot help.
type ErrQuotaDenied struct {
	Err error
}

func (e *ErrQuotaDenied) Error() string {
	return fmt.Sprintf("oracle quota denied: %v", e.Err)
}

func (e *ErrQuotaDenied) Unwrap() error { return e.Err }

// MeteredProvider charges the context meter once per call that reaches
// the vendor, whatever its outcome. It sits below RetryProvider so every
// retry is admitted and charged on its own.
type MeteredProvider struct {
	inner Provider
}

func WithMetering(p Provider) Provider {
	return &MeteredProvider{inner: p}
}

func (m *MeteredProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	meter := MeterFrom(ctx)
	if meter == nil {
		return m.inner.Generate(ctx, req)
	}
	if err := meter.Admit(ctx); err != nil {
		return nil, &ErrQuotaDenied{Err: err}
	}
	resp, err := m.inner.Generate(ctx, req)
	meter.Charge(context.WithoutCancel(ctx))
	return resp, err
}

func (m *MeteredProvider) ModelID() string {
	return m.inner.ModelID()
}
