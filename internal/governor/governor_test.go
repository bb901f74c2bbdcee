package governor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/codemaster/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGovernor(t *testing.T, limits Limits) (*Governor, *fakeClock, *store.FileUsageStore) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)}
	s := store.NewFileUsageStore(filepath.Join(t.TempDir(), "api_usage.json"))
	return New(s, limits, clock.Now), clock, s
}

func TestPrune(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	n := float64(now.Unix())
	got := Prune([]float64{n - 120, n - 60, n - 59.5, n - 1, n}, now)

	want := []float64{n - 59.5, n - 1, n}
	if len(got) != len(want) {
		t.Fatalf("Prune = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Prune[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	for _, ts := range got {
		if n-ts >= 60 {
			t.Errorf("timestamp %v is at least 60s old", ts)
		}
	}
}

func TestCommit_IncrementsDailyCount(t *testing.T) {
	g, clock, _ := newTestGovernor(t, DefaultLimits())
	ctx := context.Background()

	const n = 7
	for i := 0; i < n; i++ {
		if err := g.Commit(ctx); err != nil {
			t.Fatalf("commit %d: %v", i, err)
		}
		clock.Advance(61 * time.Second)
	}

	if got := g.Status(ctx).DailyCount; got != n {
		t.Fatalf("daily count = %d, want %d", got, n)
	}
}

func TestCheck_DeniesAtDailyLimit(t *testing.T) {
	g, clock, _ := newTestGovernor(t, Limits{DailyLimit: 3, PerMinuteLimit: 10, Window: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if d := g.Check(ctx); !d.Allowed {
			t.Fatalf("check %d denied: %+v", i, d)
		}
		if err := g.Commit(ctx); err != nil {
			t.Fatalf("commit: %v", err)
		}
		clock.Advance(2 * time.Minute)
	}

	d := g.Check(ctx)
	if d.Allowed {
		t.Fatal("expected denial at daily limit")
	}
	if d.Reason != ReasonDailyLimit {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonDailyLimit)
	}
	if d.Usage.DailyRemaining() != 0 {
		t.Errorf("daily remaining = %d, want 0", d.Usage.DailyRemaining())
	}
}

func TestCheck_MinuteWindow(t *testing.T) {
	g, clock, _ := newTestGovernor(t, DefaultLimits())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := g.Commit(ctx); err != nil {
			t.Fatalf("commit: %v", err)
		}
		clock.Advance(100 * time.Millisecond)
	}

	d := g.Check(ctx)
	if d.Allowed {
		t.Fatal("expected the 11th call within a second to be denied")
	}
	if d.Reason != ReasonMinuteLimit {
		t.Errorf("reason = %q, want %q", d.Reason, ReasonMinuteLimit)
	}
	if d.Usage.RetryAfter <= 58*time.Second || d.Usage.RetryAfter > time.Minute {
		t.Errorf("retry after = %v, want just under a minute", d.Usage.RetryAfter)
	}

	clock.Advance(61 * time.Second)
	d = g.Check(ctx)
	if !d.Allowed {
		t.Fatalf("expected call to be allowed after the window, got %+v", d)
	}
	if d.Usage.MinuteCount != 0 {
		t.Errorf("minute count = %d, want 0", d.Usage.MinuteCount)
	}
	if d.Usage.DailyCount != 10 {
		t.Errorf("daily count = %d, want 10", d.Usage.DailyCount)
	}
}

func TestCheck_DoesNotMutate(t *testing.T) {
	g, _, s := newTestGovernor(t, DefaultLimits())
	ctx := context.Background()

	if err := g.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	for i := 0; i < 20; i++ {
		g.Check(ctx)
	}

	rec, err := s.LoadUsage(ctx, "2026-10-19")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.DailyCount != 1 || len(rec.Timestamps) != 1 {
		t.Fatalf("record changed by Check: %+v", rec)
	}
}

func TestNewDayResetsCount(t *testing.T) {
	g, clock, _ := newTestGovernor(t, Limits{DailyLimit: 2, PerMinuteLimit: 10, Window: time.Minute})
	ctx := context.Background()

	clock.t = time.Date(2026, 10, 19, 23, 58, 0, 0, time.Local)
	for i := 0; i < 2; i++ {
		if err := g.Commit(ctx); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	if g.Check(ctx).Allowed {
		t.Fatal("expected denial before midnight")
	}

	clock.t = time.Date(2026, 10, 20, 0, 0, 30, 0, time.Local)
	d := g.Check(ctx)
	if !d.Allowed {
		t.Fatalf("expected a fresh budget after midnight, got %+v", d)
	}
	if d.Usage.Date != "2026-10-20" || d.Usage.DailyCount != 0 {
		t.Errorf("usage = %+v", d.Usage)
	}
}

type failingUsageStore struct{}

func (failingUsageStore) LoadUsage(_ context.Context, today string) (store.UsageRecord, error) {
	return store.FreshUsage(today), &store.ReadError{Path: "test", Err: errors.New("disk on fire")}
}

func (failingUsageStore) SaveUsage(context.Context, store.UsageRecord) error {
	return errors.New("disk on fire")
}

func TestCheck_UnreadableStoreStartsFresh(t *testing.T) {
	g := New(failingUsageStore{}, DefaultLimits(), nil)
	ctx := context.Background()

	if d := g.Check(ctx); !d.Allowed {
		t.Fatalf("expected allowed on unreadable store, got %+v", d)
	}
	if err := g.Commit(ctx); err == nil {
		t.Fatal("expected save error to surface from Commit")
	}
}
