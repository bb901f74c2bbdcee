// Package governor enforces the oracle call budget: a daily count and a
// rolling per-minute window, shared by every session of the process.
package governor

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/abhisek/codemaster/internal/store"
)

// Reason explains a denial.
type Reason string

const (
	ReasonDailyLimit  Reason = "daily-limit"
	ReasonMinuteLimit Reason = "minute-limit"
)

// Limits is the call budget.
type Limits struct {
	DailyLimit     int
	PerMinuteLimit int
	Window         time.Duration
}

// DefaultLimits returns 200 calls a day and 10 a minute.
func DefaultLimits() Limits {
	return Limits{DailyLimit: 200, PerMinuteLimit: 10, Window: time.Minute}
}

// Usage is a point-in-time view of the budget.
type Usage struct {
	Date        string
	DailyCount  int
	DailyLimit  int
	MinuteCount int
	MinuteLimit int

	// RetryAfter is how long until the oldest call leaves the window.
	// Zero unless the minute budget is exhausted.
	RetryAfter time.Duration
}

// DailyRemaining returns the calls left today.
func (u Usage) DailyRemaining() int { return max(0, u.DailyLimit-u.DailyCount) }

// MinuteRemaining returns the calls left in the current window.
func (u Usage) MinuteRemaining() int { return max(0, u.MinuteLimit-u.MinuteCount) }

// Decision is the result of Check.
type Decision struct {
	Allowed bool
	Reason  Reason // empty when allowed
	Usage   Usage
}

// Governor gates oracle calls. Check and Commit are separate steps: a
// caller checks, performs the call, then commits whether or not the call
// succeeded.
type Governor struct {
	mu     sync.Mutex
	store  store.UsageStore
	limits Limits
	now    func() time.Time
}

// New creates a Governor. A nil clock means time.Now.
func New(s store.UsageStore, limits Limits, clock func() time.Time) *Governor {
	if clock == nil {
		clock = time.Now
	}
	if limits.Window <= 0 {
		limits.Window = time.Minute
	}
	return &Governor{store: s, limits: limits, now: clock}
}

// Limits returns the configured budget.
func (g *Governor) Limits() Limits { return g.limits }

// Check reports whether one more call is allowed. It never changes the
// stored counts.
func (g *Governor) Check(ctx context.Context) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	rec := g.load(ctx, now)
	usage := g.usage(rec, now)

	switch {
	case usage.DailyCount >= g.limits.DailyLimit:
		return Decision{Reason: ReasonDailyLimit, Usage: usage}
	case usage.MinuteCount >= g.limits.PerMinuteLimit:
		return Decision{Reason: ReasonMinuteLimit, Usage: usage}
	}
	return Decision{Allowed: true, Usage: usage}
}

// Commit records one call made now. It does not re-check the limits.
func (g *Governor) Commit(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	rec := g.load(ctx, now)
	rec.Timestamps = append(rec.Timestamps, epochSeconds(now))
	rec.DailyCount++

	return g.store.SaveUsage(ctx, rec)
}

// Status returns the current usage without deciding anything.
func (g *Governor) Status(ctx context.Context) Usage {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	return g.usage(g.load(ctx, now), now)
}

func (g *Governor) load(ctx context.Context, now time.Time) store.UsageRecord {
	rec, err := g.store.LoadUsage(ctx, now.Format(time.DateOnly))
	if err != nil {
		var re *store.ReadError
		if errors.As(err, &re) && re.NotExist() {
			slog.Debug("usage record not found, starting fresh")
		} else {
			slog.Warn("failed to load usage record, starting fresh", "error", err)
		}
	}
	rec.Timestamps = pruneWindow(rec.Timestamps, now, g.limits.Window)
	return rec
}

func (g *Governor) usage(rec store.UsageRecord, now time.Time) Usage {
	u := Usage{
		Date:        rec.Date,
		DailyCount:  rec.DailyCount,
		DailyLimit:  g.limits.DailyLimit,
		MinuteCount: len(rec.Timestamps),
		MinuteLimit: g.limits.PerMinuteLimit,
	}
	if u.MinuteCount >= u.MinuteLimit && len(rec.Timestamps) > 0 {
		oldest := rec.Timestamps[0]
		for _, ts := range rec.Timestamps[1:] {
			oldest = math.Min(oldest, ts)
		}
		leaves := oldest + g.limits.Window.Seconds()
		u.RetryAfter = max(0, time.Duration((leaves-epochSeconds(now))*float64(time.Second)))
	}
	return u
}

// Prune returns the timestamps younger than one minute at now.
func Prune(ts []float64, now time.Time) []float64 {
	return pruneWindow(ts, now, time.Minute)
}

func pruneWindow(ts []float64, now time.Time, window time.Duration) []float64 {
	cutoff := window.Seconds()
	nowSec := epochSeconds(now)
	out := make([]float64, 0, len(ts))
	for _, t := range ts {
		if nowSec-t < cutoff {
			out = append(out, t)
		}
	}
	return out
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
