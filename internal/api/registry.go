package api

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhisek/codemaster/internal/session"
)

// entry holds one session. mu serializes requests on the same State.
type entry struct {
	mu       sync.Mutex
	state    *session.State
	lastSeen atomic.Int64
}

func (e *entry) touch(now time.Time) {
	e.lastSeen.Store(now.UnixNano())
}

// registry keeps live sessions in memory, keyed by session id.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func newRegistry(now func() time.Time) *registry {
	return &registry{entries: make(map[string]*entry), now: now}
}

func (r *registry) get(id string) (*entry, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

func (r *registry) create() *entry {
	e := &entry{state: session.NewState()}
	e.touch(r.now())

	r.mu.Lock()
	r.entries[e.state.ID] = e
	r.mu.Unlock()
	return e
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweep drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *registry) sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Load() < cutoff {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}
