package store

import (
	"context"
	"log/slog"
	"sync"
)

// UsageRecord is the process-wide oracle call ledger.
type UsageRecord struct {
	Date       string    `json:"date"` // local calendar date, YYYY-MM-DD
	DailyCount int       `json:"daily_count"`
	Timestamps []float64 `json:"timestamps"` // epoch seconds
}

// FreshUsage returns an empty record for date.
func FreshUsage(date string) UsageRecord {
	return UsageRecord{Date: date, Timestamps: []float64{}}
}

// UsageStore loads and saves the UsageRecord.
type UsageStore interface {
	// LoadUsage returns the record for today. A record from another day is
	// replaced by a fresh one, which is persisted immediately. A missing or
	// corrupt record yields a fresh one together with a *ReadError.
	LoadUsage(ctx context.Context, today string) (UsageRecord, error)

	// SaveUsage overwrites the stored record.
	SaveUsage(ctx context.Context, rec UsageRecord) error
}

// FileUsageStore keeps the UsageRecord in a JSON file.
type FileUsageStore struct {
	mu   sync.Mutex
	path string
}

// NewFileUsageStore returns a UsageStore backed by the file at path.
func NewFileUsageStore(path string) *FileUsageStore {
	return &FileUsageStore{path: path}
}

func (s *FileUsageStore) LoadUsage(_ context.Context, today string) (UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec UsageRecord
	if err := readJSON(s.path, &rec); err != nil {
		return FreshUsage(today), err
	}
	if rec.Date != today {
		rec = FreshUsage(today)
		if err := writeJSONAtomic(s.path, rec); err != nil {
			slog.Warn("failed to persist usage reset", "path", s.path, "error", err)
		}
	}
	if rec.Timestamps == nil {
		rec.Timestamps = []float64{}
	}
	return rec, nil
}

func (s *FileUsageStore) SaveUsage(_ context.Context, rec UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, rec)
}
