package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileUsageStore_MissingFileIsFresh(t *testing.T) {
	s := NewFileUsageStore(filepath.Join(t.TempDir(), "api_usage.json"))

	rec, err := s.LoadUsage(context.Background(), "2026-10-19")
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, FreshUsage("2026-10-19"), rec)
}

func TestFileUsageStore_CorruptFileIsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_usage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"date": 12`), 0o644))

	rec, err := NewFileUsageStore(path).LoadUsage(context.Background(), "2026-10-19")
	require.Error(t, err)
	assert.Equal(t, 0, rec.DailyCount)
	assert.Equal(t, "2026-10-19", rec.Date)
}

func TestFileUsageStore_SaveLoad(t *testing.T) {
	s := NewFileUsageStore(filepath.Join(t.TempDir(), "api_usage.json"))
	ctx := context.Background()

	in := UsageRecord{Date: "2026-10-19", DailyCount: 3, Timestamps: []float64{1.5, 2.5, 3.5}}
	require.NoError(t, s.SaveUsage(ctx, in))

	out, err := s.LoadUsage(ctx, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileUsageStore_NewDayResetsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_usage.json")
	s := NewFileUsageStore(path)
	ctx := context.Background()

	require.NoError(t, s.SaveUsage(ctx, UsageRecord{Date: "2026-10-18", DailyCount: 150, Timestamps: []float64{1}}))

	rec, err := s.LoadUsage(ctx, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, FreshUsage("2026-10-19"), rec)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk UsageRecord
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "2026-10-19", onDisk.Date)
	assert.Equal(t, 0, onDisk.DailyCount)
}
