package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/redis/go-redis/v9"
)

// usageTTL keeps yesterday's record around long enough to be replaced.
const usageTTL = 48 * time.Hour

// RedisUsageStore keeps the UsageRecord as JSON under a single Redis key so
// several processes share one budget.
type RedisUsageStore struct {
	rdb redis.Cmdable
	key string
}

// NewRedisUsageStore returns a UsageStore on rdb using key.
func NewRedisUsageStore(rdb redis.Cmdable, key string) *RedisUsageStore {
	return &RedisUsageStore{rdb: rdb, key: key}
}

// ConnectRedis opens a client and verifies it with PING.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisUsageStore) LoadUsage(ctx context.Context, today string) (UsageRecord, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return FreshUsage(today), &ReadError{Path: "redis:" + s.key, Err: fs.ErrNotExist}
	}
	if err != nil {
		return FreshUsage(today), &ReadError{Path: "redis:" + s.key, Err: err}
	}

	var rec UsageRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return FreshUsage(today), &ReadError{Path: "redis:" + s.key, Err: fmt.Errorf("decode: %w", err)}
	}
	if rec.Date != today {
		rec = FreshUsage(today)
		if err := s.SaveUsage(ctx, rec); err != nil {
			return rec, err
		}
	}
	if rec.Timestamps == nil {
		rec.Timestamps = []float64{}
	}
	return rec, nil
}

func (s *RedisUsageStore) SaveUsage(ctx context.Context, rec UsageRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode usage: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, usageTTL).Err(); err != nil {
		return fmt.Errorf("save usage: %w", err)
	}
	return nil
}
