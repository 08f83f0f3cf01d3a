package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisContactStore keeps records as JSON members of one sorted set scored
// by submission time in Unix microseconds. Records whose time cannot be
// resolved score -inf and therefore list after every dated record, pre-1970
// ones included.
type RedisContactStore struct {
	rdb     *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisContactStore creates a RedisContactStore using the sorted set key.
func NewRedisContactStore(rdb *redis.Client, key string, timeout time.Duration) *RedisContactStore {
	return &RedisContactStore{rdb: rdb, key: key, timeout: timeout}
}

var (
	_ ContactStore = (*RedisContactStore)(nil)
	_ DB           = (*RedisContactStore)(nil)
	_ Describer    = (*RedisContactStore)(nil)
)

// Init verifies the connection; the sorted set is created by the first ZADD.
func (s *RedisContactStore) Init(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("redis store: ping: %w", err)
	}
	return nil
}

// Append adds rec as a new member and sets rec.ID.
func (s *RedisContactStore) Append(ctx context.Context, rec *model.ContactRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := *rec
	doc.ID = uuid.NewString()
	body, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("redis store: encode: %w", err)
	}

	if err := s.rdb.ZAdd(ctx, s.key, &redis.Z{
		Score:  score(rec.SubmittedAt),
		Member: string(body),
	}).Err(); err != nil {
		return fmt.Errorf("redis store: zadd: %w", err)
	}
	rec.ID = doc.ID
	return nil
}

// ListAll returns every member from the highest score down.
func (s *RedisContactStore) ListAll(ctx context.Context) ([]*model.ContactRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	members, err := s.rdb.ZRevRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis store: zrevrange: %w", err)
	}

	records := make([]*model.ContactRecord, 0, len(members))
	for _, m := range members {
		var rec model.ContactRecord
		if err := json.Unmarshal([]byte(m), &rec); err != nil {
			return nil, fmt.Errorf("redis store: decode member: %w", err)
		}
		records = append(records, &rec)
	}
	// Members tied at -inf come back in member order; rank them by text.
	sortNewestFirst(records)
	return records, nil
}

func (s *RedisContactStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisContactStore) Describe() StoreInfo {
	opts := s.rdb.Options()
	return StoreInfo{
		Backend: "redis",
		Project: fmt.Sprintf("%s/%d/%s", opts.Addr, opts.DB, s.key),
	}
}

func (s *RedisContactStore) Close() error {
	return s.rdb.Close()
}

func score(ts model.Timestamp) float64 {
	t, ok := ts.Time()
	if !ok {
		return math.Inf(-1)
	}
	return float64(t.UnixMicro())
}
