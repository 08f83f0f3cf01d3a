package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contactdesk/backend/internal/config"
	"github.com/go-redis/redis/v8"
)

// Open builds the ContactStore selected by cfg.StoreBackend, runs its Init
// and wraps it with metrics. The caller owns the returned store and must
// Close it.
func Open(ctx context.Context, cfg *config.Config) (ContactStore, error) {
	var store ContactStore

	switch cfg.StoreBackend {
	case config.BackendFile:
		store = NewFileContactStore(cfg.DataFile)

	case config.BackendPostgres:
		pool, err := NewPool(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = NewPgContactStore(pool, cfg.StoreTimeout)

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  cfg.StoreTimeout,
			ReadTimeout:  cfg.StoreTimeout,
			WriteTimeout: cfg.StoreTimeout,
		})
		store = NewRedisContactStore(rdb, cfg.RedisKey, cfg.StoreTimeout)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
	}

	instrumented := NewInstrumentedStore(store, cfg.StoreBackend)
	if err := instrumented.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init %s store: %w", cfg.StoreBackend, err)
	}

	info := instrumented.Describe()
	slog.Info("contact store ready", "backend", info.Backend, "project", info.Project)
	return instrumented, nil
}
