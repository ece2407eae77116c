// internal/common/database/kv.go
package database

import (
	"context"
	"errors"
	"fmt"

	"college-tracker/internal/common/config"
)

// ErrKeyNotFound is returned by Get when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// KV is the persistence boundary of the Application State Store: a flat
// string-keyed map of JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open builds the backend selected by cfg.Backend and checks it is reachable.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileKV(cfg.File.Dir)

	case "redis":
		client, err := NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		return NewRedisKV(client.Client, cfg.Redis.KeyPrefix), nil

	case "postgres":
		client, err := NewPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("postgres ping failed: %w", err)
		}
		kv := NewPostgresKV(client.DB)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		return kv, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
