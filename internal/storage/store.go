package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrNotFound = errors.New("storage: not found")

// Store persists string blobs by key. Writes are last-writer-wins.
type Store interface {
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendDiskv  Backend = "diskv"
	BackendRedis  Backend = "redis"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendDiskv, BackendRedis:
		return true
	default:
		return false
	}
}

type Options struct {
	Backend    Backend
	DataDir    string
	SQLitePath string
	RedisURL   string
}

// Open creates the store selected by opts.Backend. SQLite is the default.
func Open(ctx context.Context, opts Options) (Store, error) {
	backend := Backend(strings.ToLower(strings.TrimSpace(string(opts.Backend))))
	if backend == "" {
		backend = BackendSQLite
	}
	switch backend {
	case BackendSQLite:
		path := opts.SQLitePath
		if path == "" {
			path = filepath.Join(opts.DataDir, "hummingbird.db")
		}
		return OpenSQLite(path)
	case BackendDiskv:
		return NewDiskvStore(filepath.Join(opts.DataDir, "state")), nil
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
