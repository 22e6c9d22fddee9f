package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no session is stored under the given id.
var ErrNotFound = errors.New("session not found")

// Store persists serialized sessions keyed by id. Implementations must be
// safe for concurrent use; callers serialize writes to the same id.
type Store interface {
	// Get returns the stored bytes for id or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)

	// Put creates or replaces the value stored under id.
	Put(ctx context.Context, id string, data []byte) error

	// Delete removes id, returning ErrNotFound if it was absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Pinger is implemented by stores backed by a remote service. The HTTP
// readiness probe uses it when present.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend names accepted by Config.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config selects and configures a session store backend.
type Config struct {
	Backend string       `mapstructure:"backend"`
	SQLite  SQLiteConfig `mapstructure:"sqlite"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Mongo   MongoConfig  `mapstructure:"mongo"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// Path is the database file. Empty resolves via DefaultDBPath.
	Path string `mapstructure:"path"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	URL    string        `mapstructure:"url"`
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// Open connects the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		path := cfg.SQLite.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		} else if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		s, err := OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
