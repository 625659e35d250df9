// Package history keeps the most recent simulation runs per client
// session so they can be listed and cleared over the API. Three
// backends are available: in-process memory (default), Redis for
// shared deployments and SQLite for single-node persistence.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLimit is the per-session retention cap. Stores keep this many
// of the most recent records and silently drop older ones.
const DefaultLimit = 10

// Backend names accepted in configuration.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Record is one stored simulation run. Request and Result hold the
// exact wire payloads of the run that produced them.
type Record struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID   string          `json:"session_id" gorm:"type:varchar(128);index"`
	Algorithm   string          `json:"algorithm" gorm:"type:varchar(16)"`
	TimeQuantum int             `json:"time_quantum,omitempty"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	Request     json.RawMessage `json:"request" gorm:"type:text"`
	Result      json.RawMessage `json:"result" gorm:"type:text"`
}

// Store keeps per-session run history, newest first.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context, sessionID string) ([]Record, error)
	Clear(ctx context.Context, sessionID string) error
	Close() error
}

// Config selects and tunes the history backend.
type Config struct {
	Backend    string
	Limit      int
	Redis      RedisConfig
	SQLitePath string
}

// RedisConfig carries the connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// New builds the store for the configured backend.
func New(cfg Config, logger zerolog.Logger) (Store, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.Limit), nil
	case BackendRedis:
		return NewRedisStore(cfg.Redis, cfg.Limit, logger)
	case BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath, cfg.Limit)
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.Backend)
	}
}
