package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisKeyPrefix namespaces the per-session lists.
const redisKeyPrefix = "schedsim:history:"

// RedisStore keeps history in Redis, one list per session with the
// newest record at the head. LPUSH+LTRIM in a pipeline enforces the
// cap atomically.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
	limit  int
}

// NewRedisStore connects to Redis and verifies the connection before
// returning the store.
func NewRedisStore(cfg RedisConfig, limit int, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	storeLogger := logger.With().Str("component", "history").Logger()
	storeLogger.Info().Str("addr", cfg.Addr).Msg("redis history store initialized")

	return &RedisStore{
		client: client,
		logger: storeLogger,
		limit:  limit,
	}, nil
}

func (s *RedisStore) Append(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}

	key := redisKeyPrefix + rec.SessionID
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(s.limit-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	entries, err := s.client.LRange(ctx, redisKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list history records: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		var rec Record
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			s.logger.Debug().Err(err).Str("session", sessionID).Msg("skipping undecodable history entry")
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
