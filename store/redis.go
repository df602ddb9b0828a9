package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nathoo/trailhead/logger"
	"github.com/nathoo/trailhead/types"
)

// RedisStore keeps the state as one JSON value under a single key, so the
// state survives restarts and can be shared by several service instances.
type RedisStore struct {
	client  *redis.Client
	key     string
	initial types.GameState
	logger  *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and seeds key with initial unless a
// state is already stored there.
func NewRedisStore(ctx context.Context, redisURL, key string, initial types.GameState, logger *slog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	data, err := json.Marshal(initial)
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("encoding initial state: %w", err)
	}
	seeded, err := rdb.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis setnx failed: %w", err)
	}

	logger.Info("Connected to Redis for game state", "key", key, "seeded", seeded)

	return &RedisStore{
		client:  rdb,
		key:     key,
		initial: initial,
		logger:  logger,
	}, nil
}

func (r *RedisStore) Get(ctx context.Context) (types.GameState, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Redis key not found, using initial state", "key", r.key)
			return r.initial, nil
		}
		return types.GameState{}, fmt.Errorf("redis get failed: %w", err)
	}

	var s types.GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return types.GameState{}, fmt.Errorf("decoding stored state: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Replace(ctx context.Context, s types.GameState) (types.GameState, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return types.GameState{}, fmt.Errorf("encoding state: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		logger.WithError(r.logger, err).Error("Redis SET failed", "key", r.key)
		return types.GameState{}, fmt.Errorf("redis set failed: %w", err)
	}
	r.logger.Debug("Redis SET successful", "key", r.key)
	return s, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		logger.WithError(r.logger, err).Error("Failed to close Redis connection")
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}
