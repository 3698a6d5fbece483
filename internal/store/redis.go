package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lessonloop/internal/models"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "lessonloop:"

// RedisStore keeps the serialized run list under one Redis key.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", addr)
	return &RedisStore{client: client, ctx: ctx}, nil
}

func (s *RedisStore) Load() ([]models.ClassRun, error) {
	data, err := s.client.Get(s.ctx, redisKeyPrefix+slotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state from redis: %w", err)
	}
	return decodeRuns(data), nil
}

func (s *RedisStore) Save(runs []models.ClassRun) error {
	data, err := encodeRuns(runs)
	if err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}
	if err := s.client.Set(s.ctx, redisKeyPrefix+slotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
