package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nowme-app/nowme-server/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session data in Redis with a per-session TTL, so
// abandoned sessions age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func textKey(sessionID string) string   { return "session:" + sessionID + ":text" }
func resultKey(sessionID string) string { return "session:" + sessionID + ":result" }

func (s *RedisStore) SaveText(ctx context.Context, sessionID, text string) error {
	return s.client.Set(ctx, textKey(sessionID), text, s.ttl).Err()
}

func (s *RedisStore) GetText(ctx context.Context, sessionID string) (string, error) {
	text, err := s.client.Get(ctx, textKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return text, err
}

func (s *RedisStore) SaveResult(ctx context.Context, sessionID string, result models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, resultKey(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) GetResult(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	data, err := s.client.Get(ctx, resultKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, textKey(sessionID), resultKey(sessionID)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
