package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/devfinder/internal/domain/session"
	"github.com/khoahotran/devfinder/internal/view"
)

const sessionKeyPrefix = "devfinder:session:"

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisSessionStore struct {
	rdb redisKV
}

func NewRedisSessionStore(rdb *redis.Client) session.Store {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func (s *redisSessionStore) Load(ctx context.Context, id string) (*view.State, error) {
	b, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var st view.State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &st, nil
}

func (s *redisSessionStore) Save(ctx context.Context, id string, state view.State, ttl time.Duration) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := s.rdb.Set(ctx, sessionKey(id), b, ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
