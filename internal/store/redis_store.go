package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gurumate/gurumate/internal/state"
)

// StateKey is the fixed slot name for the persisted document, mirroring the
// single local-storage key of the original client.
const StateKey = "gurumate:state"

// RedisStore keeps the document under a fixed key in Redis. Used when the
// deployment wants the assistant state to survive the host it runs on.
type RedisStore struct {
	rdb *redis.Client
	key string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, key: StateKey}
}

func (s *RedisStore) Load(ctx context.Context) (state.AppState, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return state.Default(), nil
		}
		return state.Default(), err
	}
	return decodeDocument(data), nil
}

func (s *RedisStore) Save(ctx context.Context, st state.AppState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
