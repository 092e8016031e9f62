package persistence

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"MultiStepForm/storage/redis"
)

// RedisStore 把表单 blob 存成普通字符串键，不设置过期时间，数据不会被自动删除
type RedisStore struct {
	client goredis.Cmdable
}

func NewRedisStore(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, redis.Key(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) SetItem(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redis.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
