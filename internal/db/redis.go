package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/maanvikp20/promosite/internal/models"
)

// RedisBackend keeps a whole store as one JSON array under a single key.
// SET replaces the value in one step, which gives the same all-or-nothing
// write as the file rename.
type RedisBackend struct {
	client redis.Cmdable
	key    string
}

func NewRedisBackend(client redis.Cmdable, key string) *RedisBackend {
	return &RedisBackend{client: client, key: key}
}

func (b *RedisBackend) Key() string { return b.key }

func (b *RedisBackend) Load(ctx context.Context) ([]models.Record, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return decodeRecords(data)
}

func (b *RedisBackend) Save(ctx context.Context, records []models.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}
