package cache

import (
	"bemanai/internal/model"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache handles Redis storage of finished analysis results
type ResultCache interface {
	GetEmotion(ctx context.Context, key string) (*model.EmotionResult, error)
	SetEmotion(ctx context.Context, key string, res *model.EmotionResult) error
	GetDecode(ctx context.Context, key string) (*model.DecodeResult, error)
	SetDecode(ctx context.Context, key string, res *model.DecodeResult) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client, ttl time.Duration) ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &resultCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *resultCache) GetEmotion(ctx context.Context, key string) (*model.EmotionResult, error) {
	var res model.EmotionResult
	ok, err := c.get(ctx, key, &res)
	if err != nil || !ok {
		return nil, err
	}
	return &res, nil
}

func (c *resultCache) SetEmotion(ctx context.Context, key string, res *model.EmotionResult) error {
	return c.set(ctx, key, res)
}

func (c *resultCache) GetDecode(ctx context.Context, key string) (*model.DecodeResult, error) {
	var res model.DecodeResult
	ok, err := c.get(ctx, key, &res)
	if err != nil || !ok {
		return nil, err
	}
	return &res, nil
}

func (c *resultCache) SetDecode(ctx context.Context, key string, res *model.DecodeResult) error {
	return c.set(ctx, key, res)
}

func (c *resultCache) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := decode(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (c *resultCache) set(ctx context.Context, key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
