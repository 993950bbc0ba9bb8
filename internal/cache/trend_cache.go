package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TrendCache keeps per-category keyword counts in Redis sorted sets
type TrendCache interface {
	Record(ctx context.Context, category string, keywords []string) error
	Top(ctx context.Context, category string, limit int) ([]KeywordCount, error)
}

// KeywordCount is one entry of a keyword ranking
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
	Rank    int    `json:"rank"`
}

type trendCache struct {
	client *redis.Client
}

// NewTrendCache creates a new keyword trend cache
func NewTrendCache(client *redis.Client) TrendCache {
	return &trendCache{
		client: client,
	}
}

func (c *trendCache) key(category string) string {
	return fmt.Sprintf("trend:%s", category)
}

func (c *trendCache) Record(ctx context.Context, category string, keywords []string) error {
	if len(keywords) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, kw := range keywords {
		pipe.ZIncrBy(ctx, c.key(category), 1, kw)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *trendCache) Top(ctx context.Context, category string, limit int) ([]KeywordCount, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(category), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	return rankEntries(results), nil
}

func rankEntries(results []redis.Z) []KeywordCount {
	entries := make([]KeywordCount, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		entries[i] = KeywordCount{
			Keyword: member,
			Count:   int(z.Score),
			Rank:    i + 1,
		}
	}
	return entries
}
