package cache

import (
	"bemanai/internal/model"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxChatTurns is how many turns of a chat session are kept.
const MaxChatTurns = 20

// ChatCache stores the recent turns of websocket chat sessions
type ChatCache interface {
	Append(ctx context.Context, sessionID string, turns ...model.ChatTurn) error
	History(ctx context.Context, sessionID string) ([]model.ChatTurn, error)
	Delete(ctx context.Context, sessionID string) error
}

type chatCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChatCache(client *redis.Client) ChatCache {
	return &chatCache{
		client: client,
		ttl:    30 * time.Minute,
	}
}

func (c *chatCache) key(id string) string {
	return "chat:" + id
}

func (c *chatCache) Append(ctx context.Context, sessionID string, turns ...model.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		data, err := encode(t)
		if err != nil {
			return err
		}
		values = append(values, data)
	}
	key := c.key(sessionID)
	pipe := c.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, -MaxChatTurns, -1)
	pipe.Expire(ctx, key, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *chatCache) History(ctx context.Context, sessionID string) ([]model.ChatTurn, error) {
	items, err := c.client.LRange(ctx, c.key(sessionID), 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	turns := make([]model.ChatTurn, 0, len(items))
	for _, item := range items {
		var t model.ChatTurn
		if err := decode([]byte(item), &t); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (c *chatCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}
