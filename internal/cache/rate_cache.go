package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter counts requests per subject in fixed one-minute windows
type RateLimiter interface {
	// Allow records one request and returns ErrRateLimited once the window
	// is used up. remaining is never negative.
	Allow(ctx context.Context, subject string) (remaining int, err error)
}

type rateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per subject
func NewRateLimiter(client *redis.Client, perMinute int) RateLimiter {
	return &rateLimiter{
		client: client,
		limit:  perMinute,
		window: time.Minute,
		now:    time.Now,
	}
}

// WindowKey names the counter of subject for the window holding t.
func WindowKey(subject string, t time.Time, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%s:%d", subject, t.Unix()/int64(window.Seconds()))
}

func (l *rateLimiter) Allow(ctx context.Context, subject string) (int, error) {
	key := WindowKey(subject, l.now(), l.window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return remaining(l.limit, incr.Val())
}

func remaining(limit int, count int64) (int, error) {
	if count > int64(limit) {
		return 0, ErrRateLimited
	}
	return limit - int(count), nil
}
