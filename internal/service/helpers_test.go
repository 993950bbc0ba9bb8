package service

import (
	"bemanai/internal/cache"
	"bemanai/internal/catalog"
	"bemanai/internal/model"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return fixedNow }
	return opts
}

// tickingOptions stamps each result one second after the previous one.
func tickingOptions() Options {
	opts := DefaultOptions()
	var mu sync.Mutex
	tick := 0
	opts.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return fixedNow.Add(time.Duration(tick) * time.Second)
	}
	return opts
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("KindOf(%v) = %s, want %s", err, got, kind)
	}
}

type memoryResultCache struct {
	mu      sync.Mutex
	emotion map[string]model.EmotionResult
	decode  map[string]model.DecodeResult
	gets    int
}

func newMemoryResultCache() *memoryResultCache {
	return &memoryResultCache{
		emotion: map[string]model.EmotionResult{},
		decode:  map[string]model.DecodeResult{},
	}
}

func (c *memoryResultCache) GetEmotion(_ context.Context, key string) (*model.EmotionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	res, ok := c.emotion[key]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (c *memoryResultCache) SetEmotion(_ context.Context, key string, res *model.EmotionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emotion[key] = *res
	return nil
}

func (c *memoryResultCache) GetDecode(_ context.Context, key string) (*model.DecodeResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	res, ok := c.decode[key]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (c *memoryResultCache) SetDecode(_ context.Context, key string, res *model.DecodeResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decode[key] = *res
	return nil
}

type failingCache struct{ memoryResultCache }

func (*failingCache) GetEmotion(context.Context, string) (*model.EmotionResult, error) {
	return nil, errors.New("redis down")
}

func (*failingCache) SetEmotion(context.Context, string, *model.EmotionResult) error {
	return errors.New("redis down")
}

type memoryTrends struct {
	mu     sync.Mutex
	counts map[string]map[string]int
}

func (m *memoryTrends) Record(_ context.Context, category string, keywords []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]map[string]int{}
	}
	if m.counts[category] == nil {
		m.counts[category] = map[string]int{}
	}
	for _, kw := range keywords {
		m.counts[category][kw]++
	}
	return nil
}

func (m *memoryTrends) Top(context.Context, string, int) ([]cache.KeywordCount, error) {
	return nil, nil
}
