package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"mealQuote/internal/modules/quotebuilder/application/port"
)

const (
	KeyQuotes     = "quotes"
	KeyBasePrices = "basePrices"
	KeyPricing    = "pricing"
	KeyProducts   = "products"
	KeyUsers      = "users"

	quotePrefix    = "quote:"
	customerPrefix = "customer:"
	cacheDelimiter = ":"

	outcomeHit   = "hit"
	outcomeMiss  = "miss"
	outcomeStale = "stale"
	outcomeError = "error"
)

func QuoteKey(id string) string {
	return quotePrefix + strings.TrimSpace(id)
}

func QuoteHistoryKey(id string) string {
	return QuoteKey(id) + cacheDelimiter + "history"
}

func CustomerKey(id string) string {
	return customerPrefix + strings.TrimSpace(id)
}

// QueryCache memoizes remote reads by logical key. Concurrent misses on the same key share
// one upstream call. Entries live until invalidated, or for ttl when ttl > 0; an expired
// entry is kept so it can be served when a refresh fails. Cached values are shared between
// callers and must not be mutated.
type QueryCache struct {
	mu         sync.RWMutex
	entries     map[string]*queryCacheEntry
	inflight    map[string]int
	generations map[string]uint64
	group       singleflight.Group
	ttl        time.Duration
	now        func() time.Time
	metrics    port.CacheMetrics
}

type queryCacheEntry struct {
	value     any
	fetchedAt time.Time
}

func NewQueryCache(ttl time.Duration, metrics port.CacheMetrics) *QueryCache {
	if ttl < 0 {
		ttl = 0
	}
	return &QueryCache{
		entries:     make(map[string]*queryCacheEntry),
		inflight:    make(map[string]int),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
		metrics:     metrics,
	}
}

// Fetch returns the cached value for key or loads it with fetch. The load runs detached from
// the caller's cancellation so a waiting caller that gives up does not fail the others.
func (c *QueryCache) Fetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if value, ok := c.fresh(key); ok {
		c.observe(key, outcomeHit)
		return value, nil
	}
	c.observe(key, outcomeMiss)

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(loadCtx, key, fetch)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *QueryCache) load(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	generation := c.generations[key]
	c.inflight[key]++
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.inflight[key]--; c.inflight[key] <= 0 {
			delete(c.inflight, key)
			delete(c.generations, key)
		}
		c.mu.Unlock()
	}()

	value, err := fetch(ctx)
	if err == nil {
		c.store(key, value, generation)
		return value, nil
	}

	if errors.Is(err, port.ErrNotFound) {
		c.Invalidate(key)
		return nil, err
	}
	if stale, ok := c.peek(key); ok {
		slog.Warn("query cache serving stale entry", slog.String("key", key), slog.Any("error", err))
		c.observe(key, outcomeStale)
		return stale, nil
	}
	c.observe(key, outcomeError)
	return nil, err
}

func (c *QueryCache) fresh(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.fetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.value, true
}

func (c *QueryCache) peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// store drops results of loads that started before key was invalidated.
func (c *QueryCache) store(key string, value any, generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generations[key] {
		slog.Debug("query cache discarded superseded result", slog.String("key", key))
		return
	}
	c.entries[key] = &queryCacheEntry{value: value, fetchedAt: c.now().UTC()}
}

// Invalidate drops the given keys. Loads already in flight for them will not repopulate the cache.
func (c *QueryCache) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
		if c.inflight[key] > 0 {
			c.generations[key]++
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.group.Forget(key)
		if c.metrics != nil {
			c.metrics.ObserveInvalidation(keyFamily(key))
		}
	}
}

// InvalidatePrefix drops every cached or loading key starting with prefix.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	if prefix == "" {
		return
	}
	c.mu.RLock()
	keys := make([]string, 0)
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	for key := range c.inflight {
		if strings.HasPrefix(key, prefix) && !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	c.mu.RUnlock()

	c.Invalidate(keys...)
}

// Len reports the number of cached entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) observe(key, outcome string) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveLookup(keyFamily(key), outcome)
}

// keyFamily strips resource ids so metric labels stay bounded.
func keyFamily(key string) string {
	switch {
	case strings.HasPrefix(key, quotePrefix) && strings.HasSuffix(key, cacheDelimiter+"history"):
		return "quote:history"
	case strings.HasPrefix(key, quotePrefix):
		return "quote"
	case strings.HasPrefix(key, customerPrefix):
		return "customer"
	default:
		return key
	}
}

func cachedFetch[T any](ctx context.Context, cache *QueryCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("query cache %s: unexpected %T", key, value)
	}
	return typed, nil
}

// cachedList is cachedFetch for slices; the caller gets its own copy.
func cachedList[E any](ctx context.Context, cache *QueryCache, key string, fetch func(context.Context) ([]E, error)) ([]E, error) {
	items, err := cachedFetch(ctx, cache, key, fetch)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}
