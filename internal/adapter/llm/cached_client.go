package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quiz-reflect/internal/cache"
	"quiz-reflect/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedClient decorates a CompletionClient with a reply cache keyed by the
// model and the full conversation. Cache failures never fail a completion.
type CachedClient struct {
	inner   domain.CompletionClient
	cache   domain.Cache
	ttl     time.Duration
	logger  *zap.Logger
	sfGroup singleflight.Group
}

// NewCachedClient wraps inner. A zero ttl stores replies without expiry.
func NewCachedClient(inner domain.CompletionClient, c domain.Cache, ttl time.Duration, logger *zap.Logger) (*CachedClient, error) {
	if inner == nil {
		return nil, fmt.Errorf("inner completion client cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for CachedClient")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{
		inner:  inner,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Complete returns a cached reply when one exists, otherwise delegates and
// stores the reply. Concurrent identical requests share one upstream call.
func (c *CachedClient) Complete(ctx context.Context, messages []domain.ChatMessage, model string) (string, error) {
	cacheKey := CompletionCacheKey(messages, model)

	cached, err := c.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		c.logger.Debug("Completion cache hit", zap.String("cache_key", cacheKey))
		return cached, nil
	case errors.Is(err, domain.ErrCacheMiss):
		c.logger.Debug("Completion cache miss", zap.String("cache_key", cacheKey))
	default:
		c.logger.Warn("Completion cache read failed", zap.String("cache_key", cacheKey), zap.Error(err))
	}

	res, err, _ := c.sfGroup.Do(cacheKey, func() (interface{}, error) {
		reply, callErr := c.inner.Complete(ctx, messages, model)
		if callErr != nil {
			return nil, callErr
		}
		if setErr := c.cache.Set(ctx, cacheKey, reply, c.ttl); setErr != nil {
			c.logger.Warn("Failed to cache completion", zap.String("cache_key", cacheKey), zap.Error(setErr))
		}
		return reply, nil
	})
	if err != nil {
		return "", err
	}

	reply, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type from singleflight.Do for completion: %T", res)
	}
	return reply, nil
}

// CompletionCacheKey derives the cache key for a conversation.
func CompletionCacheKey(messages []domain.ChatMessage, model string) string {
	parts := make([]string, 0, len(messages)*2)
	for _, m := range messages {
		parts = append(parts, string(m.Role), m.Content)
	}
	return cache.GenerateCacheKey("completion", model, cache.HashParts(parts...))
}

var _ domain.CompletionClient = (*CachedClient)(nil)
