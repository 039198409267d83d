// Package redis caches identity answers in Redis. Provider activity is read
// on every quote submission and changes rarely, so it is served from the
// cache for a configured TTL. Ownership checks are passed through.
package redis

import (
	"context"
	"errors"
	"time"

	"bidding/internal/core/domain/model/kernel"
	"bidding/internal/core/domain/model/order"
	"bidding/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const providerKeyPrefix = "bidding:provider-active:"

type store interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// CachedIdentity decorates a ports.Identity. Cache failures are logged and
// the call falls through to the wrapped identity.
type CachedIdentity struct {
	next   ports.Identity
	store  store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedIdentity(next ports.Identity, client *goredis.Client, ttl time.Duration, logger *zap.Logger) *CachedIdentity {
	return newCachedIdentity(next, client, ttl, logger)
}

func newCachedIdentity(next ports.Identity, s store, ttl time.Duration, logger *zap.Logger) *CachedIdentity {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedIdentity{
		next:   next,
		store:  s,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "provider_cache")),
	}
}

func (c *CachedIdentity) IsOwner(ctx context.Context, userID kernel.UUID, orderID order.ID) (bool, error) {
	return c.next.IsOwner(ctx, userID, orderID)
}

func (c *CachedIdentity) IsActiveProvider(ctx context.Context, providerID kernel.UUID) (bool, error) {
	key := providerKey(providerID)

	cached, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached == "1", nil
	case !errors.Is(err, goredis.Nil):
		c.logger.Warn("provider cache read failed", zap.String("key", key), zap.Error(err))
	}

	active, err := c.next.IsActiveProvider(ctx, providerID)
	if err != nil {
		return false, err
	}

	value := "0"
	if active {
		value = "1"
	}
	if err = c.store.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("provider cache write failed", zap.String("key", key), zap.Error(err))
	}

	return active, nil
}

// Invalidate drops the cached activity of a provider.
func (c *CachedIdentity) Invalidate(ctx context.Context, providerID kernel.UUID) error {
	return c.store.Del(ctx, providerKey(providerID)).Err()
}

func providerKey(providerID kernel.UUID) string {
	return providerKeyPrefix + providerID.String()
}
