package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/usecase"
)

// PriceCache implements usecase.PriceSource by caching an upstream source
// in Redis with a TTL. Stale reads are fine: prices feed display
// valuations, and the next refresh overwrites them.
type PriceCache struct {
	client   *redis.Client
	upstream usecase.PriceSource
	ttl      time.Duration
	prefix   string
}

// NewPriceCache creates a new PriceCache around an upstream source.
func NewPriceCache(client *redis.Client, upstream usecase.PriceSource, ttl time.Duration) *PriceCache {
	return &PriceCache{
		client:   client,
		upstream: upstream,
		ttl:      ttl,
		prefix:   "price:",
	}
}

// Price returns the cached price for symbol, falling through to the
// upstream source on a miss. A failed cache write does not fail the read.
func (c *PriceCache) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := c.prefix + symbol

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if price, perr := decimal.NewFromString(cached); perr == nil {
			return price, nil
		}
		// Unparseable cache entry: drop it and refetch.
		_ = c.client.Del(ctx, key).Err()
	} else if err != redis.Nil {
		return decimal.Zero, err
	}

	price, err := c.upstream.Price(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	_ = c.client.Set(ctx, key, price.String(), c.ttl).Err()
	return price, nil
}
