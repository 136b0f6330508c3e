package redis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashwell/cashwell/internal/usecase/mocks"
)

func TestPriceCacheMissFetchesUpstream(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	upstream := mocks.NewMockPriceSource()
	upstream.Prices["SOL"] = decimal.NewFromInt(42)

	cache := NewPriceCache(client, upstream, time.Minute)
	ctx := context.Background()

	price, err := cache.Price(ctx, "SOL")
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("expected 42, got %s", price)
	}

	// The fetched price is cached.
	if got, err := client.Get(ctx, cache.prefix+"SOL").Result(); err != nil || got != "42" {
		t.Fatalf("expected cached 42, got %q err=%v", got, err)
	}
}

func TestPriceCacheHitSkipsUpstream(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	calls := 0
	upstream := mocks.NewMockPriceSource()
	upstream.PriceFunc = func(ctx context.Context, symbol string) (decimal.Decimal, error) {
		calls++
		return decimal.NewFromInt(42), nil
	}

	cache := NewPriceCache(client, upstream, time.Minute)
	ctx := context.Background()

	if err := client.Set(ctx, cache.prefix+"SOL", "41.5", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	price, err := cache.Price(ctx, "SOL")
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("41.5")) {
		t.Fatalf("expected cached 41.5, got %s", price)
	}
	if calls != 0 {
		t.Fatalf("upstream should not be called on a hit, got %d calls", calls)
	}
}

func TestPriceCacheExpiryRefetches(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	upstream := mocks.NewMockPriceSource()
	upstream.Prices["SOL"] = decimal.NewFromInt(50)

	cache := NewPriceCache(client, upstream, time.Second)
	ctx := context.Background()

	if _, err := cache.Price(ctx, "SOL"); err != nil {
		t.Fatalf("price failed: %v", err)
	}

	mr.FastForward(2 * time.Second)
	upstream.Prices["SOL"] = decimal.NewFromInt(60)

	price, err := cache.Price(ctx, "SOL")
	if err != nil {
		t.Fatalf("price failed: %v", err)
	}
	if !price.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected refetched 60, got %s", price)
	}
}
