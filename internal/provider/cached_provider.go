package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// CachedRatesProviderDecorator wraps a RatesProvider with Redis caching.
//
// This layer only dampens upstream traffic with a TTL-bound entry; it is
// independent of the in-memory rate cache sitting above it, which has no
// expiry and is flushed explicitly.
type CachedRatesProviderDecorator struct {
	provider     RatesProvider
	cache        *redis.Client
	ttl          time.Duration
	providerName string
}

// NewCachedRatesProvider creates a new CachedRatesProviderDecorator.
func NewCachedRatesProvider(provider RatesProvider, cache *redis.Client, ttl time.Duration, providerName string) *CachedRatesProviderDecorator {
	return &CachedRatesProviderDecorator{
		provider:     provider,
		cache:        cache,
		ttl:          ttl,
		providerName: providerName,
	}
}

func (p *CachedRatesProviderDecorator) cacheKey(base, quote string) string {
	return fmt.Sprintf("provider_cache:%s:{%s:%s}", p.providerName, base, quote)
}

// GetRate attempts to fetch the rate from cache before calling the underlying provider.
func (p *CachedRatesProviderDecorator) GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	if p.cache == nil {
		return p.provider.GetRate(ctx, base, quote)
	}

	key := p.cacheKey(base, quote)

	// check cache
	if val, err := p.cache.Get(ctx, key).Result(); err == nil {
		if rate, perr := decimal.NewFromString(val); perr == nil {
			return rate, nil
		}
	}

	rate, err := p.provider.GetRate(ctx, base, quote)
	if err != nil {
		return decimal.Decimal{}, err
	}

	_ = p.cache.Set(ctx, key, rate.String(), p.ttl).Err()

	return rate, nil
}

var _ RatesProvider = (*CachedRatesProviderDecorator)(nil)
