package rates

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ratesource/internal/currency"
	"ratesource/internal/provider"
)

// RateSource defines the operations the rate source exposes to callers such
// as a monetary conversion engine.
type RateSource interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	FlushRate(from, to string) (decimal.Decimal, bool, error)
	FlushRates()
}

// Source composes the currency registry, the remote quote provider, and the
// rate cache into the public rate-source surface. Each Source owns its own
// cache; there is no shared global state.
type Source struct {
	provider provider.RatesProvider
	registry currency.Registry
	cache    *Cache
	log      *zap.SugaredLogger
}

var _ RateSource = (*Source)(nil)

// NewSource creates a Source with an empty cache.
func NewSource(prov provider.RatesProvider, reg currency.Registry, logger *zap.SugaredLogger) *Source {
	return &Source{
		provider: prov,
		registry: reg,
		cache:    NewCache(),
		log:      logger,
	}
}

// GetRate returns the conversion rate from 1 unit of from into to, fetching
// from the quote provider on first request for the pair and caching the
// result. Propagates currency.ErrUnknown, provider.ErrFetchFailed,
// provider.ErrUnknownRate, and provider.ErrMalformedResponse; the cache is
// unchanged on any failure.
func (s *Source) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key, err := KeyFor(s.registry, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return s.cache.GetOrFetch(key, func() (decimal.Decimal, error) {
		return s.provider.GetRate(ctx, string(key.From), string(key.To))
	})
}

// FlushRate evicts the cached rate for the pair and returns it. The boolean
// reports whether an entry was present.
func (s *Source) FlushRate(from, to string) (decimal.Decimal, bool, error) {
	key, err := KeyFor(s.registry, from, to)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	rate, ok := s.cache.FlushOne(key)
	return rate, ok, nil
}

// FlushRates evicts every cached rate.
func (s *Source) FlushRates() {
	s.cache.FlushAll()
}

// GetRateUncached fetches the rate directly from the quote provider,
// bypassing the cache.
//
// Deprecated: use GetRate, which caches results. This entry point survives
// for callers of the old direct-fetch path and will be removed.
func (s *Source) GetRateUncached(ctx context.Context, from, to string) (decimal.Decimal, error) {
	s.log.Warnw("GetRateUncached is deprecated, use GetRate instead", "from", from, "to", to)

	key, err := KeyFor(s.registry, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	return s.provider.GetRate(ctx, string(key.From), string(key.To))
}
