package api

import (
	"context"

	"github.com/shopspring/decimal"
)

// mockRateSource implements rates.RateSource for testing.
type mockRateSource struct {
	getRateFunc    func(ctx context.Context, from, to string) (decimal.Decimal, error)
	flushRateFunc  func(from, to string) (decimal.Decimal, bool, error)
	flushRatesFunc func()
}

func (m *mockRateSource) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	return m.getRateFunc(ctx, from, to)
}

func (m *mockRateSource) FlushRate(from, to string) (decimal.Decimal, bool, error) {
	return m.flushRateFunc(from, to)
}

func (m *mockRateSource) FlushRates() {
	if m.flushRatesFunc != nil {
		m.flushRatesFunc()
	}
}
