package rates

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
