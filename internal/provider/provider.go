package provider

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// RatesProvider defines an interface for fetching exchange rates from external sources.
type RatesProvider interface {
	GetRate(ctx context.Context, base, quote string) (decimal.Decimal, error)
}

// ErrFetchFailed indicates a transport-level failure talking to the quote endpoint.
var ErrFetchFailed = errors.New("rate fetch failed")

// ErrUnknownRate indicates the quote endpoint reported an error for the requested pair.
var ErrUnknownRate = errors.New("unknown rate")

// ErrMalformedResponse indicates the quote endpoint payload could not be parsed.
var ErrMalformedResponse = errors.New("malformed quote response")
