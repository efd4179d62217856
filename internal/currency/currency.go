// Package currency implements the currency registry: resolution of raw
// currency codes into their canonical identities.
package currency

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a canonical, uppercase ISO-style currency code.
type Code string

// ErrUnknown is returned when a raw code cannot be resolved to a known currency.
var ErrUnknown = errors.New("unknown currency")

var supportedCurrencies = map[Code]struct{}{
	"USD": {},
	"EUR": {},
	"GBP": {},
	"JPY": {},
	"CHF": {},
	"CAD": {},
	"AUD": {},
	"NZD": {},
	"CNY": {},
	"HKD": {},
	"SGD": {},
	"SEK": {},
	"NOK": {},
	"INR": {},
	"MXN": {},
}

// Registry resolves raw currency codes into canonical Codes.
type Registry interface {
	Resolve(raw string) (Code, error)
	IsSupported(raw string) bool
}

type registry struct{}

// NewRegistry creates the default currency registry.
func NewRegistry() Registry {
	return &registry{}
}

// Resolve normalizes a raw code to its canonical uppercase form.
// Returns ErrUnknown for malformed or unsupported codes.
func (r *registry) Resolve(raw string) (Code, error) {
	if !isValidCodeFormat(raw) {
		return "", fmt.Errorf("%w: %q", ErrUnknown, raw)
	}
	code := Code(strings.ToUpper(raw))
	if _, ok := supportedCurrencies[code]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknown, raw)
	}
	return code, nil
}

// IsSupported returns true if the raw code resolves to a known currency.
func (r *registry) IsSupported(raw string) bool {
	_, err := r.Resolve(raw)
	return err == nil
}

// isValidCodeFormat checks whether a string has the shape of a 3-letter currency code.
func isValidCodeFormat(code string) bool {
	if len(code) != 3 {
		return false
	}
	code = strings.ToUpper(code)
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
