// Package rates implements the cached exchange-rate source: a directional
// rate cache with get-or-fetch semantics and the facade composing it with a
// currency registry and a remote quote provider.
package rates

import (
	"ratesource/internal/currency"
)

// Key identifies a cache entry for a directional currency pair.
// (USD,EUR) and (EUR,USD) are distinct keys.
type Key struct {
	From currency.Code
	To   currency.Code
}

func (k Key) String() string {
	return string(k.From) + "/" + string(k.To)
}

// KeyFor resolves both raw codes through the registry and builds the
// directional key. Fails with currency.ErrUnknown if either code does not
// resolve.
func KeyFor(reg currency.Registry, from, to string) (Key, error) {
	f, err := reg.Resolve(from)
	if err != nil {
		return Key{}, err
	}
	t, err := reg.Resolve(to)
	if err != nil {
		return Key{}, err
	}
	return Key{From: f, To: t}, nil
}
