package fx

import (
	"errors"
	"fmt"
	"strings"
)

// Currency is one of the fixed set of foreign currencies the counter
// accepts. The set is closed; anything else is an input error.
type Currency string

const (
	USD Currency = "USD"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
	CHF Currency = "CHF"
	AUD Currency = "AUD"
	NZD Currency = "NZD"
	SGD Currency = "SGD"
	INR Currency = "INR"
	CAD Currency = "CAD"
)

// ErrInvalidCurrency is returned for codes outside the supported set.
var ErrInvalidCurrency = errors.New("invalid currency")

// supported is the single source of truth for the accepted currencies,
// in rate-board order.
var supported = []Currency{USD, GBP, EUR, CHF, AUD, NZD, SGD, INR, CAD}

var supportedSet = func() map[Currency]struct{} {
	m := make(map[Currency]struct{}, len(supported))
	for _, c := range supported {
		m[c] = struct{}{}
	}
	return m
}()

// Currencies returns the supported currencies in rate-board order.
func Currencies() []Currency {
	out := make([]Currency, len(supported))
	copy(out, supported)
	return out
}

// Valid reports whether c is one of the supported currencies.
func Valid(c Currency) bool {
	_, ok := supportedSet[c]
	return ok
}

// ParseCurrency validates a currency code. Input is case-insensitive; the
// canonical upper-case code is returned.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !Valid(c) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}
