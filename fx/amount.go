package fx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for amounts that cannot be parsed as a
// decimal number, or that violate a caller's sign rule.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a monetary amount at the ingestion boundary.
//
// Amounts are parsed exactly once, here, into a decimal rounded to 2
// places (half away from zero). Nothing downstream re-parses or re-rounds;
// sums of 2dp values stay exact.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d.Round(2), nil
}
