package ledger

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// StatementRow is the balance statement for one currency over a range.
type StatementRow struct {
	Currency     fx.Currency
	Opening      decimal.Decimal
	Purchases    decimal.Decimal
	ExchangeBuy  decimal.Decimal
	ExchangeSell decimal.Decimal
	Sales        decimal.Decimal
	Deposits     decimal.Decimal
	Closing      decimal.Decimal
}

// IsZero reports whether the row carries no balance and no movement.
// Display code may hide such rows; they are still computed.
func (r StatementRow) IsZero() bool {
	return r.Opening.IsZero() &&
		r.Purchases.IsZero() &&
		r.ExchangeBuy.IsZero() &&
		r.ExchangeSell.IsZero() &&
		r.Sales.IsZero() &&
		r.Deposits.IsZero()
}

// GetStatement answers opening/movements/closing for each requested
// currency over [from, to] inclusive. With no currencies given, every
// supported currency is reported.
//
// All figures come from materialized ledger rows — the opening is the
// closing of the nearest row strictly before from (zero when none), the
// movements are sums over rows in range. The transaction log is never
// aggregated here; the rows are kept consistent with it by the
// recalculation engine, and mixing the two strategies is what produced
// divergent statements in the system this one replaces.
func (s *Service) GetStatement(from, to daykey.Day, currencies ...fx.Currency) ([]StatementRow, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: empty range bound", daykey.ErrInvalidDate)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range %s..%s is inverted", daykey.ErrInvalidDate, from, to)
	}
	if len(currencies) == 0 {
		currencies = fx.Currencies()
	}

	out := make([]StatementRow, 0, len(currencies))
	for _, currency := range currencies {
		if !fx.Valid(currency) {
			return nil, fmt.Errorf("%w: %q", fx.ErrInvalidCurrency, currency)
		}

		row := StatementRow{
			Currency:     currency,
			Opening:      decimal.Zero,
			Purchases:    decimal.Zero,
			ExchangeBuy:  decimal.Zero,
			ExchangeSell: decimal.Zero,
			Sales:        decimal.Zero,
			Deposits:     decimal.Zero,
		}

		prev, err := nearestBefore(s.store.db, currency, from)
		switch {
		case err == nil:
			row.Opening = prev.Closing
		case errors.Is(err, ErrNotFound):
			// no history before the range
		default:
			return nil, err
		}

		days, err := rangeRows(s.store.db, currency, from, to)
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			row.Purchases = row.Purchases.Add(d.Purchases)
			row.ExchangeBuy = row.ExchangeBuy.Add(d.ExchangeBuy)
			row.ExchangeSell = row.ExchangeSell.Add(d.ExchangeSell)
			row.Sales = row.Sales.Add(d.Sales)
			row.Deposits = row.Deposits.Add(d.Deposits)
		}

		row.Closing = row.Opening.
			Add(row.Purchases).
			Add(row.ExchangeBuy).
			Sub(row.ExchangeSell).
			Sub(row.Sales).
			Sub(row.Deposits)

		out = append(out, row)
	}
	return out, nil
}
