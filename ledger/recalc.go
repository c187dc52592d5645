package ledger

import (
	"database/sql"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// recalculate rebuilds the row for (currency, day) from the transaction
// log and pushes the new closing through every later materialized row.
//
// It runs inside one SQLite transaction, so a failure anywhere leaves no
// partially-updated chain; rerunning for the same day is a no-op once the
// chain is at its fixed point. Callers hold the per-currency lock.
//
//  1. opening = closing of the nearest prior row, 0 when there is none
//  2. movement totals re-derived from the log (never incremented in place,
//     so a retried call cannot double-count)
//  3. closing by the formula, row upserted
//  4. carry the closing forward through later rows until the chain ends
func recalculate(tx *sql.Tx, currency fx.Currency, day daykey.Day) error {
	opening := decimal.Zero
	prev, err := nearestBefore(tx, currency, day)
	switch {
	case err == nil:
		opening = prev.Closing
	case errors.Is(err, ErrNotFound):
		// no history, opening stays 0
	default:
		return err
	}

	purchases, err := sumByKind(tx, currency, day, KindPurchase)
	if err != nil {
		return err
	}
	deposits, err := sumByKind(tx, currency, day, KindDeposit)
	if err != nil {
		return err
	}

	row := DailyBalance{
		Currency:     currency,
		Day:          day,
		Opening:      opening,
		Purchases:    purchases,
		ExchangeBuy:  decimal.Zero,
		ExchangeSell: decimal.Zero,
		Sales:        decimal.Zero,
		Deposits:     deposits,
	}
	row.recomputeClosing()

	if err := upsertRow(tx, row); err != nil {
		return err
	}
	return propagate(tx, currency, day, row.Closing)
}

// overrideDeposits sets the day's deposits total directly (manual
// correction) and reruns only the closing computation and forward
// propagation. The next full recalculation for the day re-derives the
// total from the log again.
func overrideDeposits(tx *sql.Tx, currency fx.Currency, day daykey.Day, total decimal.Decimal) error {
	row, err := getDay(tx, currency, day)
	switch {
	case errors.Is(err, ErrNotFound):
		// materialize the day with zero movements
		opening := decimal.Zero
		prev, perr := nearestBefore(tx, currency, day)
		switch {
		case perr == nil:
			opening = prev.Closing
		case !errors.Is(perr, ErrNotFound):
			return perr
		}
		row = DailyBalance{
			Currency:     currency,
			Day:          day,
			Opening:      opening,
			Purchases:    decimal.Zero,
			ExchangeBuy:  decimal.Zero,
			ExchangeSell: decimal.Zero,
			Sales:        decimal.Zero,
		}
	case err != nil:
		return err
	}

	row.Deposits = total
	row.recomputeClosing()

	if err := upsertRow(tx, row); err != nil {
		return err
	}
	return propagate(tx, currency, day, row.Closing)
}

// propagate walks forward from day, row by materialized row, carrying each
// new closing into the next row's opening. Days with no row are skipped;
// when such a day is eventually touched it derives its opening from the
// chain as it stands then. Terminates after at most one read and one write
// per remaining row.
func propagate(tx *sql.Tx, currency fx.Currency, day daykey.Day, carry decimal.Decimal) error {
	cursor := day
	for {
		next, err := nearestAfter(tx, currency, cursor)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		next.Opening = carry
		next.recomputeClosing()
		if err := upsertRow(tx, next); err != nil {
			return err
		}

		cursor, carry = next.Day, next.Closing
	}
}
