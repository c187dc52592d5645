package ledger

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// The transaction log is the source of truth for movement totals. Entries
// are append-only; nothing updates or deletes them.

func appendTransaction(q dbtx, t Transaction) error {
	_, err := q.Exec(`
		INSERT INTO transactions
		(id, kind, currency, day, amount, receipt_id, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Kind), string(t.Currency), t.Day.String(),
		t.Amount.String(), t.ReceiptID, t.RecordedAt,
	)
	return errors.Wrap(err, "append transaction")
}

func insertReceipt(q dbtx, id string, r Receipt, now time.Time) error {
	_, err := q.Exec(`
		INSERT INTO receipts
		(id, serial_number, day, customer_name, nic_passport, source, remarks, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.SerialNumber, r.Day.String(),
		r.CustomerName, r.NICPassport, r.Source, r.Remarks, now,
	)
	return err
}

// sumAmounts accumulates amount strings in decimal. SQLite's SUM would
// coerce to float; the chain invariant needs exact arithmetic.
func sumAmounts(rows *sql.Rows) (decimal.Decimal, error) {
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "stored amount %q", s)
		}
		total = total.Add(d)
	}
	return total, rows.Err()
}

// sumByKind totals all log entries of kind for the exact (currency, day).
func sumByKind(q dbtx, currency fx.Currency, day daykey.Day, kind Kind) (decimal.Decimal, error) {
	rows, err := q.Query(`
		SELECT amount FROM transactions
		WHERE currency = ? AND day = ? AND kind = ?`,
		string(currency), day.String(), string(kind))
	if err != nil {
		return decimal.Zero, err
	}
	return sumAmounts(rows)
}

// sumBeforeDay totals all log entries of kind strictly before day.
func sumBeforeDay(q dbtx, currency fx.Currency, day daykey.Day, kind Kind) (decimal.Decimal, error) {
	rows, err := q.Query(`
		SELECT amount FROM transactions
		WHERE currency = ? AND day < ? AND kind = ?`,
		string(currency), day.String(), string(kind))
	if err != nil {
		return decimal.Zero, err
	}
	return sumAmounts(rows)
}

// listByKind returns the log entries of kind for (currency, day), newest
// first.
func listByKind(q dbtx, currency fx.Currency, day daykey.Day, kind Kind) ([]Transaction, error) {
	rows, err := q.Query(`
		SELECT id, kind, currency, day, amount, receipt_id, recorded_at
		FROM transactions
		WHERE currency = ? AND day = ? AND kind = ?
		ORDER BY recorded_at DESC, id DESC`,
		string(currency), day.String(), string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var (
			t                 Transaction
			kindS, curS, dayS string
			amountS           string
		)
		if err := rows.Scan(&t.ID, &kindS, &curS, &dayS, &amountS, &t.ReceiptID, &t.RecordedAt); err != nil {
			return nil, err
		}
		t.Kind = Kind(kindS)
		t.Currency = fx.Currency(curS)
		if t.Day, err = daykey.Parse(dayS); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amountS); err != nil {
			return nil, errors.Wrapf(err, "stored amount %q", amountS)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
