package ledger

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// Store owns the SQLite handle for the ledger and the transaction log.
// It is constructed explicitly at process start and closed at shutdown;
// nothing in this package keeps a global handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open ledger db")
	}

	// Single connection: all writes go through one SQLite connection so
	// concurrent units queue instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// dbtx is satisfied by both *sql.DB and *sql.Tx, so row helpers run inside
// or outside a transaction.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

const balanceColumns = `currency, day, opening_balance, purchases, exchange_buy, exchange_sell, sales, deposits, closing_balance`

func scanBalance(row interface{ Scan(...any) error }) (DailyBalance, error) {
	var (
		b        DailyBalance
		day      string
		cols     [7]string
		currency string
	)
	err := row.Scan(&currency, &day, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6])
	if err != nil {
		return DailyBalance{}, err
	}

	b.Currency = fx.Currency(currency)
	if b.Day, err = daykey.Parse(day); err != nil {
		return DailyBalance{}, errors.Wrapf(err, "stored day %q", day)
	}

	fields := []*decimal.Decimal{
		&b.Opening, &b.Purchases, &b.ExchangeBuy, &b.ExchangeSell, &b.Sales, &b.Deposits, &b.Closing,
	}
	for i, f := range fields {
		if *f, err = decimal.NewFromString(cols[i]); err != nil {
			return DailyBalance{}, errors.Wrapf(err, "stored amount %q", cols[i])
		}
	}
	return b, nil
}

// getDay returns the row for (currency, day), or ErrNotFound.
func getDay(q dbtx, currency fx.Currency, day daykey.Day) (DailyBalance, error) {
	row := q.QueryRow(`
		SELECT `+balanceColumns+`
		FROM daily_balances
		WHERE currency = ? AND day = ?`,
		string(currency), day.String())

	b, err := scanBalance(row)
	if err == sql.ErrNoRows {
		return DailyBalance{}, ErrNotFound
	}
	return b, err
}

// nearestBefore returns the latest row strictly before day for the
// currency, or ErrNotFound. Day keys sort correctly as strings.
func nearestBefore(q dbtx, currency fx.Currency, day daykey.Day) (DailyBalance, error) {
	row := q.QueryRow(`
		SELECT `+balanceColumns+`
		FROM daily_balances
		WHERE currency = ? AND day < ?
		ORDER BY day DESC LIMIT 1`,
		string(currency), day.String())

	b, err := scanBalance(row)
	if err == sql.ErrNoRows {
		return DailyBalance{}, ErrNotFound
	}
	return b, err
}

// nearestAfter returns the earliest row strictly after day for the
// currency, or ErrNotFound.
func nearestAfter(q dbtx, currency fx.Currency, day daykey.Day) (DailyBalance, error) {
	row := q.QueryRow(`
		SELECT `+balanceColumns+`
		FROM daily_balances
		WHERE currency = ? AND day > ?
		ORDER BY day ASC LIMIT 1`,
		string(currency), day.String())

	b, err := scanBalance(row)
	if err == sql.ErrNoRows {
		return DailyBalance{}, ErrNotFound
	}
	return b, err
}

// rangeRows returns the rows for currency within [from, to], ascending.
func rangeRows(q dbtx, currency fx.Currency, from, to daykey.Day) ([]DailyBalance, error) {
	rows, err := q.Query(`
		SELECT `+balanceColumns+`
		FROM daily_balances
		WHERE currency = ? AND day >= ? AND day <= ?
		ORDER BY day ASC`,
		string(currency), from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// allRows returns every row for currency in day order.
func allRows(q dbtx, currency fx.Currency) ([]DailyBalance, error) {
	rows, err := q.Query(`
		SELECT `+balanceColumns+`
		FROM daily_balances
		WHERE currency = ?
		ORDER BY day ASC`,
		string(currency))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// upsertRow writes the row for (currency, day), inserting or replacing all
// movement fields and the derived closing.
func upsertRow(q dbtx, b DailyBalance) error {
	_, err := q.Exec(`
		INSERT INTO daily_balances
		(`+balanceColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (currency, day) DO UPDATE SET
			opening_balance = excluded.opening_balance,
			purchases = excluded.purchases,
			exchange_buy = excluded.exchange_buy,
			exchange_sell = excluded.exchange_sell,
			sales = excluded.sales,
			deposits = excluded.deposits,
			closing_balance = excluded.closing_balance`,
		string(b.Currency), b.Day.String(),
		b.Opening.String(), b.Purchases.String(),
		b.ExchangeBuy.String(), b.ExchangeSell.String(),
		b.Sales.String(), b.Deposits.String(),
		b.Closing.String(),
	)
	return err
}

// mapStorageErr converts SQLite conflict codes into the package taxonomy.
func mapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch {
		case se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked:
			return errors.Wrap(ErrConcurrentModification, err.Error())
		case se.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(err.Error(), "serial_number"):
			return ErrDuplicateSerial
		}
	}
	return err
}
