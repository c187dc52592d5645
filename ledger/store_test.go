package ledger

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	s, _ := newTestStore(t)
	return NewService(s, nil)
}

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOpenCreatesSchema(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('daily_balances','transactions','receipts')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["daily_balances"])
	assert.True(t, found["transactions"])
	assert.True(t, found["receipts"])
}

func TestUpsertAndLookups(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	mk := func(day string, closing string) DailyBalance {
		b := DailyBalance{
			Currency:     fx.USD,
			Day:          daykey.MustParse(day),
			Opening:      decimal.Zero,
			Purchases:    amt(closing),
			ExchangeBuy:  decimal.Zero,
			ExchangeSell: decimal.Zero,
			Sales:        decimal.Zero,
			Deposits:     decimal.Zero,
		}
		b.recomputeClosing()
		return b
	}

	require.NoError(t, upsertRow(s.db, mk("2025-11-03", "100")))
	require.NoError(t, upsertRow(s.db, mk("2025-11-06", "250.50")))

	// point lookup
	got, err := getDay(s.db, fx.USD, daykey.MustParse("2025-11-03"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.Closing.StringFixed(2))

	_, err = getDay(s.db, fx.USD, daykey.MustParse("2025-11-04"))
	assert.ErrorIs(t, err, ErrNotFound)

	// other currency is invisible
	_, err = getDay(s.db, fx.EUR, daykey.MustParse("2025-11-03"))
	assert.ErrorIs(t, err, ErrNotFound)

	// nearest-prior skips the gap
	prev, err := nearestBefore(s.db, fx.USD, daykey.MustParse("2025-11-06"))
	require.NoError(t, err)
	assert.Equal(t, "2025-11-03", prev.Day.String())

	_, err = nearestBefore(s.db, fx.USD, daykey.MustParse("2025-11-03"))
	assert.ErrorIs(t, err, ErrNotFound)

	// nearest-next skips the gap
	next, err := nearestAfter(s.db, fx.USD, daykey.MustParse("2025-11-03"))
	require.NoError(t, err)
	assert.Equal(t, "2025-11-06", next.Day.String())

	_, err = nearestAfter(s.db, fx.USD, daykey.MustParse("2025-11-06"))
	assert.ErrorIs(t, err, ErrNotFound)

	// range scan is inclusive on both ends
	rows, err := rangeRows(s.db, fx.USD, daykey.MustParse("2025-11-03"), daykey.MustParse("2025-11-06"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-11-03", rows[0].Day.String())
	assert.Equal(t, "2025-11-06", rows[1].Day.String())

	// upsert replaces, not duplicates
	updated := mk("2025-11-03", "175.25")
	require.NoError(t, upsertRow(s.db, updated))
	got, err = getDay(s.db, fx.USD, daykey.MustParse("2025-11-03"))
	require.NoError(t, err)
	assert.Equal(t, "175.25", got.Closing.StringFixed(2))

	all, err := allRows(s.db, fx.USD)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAmountsRoundTripExactly(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	// 0.1 + 0.2 style values must survive storage without float drift
	b := DailyBalance{
		Currency:     fx.EUR,
		Day:          daykey.MustParse("2025-01-15"),
		Opening:      amt("0.10"),
		Purchases:    amt("0.20"),
		ExchangeBuy:  decimal.Zero,
		ExchangeSell: decimal.Zero,
		Sales:        decimal.Zero,
		Deposits:     decimal.Zero,
	}
	b.recomputeClosing()
	require.NoError(t, upsertRow(s.db, b))

	got, err := getDay(s.db, fx.EUR, b.Day)
	require.NoError(t, err)
	assert.True(t, got.Closing.Equal(amt("0.3")), "got %s", got.Closing)
}
