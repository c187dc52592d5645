// Package ledger implements the per-currency daily cash ledger: an
// append-only transaction log as the source of truth, a cache of
// per-(currency, day) balance rows over it, and the recalculation engine
// that keeps the opening/closing chain consistent when earlier days change.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// Kind discriminates transaction log entries.
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindDeposit  Kind = "deposit"
)

// DailyBalance is one ledger row, keyed by (Currency, Day).
//
// Closing is derived, never authoritative on its own:
//
//	closing = opening + purchases + exchangeBuy - exchangeSell - sales - deposits
//
// ExchangeBuy, ExchangeSell and Sales have no data source today and stay
// zero; they are carried so the row shape and the formula do not change
// when a source appears.
type DailyBalance struct {
	Currency     fx.Currency
	Day          daykey.Day
	Opening      decimal.Decimal
	Purchases    decimal.Decimal
	ExchangeBuy  decimal.Decimal
	ExchangeSell decimal.Decimal
	Sales        decimal.Decimal
	Deposits     decimal.Decimal
	Closing      decimal.Decimal
}

// recomputeClosing applies the closing formula to the row's own fields.
func (b *DailyBalance) recomputeClosing() {
	b.Closing = b.Opening.
		Add(b.Purchases).
		Add(b.ExchangeBuy).
		Sub(b.ExchangeSell).
		Sub(b.Sales).
		Sub(b.Deposits)
}

// Transaction is one immutable log entry. Purchases recorded through a
// customer receipt reference it via ReceiptID.
type Transaction struct {
	ID         string
	Kind       Kind
	Currency   fx.Currency
	Day        daykey.Day
	Amount     decimal.Decimal
	ReceiptID  string
	RecordedAt time.Time
}

// Receipt is a customer purchase receipt: one serial-numbered document
// covering one or more currency lines bought on the same day. The metadata
// is irrelevant to balances beyond producing the line amounts.
type Receipt struct {
	SerialNumber string
	Day          daykey.Day
	CustomerName string
	NICPassport  string
	Source       string
	Remarks      string
	Lines        []ReceiptLine
}

// ReceiptLine is a single currency bought on a receipt.
type ReceiptLine struct {
	Currency fx.Currency
	Amount   decimal.Decimal
}
