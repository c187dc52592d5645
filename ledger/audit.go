package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
)

// AuditIssue is one detected divergence between a stored row and what the
// transaction log and chain say it should hold.
type AuditIssue struct {
	Currency fx.Currency
	Day      daykey.Day
	Field    string
	Got      decimal.Decimal
	Want     decimal.Decimal
}

func (i AuditIssue) String() string {
	return fmt.Sprintf("%s %s: %s is %s, want %s",
		i.Currency, i.Day, i.Field, i.Got.StringFixed(2), i.Want.StringFixed(2))
}

// Audit recomputes every materialized row from the full transaction log
// and the chain, and reports each field that diverges. This is the only
// place the full-history aggregation strategy is used; it verifies the
// cached rows rather than answering queries from the log.
//
// A deposit total set through SetDepositOverride shows up here as a
// deposits divergence. That is the point: the audit surfaces every row
// that no longer matches the log.
//
// With no currencies given, every supported currency is audited.
func (s *Service) Audit(currencies ...fx.Currency) ([]AuditIssue, error) {
	if len(currencies) == 0 {
		currencies = fx.Currencies()
	}

	var issues []AuditIssue
	for _, currency := range currencies {
		if !fx.Valid(currency) {
			return nil, fmt.Errorf("%w: %q", fx.ErrInvalidCurrency, currency)
		}

		mu := s.locks[currency]
		mu.Lock()
		found, err := s.auditCurrency(currency)
		mu.Unlock()
		if err != nil {
			return nil, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

func (s *Service) auditCurrency(currency fx.Currency) ([]AuditIssue, error) {
	db := s.store.db

	rows, err := allRows(db, currency)
	if err != nil {
		return nil, err
	}

	var issues []AuditIssue
	report := func(day daykey.Day, field string, got, want decimal.Decimal) {
		if !got.Equal(want) {
			issues = append(issues, AuditIssue{
				Currency: currency, Day: day, Field: field, Got: got, Want: want,
			})
		}
	}

	prevClosing := decimal.Zero
	for i, row := range rows {
		// opening must chain from the prior row's closing (zero before
		// the first row)
		report(row.Day, "opening_balance", row.Opening, prevClosing)

		// movements must match the log
		purchases, err := sumByKind(db, currency, row.Day, KindPurchase)
		if err != nil {
			return nil, err
		}
		report(row.Day, "purchases", row.Purchases, purchases)

		deposits, err := sumByKind(db, currency, row.Day, KindDeposit)
		if err != nil {
			return nil, err
		}
		report(row.Day, "deposits", row.Deposits, deposits)

		// closing must satisfy the formula over the stored fields
		want := row.Opening.
			Add(row.Purchases).
			Add(row.ExchangeBuy).
			Sub(row.ExchangeSell).
			Sub(row.Sales).
			Sub(row.Deposits)
		report(row.Day, "closing_balance", row.Closing, want)

		// cross-check the first row's opening against full history; a row
		// deleted out-of-band would otherwise go unnoticed
		if i == 0 {
			histPurchases, err := sumBeforeDay(db, currency, row.Day, KindPurchase)
			if err != nil {
				return nil, err
			}
			histDeposits, err := sumBeforeDay(db, currency, row.Day, KindDeposit)
			if err != nil {
				return nil, err
			}
			report(row.Day, "opening_balance(history)", row.Opening, histPurchases.Sub(histDeposits))
		}

		prevClosing = row.Closing
	}
	return issues, nil
}
