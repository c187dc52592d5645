package ledger

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxledger/daykey"
	"github.com/rustyeddy/fxledger/fx"
	"github.com/rustyeddy/fxledger/pkg/id"
)

// Service is the single entry point for ledger mutation and queries.
// Route handlers, the CLI and batch import all go through it; nothing else
// writes balance rows.
type Service struct {
	store *Store
	log   *zap.Logger

	// one lock per supported currency. Forward propagation walks and
	// mutates a chain of rows, so two units for the same currency must
	// never interleave; units for different currencies may.
	locks map[fx.Currency]*sync.Mutex
}

// NewService wraps an opened store. logger may be nil.
func NewService(store *Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	locks := make(map[fx.Currency]*sync.Mutex, len(fx.Currencies()))
	for _, c := range fx.Currencies() {
		locks[c] = &sync.Mutex{}
	}
	return &Service{store: store, log: logger, locks: locks}
}

// withTx runs fn in one SQLite transaction: the whole recalculation unit
// commits or none of it does.
func (s *Service) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.store.db.Begin()
	if err != nil {
		return mapStorageErr(errors.Wrap(err, "begin"))
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return mapStorageErr(err)
	}
	return mapStorageErr(tx.Commit())
}

func validateInput(currency fx.Currency, day daykey.Day, amount decimal.Decimal) error {
	if !fx.Valid(currency) {
		return fmt.Errorf("%w: %q", fx.ErrInvalidCurrency, currency)
	}
	if day.IsZero() {
		return fmt.Errorf("%w: zero day", daykey.ErrInvalidDate)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", fx.ErrInvalidAmount, amount)
	}
	return nil
}

// RecordPurchase appends a purchase to the transaction log and
// recalculates the chain for (currency, day).
func (s *Service) RecordPurchase(currency fx.Currency, day daykey.Day, amount decimal.Decimal) error {
	return s.record(KindPurchase, currency, day, amount, "")
}

// RecordDeposit appends a custodian deposit to the transaction log and
// recalculates the chain for (currency, day). Deposits reduce the closing
// balance.
func (s *Service) RecordDeposit(currency fx.Currency, day daykey.Day, amount decimal.Decimal) error {
	return s.record(KindDeposit, currency, day, amount, "")
}

func (s *Service) record(kind Kind, currency fx.Currency, day daykey.Day, amount decimal.Decimal, receiptID string) error {
	if err := validateInput(currency, day, amount); err != nil {
		return err
	}

	mu := s.locks[currency]
	mu.Lock()
	defer mu.Unlock()

	t := Transaction{
		ID:         id.New(),
		Kind:       kind,
		Currency:   currency,
		Day:        day,
		Amount:     amount,
		ReceiptID:  receiptID,
		RecordedAt: time.Now().UTC(),
	}

	err := s.withTx(func(tx *sql.Tx) error {
		if err := appendTransaction(tx, t); err != nil {
			return err
		}
		return recalculate(tx, currency, day)
	})
	if err != nil {
		return err
	}

	s.log.Info("transaction recorded",
		zap.String("id", t.ID),
		zap.String("kind", string(kind)),
		zap.String("currency", string(currency)),
		zap.String("day", day.String()),
		zap.String("amount", amount.String()),
	)
	return nil
}

// RecordReceipt stores a customer receipt and appends one purchase per
// currency line, recalculating each affected chain. The whole receipt is
// one atomic unit; a duplicate serial number fails with
// ErrDuplicateSerial before any balance changes.
func (s *Service) RecordReceipt(r Receipt) error {
	if r.SerialNumber == "" {
		return errors.New("receipt serial number is required")
	}
	if r.CustomerName == "" || r.NICPassport == "" {
		return errors.New("receipt customer name and NIC/passport are required")
	}
	if len(r.Lines) == 0 {
		return errors.New("receipt needs at least one currency line")
	}
	if r.Day.IsZero() {
		return fmt.Errorf("%w: zero day", daykey.ErrInvalidDate)
	}
	seen := make(map[fx.Currency]bool, len(r.Lines))
	for _, line := range r.Lines {
		if err := validateInput(line.Currency, r.Day, line.Amount); err != nil {
			return err
		}
		seen[line.Currency] = true
	}

	// lock every affected currency in registry order, so two receipts
	// sharing currencies cannot deadlock
	for _, c := range fx.Currencies() {
		if seen[c] {
			s.locks[c].Lock()
			defer s.locks[c].Unlock()
		}
	}

	now := time.Now().UTC()
	receiptID := id.New()

	err := s.withTx(func(tx *sql.Tx) error {
		if err := insertReceipt(tx, receiptID, r, now); err != nil {
			return err
		}
		for _, line := range r.Lines {
			t := Transaction{
				ID:         id.New(),
				Kind:       KindPurchase,
				Currency:   line.Currency,
				Day:        r.Day,
				Amount:     line.Amount,
				ReceiptID:  receiptID,
				RecordedAt: now,
			}
			if err := appendTransaction(tx, t); err != nil {
				return err
			}
			if err := recalculate(tx, line.Currency, r.Day); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("receipt recorded",
		zap.String("id", receiptID),
		zap.String("serial", r.SerialNumber),
		zap.String("day", r.Day.String()),
		zap.Int("lines", len(r.Lines)),
	)
	return nil
}

// SetDepositOverride sets the day's deposits total directly, bypassing the
// log-derived figure, and propagates the new closing forward. Used for
// manual corrections; the override stands until the next full
// recalculation for that day re-derives the total from the log.
func (s *Service) SetDepositOverride(currency fx.Currency, day daykey.Day, total decimal.Decimal) error {
	if err := validateInput(currency, day, total); err != nil {
		return err
	}

	mu := s.locks[currency]
	mu.Lock()
	defer mu.Unlock()

	err := s.withTx(func(tx *sql.Tx) error {
		return overrideDeposits(tx, currency, day, total)
	})
	if err != nil {
		return err
	}

	s.log.Info("deposits overridden",
		zap.String("currency", string(currency)),
		zap.String("day", day.String()),
		zap.String("total", total.String()),
	)
	return nil
}

// GetDay returns the balance row for (currency, day), or ErrNotFound.
func (s *Service) GetDay(currency fx.Currency, day daykey.Day) (DailyBalance, error) {
	if !fx.Valid(currency) {
		return DailyBalance{}, fmt.Errorf("%w: %q", fx.ErrInvalidCurrency, currency)
	}
	if day.IsZero() {
		return DailyBalance{}, fmt.Errorf("%w: zero day", daykey.ErrInvalidDate)
	}
	return getDay(s.store.db, currency, day)
}

// ListDeposits returns the deposit log entries for (currency, day),
// newest first.
func (s *Service) ListDeposits(currency fx.Currency, day daykey.Day) ([]Transaction, error) {
	if !fx.Valid(currency) {
		return nil, fmt.Errorf("%w: %q", fx.ErrInvalidCurrency, currency)
	}
	if day.IsZero() {
		return nil, fmt.Errorf("%w: zero day", daykey.ErrInvalidDate)
	}
	return listByKind(s.store.db, currency, day, KindDeposit)
}
