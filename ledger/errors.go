package ledger

import "errors"

var (
	// ErrNotFound is returned by point lookups when no row exists. A
	// missing prior row during recalculation is not an error; the opening
	// defaults to zero.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentModification wraps storage busy/locked conflicts. The
	// whole recalculation unit was rolled back; the caller may retry the
	// triggering call safely.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrDuplicateSerial is returned when a receipt serial number was
	// already recorded.
	ErrDuplicateSerial = errors.New("serial number already exists")
)
