// Package daykey provides the canonical calendar-day key used to store and
// query ledger rows. A day key is timezone-stable: whatever time-of-day or
// offset the caller's input carried, the same civil date always maps to the
// same key.
package daykey

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// KeyFormat is the canonical string form of a day key, ISO-8601 date only.
// Keys in this form sort correctly as plain strings.
const KeyFormat = "2006-01-02"

// readFormat is permissive on read, so "2025-7-1" is accepted.
const readFormat = "2006-1-2"

// ErrInvalidDate is returned for input that cannot be resolved to a
// calendar day.
var ErrInvalidDate = errors.New("invalid date")

// Day represents a calendar day with no finer granularity.
// The zero value is not a valid day.
type Day struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Day for the given year, month and day.
func New(year int, month time.Month, day int) Day {
	d := Day{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// FromTime returns the civil date of t in t's own location. The time of
// day and the offset are discarded after the date is taken, so a caller's
// "2025-11-06 01:00 +05:30" keys as 2025-11-06 regardless of what instant
// that is in UTC.
func FromTime(t time.Time) Day {
	return New(t.Date())
}

// Today returns the current day in the local timezone.
func Today() Day {
	return FromTime(time.Now())
}

// Parse resolves a day key from a date string ("2025-11-06", permissive
// "2025-11-6") or an RFC 3339 timestamp.
func Parse(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(readFormat, s); err == nil {
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t), nil
	}
	return Day{}, fmt.Errorf("%w: %q (want %q or RFC 3339)", ErrInvalidDate, s, KeyFormat)
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(s string) Day {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Time returns midnight UTC of the day, the canonical instant for d.
func (d Day) Time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

// String returns the canonical key, e.g. "2025-11-06".
func (d Day) String() string { return d.Time().Format(KeyFormat) }

// IsZero reports whether d is the zero value.
func (d Day) IsZero() bool { return d == Day{} }

// Before reports whether d is before x.
func (d Day) Before(x Day) bool { return d.Time().Before(x.Time()) }

// After reports whether d is after x.
func (d Day) After(x Day) bool { return d.Time().After(x.Time()) }

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day { return New(d.y, d.m, d.d+n) }
