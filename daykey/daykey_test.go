package daykey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2025-11-06", want: "2025-11-06"},
		{name: "unpadded", input: "2025-7-1", want: "2025-07-01"},
		{name: "whitespace", input: "  2025-11-06 ", want: "2025-11-06"},
		{name: "rfc3339 utc", input: "2025-11-06T14:30:00Z", want: "2025-11-06"},
		{name: "rfc3339 positive offset, early morning", input: "2025-11-06T01:00:00+05:30", want: "2025-11-06"},
		{name: "rfc3339 negative offset, late night", input: "2025-11-06T23:00:00-08:00", want: "2025-11-06"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "time only", input: "14:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestSameCivilDaySameKey(t *testing.T) {
	t.Parallel()

	// Different instants, different offsets, one civil day: one key.
	inputs := []string{
		"2025-11-06",
		"2025-11-06T00:00:00Z",
		"2025-11-06T01:00:00+05:30",
		"2025-11-06T23:59:59-11:00",
	}

	want := MustParse("2025-11-06")
	for _, in := range inputs {
		d, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, d, in)
	}
}

func TestFromTimeUsesOwnLocation(t *testing.T) {
	t.Parallel()

	colombo := time.FixedZone("IST", 5*3600+1800)
	// 00:30 in Colombo is still the previous day in UTC; the key follows
	// the caller's civil date.
	d := FromTime(time.Date(2025, 11, 6, 0, 30, 0, 0, colombo))
	assert.Equal(t, "2025-11-06", d.String())
}

func TestOrderingAndArithmetic(t *testing.T) {
	t.Parallel()

	d1 := MustParse("2025-11-05")
	d2 := MustParse("2025-11-06")

	assert.True(t, d1.Before(d2))
	assert.True(t, d2.After(d1))
	assert.False(t, d1.Before(d1))

	assert.Equal(t, d2, d1.AddDays(1))
	assert.Equal(t, d1, d2.AddDays(-1))

	// month rollover normalizes
	assert.Equal(t, "2025-12-01", MustParse("2025-11-30").AddDays(1).String())
}

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var d Day
	assert.True(t, d.IsZero())
	assert.False(t, MustParse("2025-11-06").IsZero())
}

func TestStringSortMatchesDayOrder(t *testing.T) {
	t.Parallel()

	// The store relies on key strings ordering like days.
	days := []string{"2024-12-31", "2025-01-01", "2025-09-30", "2025-10-01"}
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1], days[i])
		assert.True(t, MustParse(days[i-1]).Before(MustParse(days[i])))
	}
}
