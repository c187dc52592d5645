package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Currency
		wantErr bool
	}{
		{name: "upper", input: "USD", want: USD},
		{name: "lower", input: "eur", want: EUR},
		{name: "mixed with spaces", input: " Cad ", want: CAD},
		{name: "unsupported", input: "JPY", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "US_DOLLAR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCurrency(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestCurrenciesClosedSet(t *testing.T) {
	t.Parallel()

	all := Currencies()
	assert.Len(t, all, 9)
	for _, c := range all {
		assert.True(t, Valid(c))
	}
	assert.False(t, Valid("JPY"))

	// callers cannot mutate the registry through the returned slice
	all[0] = "XXX"
	assert.Equal(t, USD, Currencies()[0])
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "100.50", want: "100.50"},
		{name: "integer", input: "250", want: "250.00"},
		{name: "rounds half away from zero", input: "1.005", want: "1.01"},
		{name: "truncates extra places", input: "10.994", want: "10.99"},
		{name: "negative allowed at parse", input: "-5.25", want: "-5.25"},
		{name: "whitespace", input: " 42.00 ", want: "42.00"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "double dot", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.StringFixed(2))
		})
	}
}
