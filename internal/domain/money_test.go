package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1500", "1500"},
		{"  200.5 ", "200.5"},
		{"₹1,500", "1500"},
		{"$ 20", "20"},
		{"12.345", "12.35"},
		{"abc", "0"},
		{"12abc", "0"},
		{"", "0"},
		{"-40", "0"},
		{"1e30000000", "0"},
		{"1E5", "0"},
		{"0x10", "0"},
		{".", "0"},
		{"1.2.3", "0"},
		{"999999999999.99", "999999999999.99"},
		{"1000000000000", "0"},
		{"000000000000001500", "1500"},
		{".5", "0.5"},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got), "ParseAmount(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestParsePlainAmount(t *testing.T) {
	d, err := ParsePlainAmount("-12.50")
	require.NoError(t, err)
	assert.Equal(t, "-12.5", d.String())

	for _, in := range []string{"", "-", "1e3", "12abc", "1 000", "9999999999999"} {
		_, err := ParsePlainAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", in)
	}
}

func TestNonNegativeMoney(t *testing.T) {
	assert.True(t, NonNegativeMoney(decimal.NewFromInt(-3)).IsZero())
	assert.Equal(t, "3.33", NonNegativeMoney(decimal.RequireFromString("3.333")).StringFixed(2))
}
