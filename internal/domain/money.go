package domain

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for every amount.
const MoneyPlaces = 2

// RoundMoney rounds d half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// MaxAmountDigits caps the integer part of an amount. Treatment prices
// never come near it, and the cap keeps a typo from producing a number too
// large to format.
const MaxAmountDigits = 12

// ErrInvalidAmount is returned for text that is not a plain decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParsePlainAmount parses digits with an optional minus sign and fraction.
// Exponents and integer parts longer than MaxAmountDigits are rejected.
func ParsePlainAmount(s string) (decimal.Decimal, error) {
	digits := strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(digits, ".")
	if intPart == "" && frac == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if len(strings.TrimLeft(intPart, "0")) > MaxAmountDigits {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, part := range []string{intPart, frac} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}
	return decimal.NewFromString(s)
}

// ParseAmount converts free-form operator input into a non-negative amount.
// A leading currency symbol and thousands separators are ignored. Anything
// that is not a number, and any negative number, becomes zero.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.Is(unicode.Sc, r)
	})
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := ParsePlainAmount(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(d)
}

// NonNegativeMoney clamps d at zero and rounds it.
func NonNegativeMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return RoundMoney(d)
}
