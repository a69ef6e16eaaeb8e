package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
)

// moneyToString formats an amount for a TEXT money column.
func moneyToString(d decimal.Decimal) string {
	return domain.RoundMoney(d).StringFixed(domain.MoneyPlaces)
}

// parseMoney reads a TEXT money column. An empty value is zero.
func parseMoney(s, column string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", column, s, err)
	}
	return d, nil
}

// nullableString converts an empty string to SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// parseTimestamp parses an RFC3339 column, returning the zero time on
// malformed input.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func stringOrEmpty(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
