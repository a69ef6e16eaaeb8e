package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 20
)

// CostLineItem is one row of a treatment plan. CategoryName and BaseCost are
// snapshots taken when the line was added; TotalCost is always derived.
type CostLineItem struct {
	CategoryID   string
	CategoryName string
	BaseCost     decimal.Decimal
	Quantity     int
	MaterialCost decimal.Decimal
	Particulars  string
	TotalCost    decimal.Decimal
}

// LineTotal computes base*qty + material.
func LineTotal(base decimal.Decimal, qty int, material decimal.Decimal) decimal.Decimal {
	return RoundMoney(base.Mul(decimal.NewFromInt(int64(qty))).Add(material))
}

// Recompute refreshes TotalCost from the line's inputs.
func (li *CostLineItem) Recompute() {
	li.TotalCost = LineTotal(li.BaseCost, li.Quantity, li.MaterialCost)
}

// ClampQuantity bounds q to [MinQuantity, MaxQuantity].
func ClampQuantity(q int) int {
	return max(MinQuantity, min(MaxQuantity, q))
}

// ParseQuantity coerces non-numeric input to 0 and then clamps, so garbage
// lands on MinQuantity rather than producing an error.
func ParseQuantity(raw string) int {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		q = 0
	}
	return ClampQuantity(q)
}
