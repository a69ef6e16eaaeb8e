package domain

import "github.com/shopspring/decimal"

// TreatmentCategory is a catalog entry describing a billable procedure type
// and its standard price. Catalog-owned and never mutated after load.
type TreatmentCategory struct {
	ID          string
	Name        string
	BaseCost    decimal.Decimal
	Description string
}
