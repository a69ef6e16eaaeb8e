package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for plan dates.
const DateLayout = "2006-01-02"

// TreatmentPlan is the persisted shape of a patient's treatment plan.
// StartDate and EndDate are ISO dates; EndDate may be empty.
type TreatmentPlan struct {
	ID                string
	PatientID         string
	Name              string
	StartDate         string
	EndDate           string
	Status            PlanStatus
	Notes             string
	LineItems         []CostLineItem
	TotalCost         decimal.Decimal
	TotalMaterialCost decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DisplayName returns the plan name, falling back to a truncated ID.
func (p *TreatmentPlan) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) >= 8 {
		return "Plan " + p.ID[:8]
	}
	if p.ID != "" {
		return "Plan " + p.ID
	}
	return "Untitled plan"
}

// ValidateISODate checks that s is a YYYY-MM-DD calendar date.
func ValidateISODate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("date %q must use YYYY-MM-DD", s)
	}
	return nil
}
