package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/shopspring/decimal"
)

// validatePlan checks the fields a stored plan must satisfy.
func validatePlan(p *domain.TreatmentPlan) error {
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, p.Status)
	}
	if err := domain.ValidateISODate(p.StartDate); err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	if p.EndDate != "" {
		if err := domain.ValidateISODate(p.EndDate); err != nil {
			return fmt.Errorf("end date: %w", err)
		}
		if p.EndDate < p.StartDate {
			return fmt.Errorf("end date %s is before start date %s", p.EndDate, p.StartDate)
		}
	}
	seen := make(map[string]bool, len(p.LineItems))
	for i, li := range p.LineItems {
		if li.CategoryID == "" {
			return fmt.Errorf("line item %d: missing category", i)
		}
		if seen[li.CategoryID] {
			return fmt.Errorf("line item %d: category %s appears more than once", i, li.CategoryID)
		}
		seen[li.CategoryID] = true
		if li.Quantity < domain.MinQuantity || li.Quantity > domain.MaxQuantity {
			return fmt.Errorf("line item %d: quantity %d outside [%d,%d]", i, li.Quantity, domain.MinQuantity, domain.MaxQuantity)
		}
	}
	return nil
}

// recomputePlanTotals rederives every line total and the plan totals so a
// stored plan never disagrees with its own line items.
func recomputePlanTotals(p *domain.TreatmentPlan) {
	total, material := decimal.Zero, decimal.Zero
	for i := range p.LineItems {
		p.LineItems[i].Recompute()
		total = total.Add(p.LineItems[i].TotalCost)
		material = material.Add(p.LineItems[i].MaterialCost)
	}
	p.TotalCost = domain.RoundMoney(total)
	p.TotalMaterialCost = domain.RoundMoney(material)
}

func validateCategory(c domain.TreatmentCategory) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("category id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category %s: name is required", c.ID)
	}
	if c.BaseCost.IsNegative() {
		return fmt.Errorf("category %s: base cost must not be negative", c.ID)
	}
	return nil
}
