package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testPlanCounter atomic.Int64

// Category options
type CategoryOption func(*domain.TreatmentCategory)

func WithBaseCost(amount string) CategoryOption {
	return func(c *domain.TreatmentCategory) {
		c.BaseCost = decimal.RequireFromString(amount)
	}
}

func WithCategoryName(name string) CategoryOption {
	return func(c *domain.TreatmentCategory) {
		c.Name = name
	}
}

func WithDescription(desc string) CategoryOption {
	return func(c *domain.TreatmentCategory) {
		c.Description = desc
	}
}

// NewTestCategory builds a category named after its id with a base cost of
// 1000.
func NewTestCategory(id string, opts ...CategoryOption) *domain.TreatmentCategory {
	c := &domain.TreatmentCategory{
		ID:       id,
		Name:     strings.ToUpper(id[:1]) + id[1:],
		BaseCost: decimal.NewFromInt(1000),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Plan options
type PlanOption func(*domain.TreatmentPlan)

func WithPatientID(id string) PlanOption {
	return func(p *domain.TreatmentPlan) {
		p.PatientID = id
	}
}

func WithPlanName(name string) PlanOption {
	return func(p *domain.TreatmentPlan) {
		p.Name = name
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.TreatmentPlan) {
		p.Status = s
	}
}

func WithDates(start, end string) PlanOption {
	return func(p *domain.TreatmentPlan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithNotes(notes string) PlanOption {
	return func(p *domain.TreatmentPlan) {
		p.Notes = notes
	}
}

// WithLineItem appends a line and refreshes the plan totals.
func WithLineItem(categoryID, baseCost string, qty int, materialCost string) PlanOption {
	return func(p *domain.TreatmentPlan) {
		li := domain.CostLineItem{
			CategoryID:   categoryID,
			CategoryName: strings.ToUpper(categoryID[:1]) + categoryID[1:],
			BaseCost:     decimal.RequireFromString(baseCost),
			Quantity:     qty,
			MaterialCost: decimal.RequireFromString(materialCost),
		}
		li.Recompute()
		p.LineItems = append(p.LineItems, li)
		p.TotalCost = p.TotalCost.Add(li.TotalCost)
		p.TotalMaterialCost = p.TotalMaterialCost.Add(li.MaterialCost)
	}
}

// NewTestPlan builds a pending plan with no line items. Timestamps are
// truncated to the second so they survive an RFC3339 round trip.
func NewTestPlan(opts ...PlanOption) *domain.TreatmentPlan {
	now := time.Now().UTC().Truncate(time.Second)
	n := testPlanCounter.Add(1)
	p := &domain.TreatmentPlan{
		ID:                uuid.New().String(),
		Name:              fmt.Sprintf("Test plan %02d", n),
		StartDate:         now.Format(domain.DateLayout),
		Status:            domain.PlanPending,
		TotalCost:         decimal.Zero,
		TotalMaterialCost: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
