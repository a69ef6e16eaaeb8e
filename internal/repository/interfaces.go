package repository

import (
	"context"

	"github.com/alexanderramin/dentplan/internal/domain"
)

type CategoryRepo interface {
	List(ctx context.Context) ([]domain.TreatmentCategory, error)
	GetByID(ctx context.Context, id string) (*domain.TreatmentCategory, error)
	Upsert(ctx context.Context, c *domain.TreatmentCategory) error
	Count(ctx context.Context) (int, error)
}

// PlanFilter narrows PlanRepo.List. Zero fields match everything.
type PlanFilter struct {
	PatientID string
	Status    domain.PlanStatus
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.TreatmentPlan) error
	Update(ctx context.Context, p *domain.TreatmentPlan) error
	GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error)
	// List returns plan headers with stored totals; LineItems is left nil.
	List(ctx context.Context, filter PlanFilter) ([]*domain.TreatmentPlan, error)
	Delete(ctx context.Context, id string) error
}
