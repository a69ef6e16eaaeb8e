package service

import (
	"context"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/repository"
)

type PlanService interface {
	// Save creates the plan, or replaces the stored plan and all of its line
	// items when the id already exists. An empty id is assigned.
	Save(ctx context.Context, p *domain.TreatmentPlan) error
	GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error)
	List(ctx context.Context, filter repository.PlanFilter) ([]*domain.TreatmentPlan, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.TreatmentCategory, error)
	// Catalog loads the stored categories into an in-memory catalog.
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	// Import upserts every category in one transaction and returns how many
	// were written.
	Import(ctx context.Context, categories []domain.TreatmentCategory) (int, error)
	// SeedDefaults installs the built-in catalog when no categories exist.
	SeedDefaults(ctx context.Context) (bool, error)
}
