package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/db"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/repository"
)

type categoryService struct {
	categories repository.CategoryRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewCategoryService(categories repository.CategoryRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CategoryService {
	return &categoryService{
		categories: categories,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *categoryService) List(ctx context.Context) ([]domain.TreatmentCategory, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog.New(cats), nil
}

func (s *categoryService) Import(ctx context.Context, categories []domain.TreatmentCategory) (n int, err error) {
	uc := startUseCase(s.observer, "import-categories")
	uc.set("rows", len(categories))
	defer func() {
		uc.set("written", n)
		uc.finish(ctx, &err)
	}()

	for _, c := range categories {
		if err = validateCategory(c); err != nil {
			return 0, err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCategories := repository.NewSQLiteCategoryRepo(tx)
		for i := range categories {
			c := categories[i]
			c.BaseCost = domain.NonNegativeMoney(c.BaseCost)
			if err := txCategories.Upsert(ctx, &c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("importing categories: %w", err)
	}
	return len(categories), nil
}

func (s *categoryService) SeedDefaults(ctx context.Context) (bool, error) {
	n, err := s.categories.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.Import(ctx, catalog.DefaultCategories()); err != nil {
		return false, fmt.Errorf("seeding default categories: %w", err)
	}
	return true, nil
}
