package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dentplan/internal/db"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) PlanService {
	return &planService{
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *planService) Save(ctx context.Context, p *domain.TreatmentPlan) (err error) {
	uc := startUseCase(s.observer, "save-plan")
	uc.set("line_items", len(p.LineItems))
	defer func() {
		uc.set("plan_id", p.ID)
		uc.finish(ctx, &err)
	}()

	if p.Status == "" {
		p.Status = domain.PlanPending
	}
	if err = validatePlan(p); err != nil {
		return err
	}
	recomputePlanTotals(p)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := s.now()
	p.UpdatedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)

		existing, getErr := txPlans.GetByID(ctx, p.ID)
		switch {
		case errors.Is(getErr, repository.ErrNotFound):
			if p.CreatedAt.IsZero() {
				p.CreatedAt = now
			}
			uc.set("created", true)
			return txPlans.Create(ctx, p)
		case getErr != nil:
			return getErr
		}

		p.CreatedAt = existing.CreatedAt
		uc.set("created", false)
		return txPlans.Update(ctx, p)
	})
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.TreatmentPlan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context, filter repository.PlanFilter) ([]*domain.TreatmentPlan, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, filter.Status)
	}
	return s.plans.List(ctx, filter)
}

func (s *planService) Delete(ctx context.Context, id string) (err error) {
	uc := startUseCase(s.observer, "delete-plan")
	uc.set("plan_id", id)
	defer uc.finish(ctx, &err)
	return s.plans.Delete(ctx, id)
}
