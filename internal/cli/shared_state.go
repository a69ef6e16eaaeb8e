package cli

import (
	"log/slog"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/stepper"
	"github.com/shopspring/decimal"
)

// headerHeight is the number of lines drawn above the active view.
const headerHeight = 2

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	Catalog   *catalog.Catalog
	Selector  *catalog.Selector
	Scheduler stepper.Scheduler

	// Terminal dimensions
	Width  int
	Height int

	// Outcome of the editing session, read after the program exits.
	Saved     *domain.TreatmentPlan
	Cancelled bool
}

func newSharedState(app *App, cat *catalog.Catalog, sched stepper.Scheduler) *SharedState {
	return &SharedState{
		App:       app,
		Catalog:   cat,
		Selector:  catalog.NewSelector(cat, catalog.WithDisplayLimit(app.Config.Catalog.DisplayLimit)),
		Scheduler: sched,
	}
}

// Money formats an amount with the configured currency symbol.
func (s *SharedState) Money(d decimal.Decimal) string {
	return formatter.Money(s.App.currency(), d)
}

func (s *SharedState) Logger() *slog.Logger {
	return s.App.logger()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - headerHeight - 2
	if h < 1 {
		return 1
	}
	return h
}
