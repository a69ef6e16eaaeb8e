package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/domain"
	"github.com/alexanderramin/dentplan/internal/repository"
	"github.com/alexanderramin/dentplan/internal/sheet"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := app.Plans.List(ctx, repository.PlanFilter{})
	if err != nil {
		return "", err
	}

	// 1. Exact UUID match
	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 2. UUID prefix match
	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func loadPlan(ctx context.Context, app *App, input string) (*domain.TreatmentPlan, error) {
	id, err := resolvePlanID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	return app.Plans.GetByID(ctx, id)
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build and manage treatment plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(app),
		newPlanEditCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanRemoveCmd(app),
		newPlanExportCmd(app),
	)

	return cmd
}

func newPlanNewCmd(app *App) *cobra.Command {
	var patient, name string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Open the editor on an empty plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, app, &domain.TreatmentPlan{
				PatientID: patient,
				Name:      name,
			})
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "Patient ID")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")

	return cmd
}

func newPlanEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Open the editor on a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			p, err := loadPlan(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			return runEditor(cmd, app, p)
		},
	}
}

// runEditor runs the editor TUI on base and reports how the session ended.
func runEditor(cmd *cobra.Command, app *App, base *domain.TreatmentPlan) error {
	if !app.interactive() {
		return errNotInteractive
	}
	ctx := cmd.Context()

	cat, err := app.Categories.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	sched := &teaScheduler{}
	state := newSharedState(app, cat, sched)
	model := newAppModel(state, newEditorView(state, base))

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	sched.send = p.Send
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running editor: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case state.Saved != nil:
		fmt.Fprintf(out, "Saved plan %s (%s)\n\n", formatter.ShortID(state.Saved.ID), state.Money(state.Saved.TotalCost))
		fmt.Fprintln(out, formatter.FormatPlanDetail(state.Saved, app.currency()))
	case state.Cancelled:
		fmt.Fprintln(out, formatter.Dim("Discarded changes."))
	}
	return nil
}

func newPlanListCmd(app *App) *cobra.Command {
	var (
		patient string
		status  statusFlag
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List treatment plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.PlanFilter{PatientID: patient, Status: status.status}

			plans, err := app.Plans.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, app.currency()))
			return nil
		},
	}

	cmd.Flags().StringVar(&patient, "patient", "", "Only plans for this patient")
	cmd.Flags().Var(&status, "status", statusUsage("Only plans with this status"))

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a plan and its cost lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanDetail(p, app.currency()))
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a plan's cost sheet to an .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPlan(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = "plan-" + formatter.ShortID(p.ID) + ".xlsx"
			}
			if err := writeFile(out, func(f *os.File) error { return sheet.WritePlan(f, p) }); err != nil {
				return fmt.Errorf("exporting plan: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.DisplayName(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default plan-<id>.xlsx)")

	return cmd
}

// writeFile creates path and runs write against it, keeping the first error.
func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
