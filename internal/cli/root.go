package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/alexanderramin/dentplan/internal/config"
	"github.com/alexanderramin/dentplan/internal/service"
	"github.com/spf13/cobra"
)

// errNotInteractive is returned by commands that open the editor when stdin
// is not a terminal.
var errNotInteractive = errors.New("the plan editor needs an interactive terminal")

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans      service.PlanService
	Categories service.CategoryService

	Config     config.Config
	ConfigPath string
	Logger     *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) currency() string {
	return a.Config.General.CurrencySymbol
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "dentplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dentplan",
		Short:         "Dental treatment plan builder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newCategoryCmd(app),
		newConfigCmd(app),
	)

	return root
}
