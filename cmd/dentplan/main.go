package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/dentplan/internal/cli"
	"github.com/alexanderramin/dentplan/internal/config"
	"github.com/alexanderramin/dentplan/internal/db"
	"github.com/alexanderramin/dentplan/internal/repository"
	"github.com/alexanderramin/dentplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// interruptContext is cancelled by SIGINT or SIGTERM so a long export or
// import stops cleanly. The editor reads Ctrl+C as a key in raw mode.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func run() error {
	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs never go to the terminal: the editor owns the screen.
	logOut := io.Discard
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	database, err := db.OpenDB(cfg.General.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewSlogUseCaseObserver(logger)
	categories := service.NewCategoryService(categoryRepo, uow, observer)
	plans := service.NewPlanService(planRepo, uow, observer)

	ctx, stop := interruptContext(context.Background())
	defer stop()
	if seeded, err := categories.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	} else if seeded {
		logger.Info("seeded default catalog", "db", cfg.General.DBPath)
	}

	app := &cli.App{
		Plans:      plans,
		Categories: categories,
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
	}

	// The editor needs a real terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
