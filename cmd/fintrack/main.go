// Command fintrack is the command-line client of the finance tracker. It
// works directly on the configured database through the same services as
// the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/services"
	"fintrack/internal/store"
)

// cliApp holds what every subcommand needs once the database is open.
type cliApp struct {
	cfg  *config.Config
	svcs *services.Services
	db   *database.Manager
}

func (a *cliApp) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		logger.Get().Warnf("database close error: %v", err)
	}
	a.db = nil
}

func newRootCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance tracker",
		Long: `fintrack records gains and expenses in monthly ledgers, tracks loans and
scheduled debts, checks budgets and exports period reports.

Amounts are given in currency units, e.g. 12.50 or 12,50.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := database.NewManager(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			if err := db.RunMigrations(); err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
			app.cfg = cfg
			app.db = db
			app.svcs = services.New(store.New(db.DB()))
			return nil
		},
	}

	cmd.AddCommand(categoryCmd(app))
	cmd.AddCommand(txCmd(app))
	cmd.AddCommand(budgetCmd(app))
	cmd.AddCommand(loanCmd(app))
	cmd.AddCommand(debtCmd(app))
	cmd.AddCommand(reportCmd(app))

	return cmd
}

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		// Keep the terminal for command output; log warnings and errors only.
		env = "cli"
	}
	logger.Init(env)
	defer logger.Sync()

	app := &cliApp{}
	err := newRootCmd(app).Execute()
	app.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
