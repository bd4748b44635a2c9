package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"campusvoice/internal/infrastructure/database"
	"campusvoice/internal/infrastructure/migration"
	"campusvoice/internal/interfaces/cli/bootstrap"
	"campusvoice/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending scripts, roll back, and show status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func initMigrator() (*migration.Migrator, logger.Interface, error) {
	cfg, log, err := bootstrap.InitWithDatabase(bootstrap.ResolveEnv(env))
	if err != nil {
		return nil, nil, err
	}

	m, err := migration.NewMigrator(database.Get(), cfg.Database.Driver, log.Named("migration"))
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return m, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	m, log, err := initMigrator()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running up migrations", "environment", env)
	if err := m.Up(cmd.Context()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}

	m, log, err := initMigrator()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "steps", steps)
	if err := m.Down(cmd.Context(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, _, err := initMigrator()
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := cmd.Context()

	version, err := m.Version(ctx)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	statuses, err := m.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", env)
	fmt.Fprintf(out, "  Current Version: %d\n\n", version)
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(out, "  %-8s %s\n", state, s.Path)
	}
	return nil
}
