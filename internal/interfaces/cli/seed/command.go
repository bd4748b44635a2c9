package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"campusvoice/internal/infrastructure/database"
	"campusvoice/internal/infrastructure/persistence/seeds"
	"campusvoice/internal/interfaces/cli/bootstrap"
)

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the campus directory",
		Long:  `Load departments, authorities and students from a YAML directory file. Safe to re-run.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", "./configs/directory.yaml", "Path to the directory file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()

	dir, err := seeds.LoadDirectory(f)
	if err != nil {
		return err
	}

	_, log, err := bootstrap.InitWithDatabase(bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer database.Close()

	res, err := seeds.SeedDirectory(cmd.Context(), database.Get(), dir)
	if err != nil {
		log.Errorw("seeding failed", "file", file, "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	log.Infow("directory seeded",
		"file", file,
		"departments_created", res.DepartmentsCreated,
		"authorities_created", res.AuthoritiesCreated,
		"authorities_skipped", res.AuthoritiesSkipped,
		"students_saved", res.StudentsSaved,
	)
	return nil
}
