package main

import (
	"os"

	"github.com/spf13/cobra"

	"campusvoice/internal/interfaces/cli/migrate"
	"campusvoice/internal/interfaces/cli/seed"
	"campusvoice/internal/interfaces/cli/server"
	"campusvoice/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "campusvoice",
		Short:        "CampusVoice - campus complaint lifecycle and routing engine",
		Long:         `CampusVoice routes student complaints to the accountable authority, tracks their lifecycle and escalations, and publishes targeted notices.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		worker.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
