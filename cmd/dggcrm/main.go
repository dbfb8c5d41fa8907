package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dggcrm/dggcrm/internal/interfaces/cli/migrate"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/seed"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/server"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/user"
	"github.com/dggcrm/dggcrm/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dggcrm",
		Short:        "DGG CRM - volunteer organizing backend",
		Long:         `DGG CRM tracks contacts, events, groups and outreach tickets for volunteer organizers.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		user.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
