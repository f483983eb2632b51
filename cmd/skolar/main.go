package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skolar-inc/skolar/internal/interfaces/cli/migrate"
	"github.com/skolar-inc/skolar/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skolar",
		Short: "Skolar - school subscription billing service",
		Long:  `Skolar runs the subscription approval workflow and entitlement API for the school management platform.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
