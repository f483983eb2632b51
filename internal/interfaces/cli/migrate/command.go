package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/skolar-inc/skolar/internal/infrastructure/config"
	"github.com/skolar-inc/skolar/internal/infrastructure/database"
	"github.com/skolar-inc/skolar/internal/infrastructure/migration"
	"github.com/skolar-inc/skolar/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply the extended billing schema migrations and inspect their status.`,
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
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()
			return migration.Up(cmd.Context(), gdb)
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()
			return migration.Down(cmd.Context(), gdb)
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()
			return migration.Status(cmd.Context(), gdb)
		},
	}
}

func connect() (*gorm.DB, func(), error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}
	return database.Get(), cleanup, nil
}
