package main

import (
	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/persistence/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				if err := postgres.Migrate(cmd.Context(), &cfg.Database); err != nil {
					return err
				}
				cmd.Println("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				version, err := postgres.MigrationVersion(cmd.Context(), &cfg.Database)
				if err != nil {
					return err
				}
				cmd.Printf("schema version %d\n", version)
				return nil
			},
		},
	)
	return cmd
}
