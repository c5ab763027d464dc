package main

import (
	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/config"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.LoadForMigrations()
				if err := db.RunMigrations(cfg.DatabasePath); err != nil {
					return err
				}
				cmd.Println("migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.LoadForMigrations()
				if err := db.RollbackMigrations(cfg.DatabasePath); err != nil {
					return err
				}
				cmd.Println("migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.LoadForMigrations()
				version, dirty, err := db.MigrationVersion(cfg.DatabasePath)
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}
