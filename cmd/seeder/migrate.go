// cmd/seeder/migrate.go
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ammerola/dashboard-be/internal/adapters/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m := newMigrator()
		defer m.Close()

		if err := m.Up(cmd.Context()); err != nil {
			exitError("%v", err)
		}
		printVersion(cmd, m)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m := newMigrator()
		defer m.Close()

		if err := m.Down(cmd.Context()); err != nil {
			exitError("%v", err)
		}
		success("last migration rolled back")
		printVersion(cmd, m)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m := newMigrator()
		defer m.Close()

		printVersion(cmd, m)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

func newMigrator() *db.Migrator {
	cfg, slogger := loadConfig()

	m, err := db.NewMigrator(&db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
	}, slogger)
	if err != nil {
		exitError("failed to create migrator: %v", err)
	}
	return m
}

func printVersion(cmd *cobra.Command, m *db.Migrator) {
	version, dirty, err := m.Version(cmd.Context())
	if err != nil {
		exitError("%v", err)
	}

	state := color.GreenString("clean")
	if dirty {
		state = color.YellowString("dirty")
	}
	fmt.Printf("schema version %d (%s)\n", version, state)
}
