// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joycdecor/joycdecor/internal/platform/migration"
)

var errNoDatabase = errors.New("DATABASE_URL is not set (environment or .env)")

func (app *App) migrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		Long: `Run the same schema migrations the API applies on startup.
Reads DATABASE_URL and MIGRATION_PATH from the environment or .env.`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.DatabaseURL == "" {
				return errNoDatabase
			}
			if err := migration.RunUp(app.settings.DatabaseURL, app.settings.MigrationPath, app.logger); err != nil {
				return err
			}
			return app.printVersion()
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.DatabaseURL == "" {
				return errNoDatabase
			}
			if err := migration.RunDown(app.settings.DatabaseURL, app.settings.MigrationPath, steps, app.logger); err != nil {
				return err
			}
			return app.printVersion()
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if app.settings.DatabaseURL == "" {
				return errNoDatabase
			}
			return app.printVersion()
		},
	}

	migrate.AddCommand(up, down, version)
	return migrate
}

func (app *App) printVersion() error {
	status, err := migration.Version(app.settings.DatabaseURL, app.settings.MigrationPath, app.logger)
	if err != nil {
		return err
	}

	if app.jsonOutput {
		return app.printJSON(map[string]any{"version": status.Version, "dirty": status.Dirty, "empty": status.Empty})
	}

	switch {
	case status.Empty:
		fmt.Fprintln(app.Stdout, "No migrations applied")
	case status.Dirty:
		warnLabel.Fprintf(app.Stdout, "Schema version %d (dirty, needs manual repair)\n", status.Version)
	default:
		app.success("Schema version %d", status.Version)
	}
	return nil
}
