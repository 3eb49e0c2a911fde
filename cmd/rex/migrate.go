package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rex/pkg/config"
	"github.com/dmitrymomot/rex/pkg/db"
	"github.com/dmitrymomot/rex/pkg/logger"
)

func migrateCmd(envFile *string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Apply, roll back or list goose SQL migrations against the database
configured by DATABASE_CONN_URL or the DB_* variables.`,
	}
	cmd.PersistentFlags().StringVarP(&dir, "dir", "d", "", "migrations directory (default $DATABASE_MIGRATIONS_DIR)")

	// withMigrator loads the config, connects and hands a migrator to fn.
	withMigrator := func(cmd *cobra.Command, fn func(m *db.Migrator) error) error {
		var cfg config.Config
		if err := config.Load(&cfg, *envFile); err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.Database.MigrationsDir
		}
		cfg.Log.Output = cmd.ErrOrStderr()
		log := logger.New(cfg.Log)

		pool, err := db.Connect(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()

		return fn(db.NewMigrator(pool, os.DirFS(dir),
			db.WithMigrationsTable(cfg.Database.MigrationsTable),
			db.WithMigrationsLogger(log),
		))
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m *db.Migrator) error {
					if err := m.Up(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m *db.Migrator) error {
					if err := m.Down(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, func(m *db.Migrator) error {
					statuses, err := m.Status(cmd.Context())
					if err != nil {
						return err
					}
					return printMigrations(cmd, statuses)
				})
			},
		},
	)

	return cmd
}

func printMigrations(cmd *cobra.Command, statuses []db.MigrationStatus) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATE\tSOURCE")
	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", s.Version, state, s.Source)
	}
	return w.Flush()
}
