package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/persistorai/rdf2graph/internal/config"
	"github.com/persistorai/rdf2graph/internal/db"
	"github.com/persistorai/rdf2graph/internal/dbpool"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Erase every node, edge and property",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.session.Clear(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "graph cleared")

			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cfg.StoreBackend != config.BackendPostgres {
				return fmt.Errorf("migrate requires the %s backend, got %s", config.BackendPostgres, cfg.StoreBackend)
			}

			ctx := cmd.Context()

			pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := db.RunMigrations(ctx, pool, newLogger(cfg), nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), schema version %d\n", applied, db.SchemaVersion())

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", db.SchemaVersion())
		},
	}
}
