package cli

import (
	"context"
	"fmt"

	"github.com/eleven-am/bistro/internal/introspect"
	"github.com/eleven-am/bistro/internal/migrator"
	"github.com/eleven-am/bistro/internal/store"
	"github.com/spf13/cobra"
)

func newDBCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect and reset the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the database target and applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withStore(cmd, func(ctx context.Context, s *store.Store, out *printer) error {
				applied, err := migrator.AppliedMigrations(ctx, s.DB())
				if err != nil {
					return err
				}

				cfg := opts.dbConfig()
				out.line("Driver: %s", cfg.Driver)
				out.line("Database: %s", cfg.URL)
				out.line("Applied migrations: %d", len(applied))
				for _, name := range applied {
					out.line("  %s", name)
				}
				return nil
			})
		},
	})

	var format string
	schema := &cobra.Command{
		Use:   "schema",
		Short: "Describe the tables, columns and indexes of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := introspect.ParseExportFormat(format)
			if err != nil {
				return err
			}
			return opts.withStore(cmd, func(ctx context.Context, s *store.Store, out *printer) error {
				inspected, err := introspect.NewInspector(s.DB(), opts.dbConfig().Driver).GetSchema(ctx)
				if err != nil {
					return err
				}
				data, err := introspect.ExportSchema(inspected, exportFormat)
				if err != nil {
					return err
				}
				_, err = out.w.Write(data)
				return err
			})
		},
	}
	schema.Flags().StringVar(&format, "format", "markdown", "output format (markdown, json, yaml)")
	cmd.AddCommand(schema)

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Drop every table and recreate the empty schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes every record; re-run with --yes to confirm")
			}
			return opts.withStore(cmd, func(ctx context.Context, s *store.Store, out *printer) error {
				if err := s.Reset(ctx); err != nil {
					return err
				}
				out.line("Database reset successfully.")
				return nil
			})
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "confirm deleting every record")
	cmd.AddCommand(reset)

	return cmd
}
