package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colts18seth/jobly/internal/persistence"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.logger.Sync() //nolint:errcheck

			pg, err := rt.connectPostgres(cmd.Context())
			if err != nil {
				return err
			}
			defer pg.Close()
			if pg.PoolHandle() == nil {
				return fmt.Errorf("POSTGRES_DSN is required")
			}
			return persistence.RunMigrations(cmd.Context(), pg.PoolHandle(), rt.logger)
		},
	}
	cmd.AddCommand(newMigrateStatusCmd())
	return cmd
}

func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			pg, err := rt.connectPostgres(cmd.Context())
			if err != nil {
				return err
			}
			defer pg.Close()

			statuses, err := persistence.MigrationStatus(cmd.Context(), pg.PoolHandle())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, st := range statuses {
				applied := "-"
				if !st.AppliedAt.IsZero() {
					applied = st.AppliedAt.Format("2006-01-02 15:04:05")
				}
				_, _ = fmt.Fprintf(out, "%-40s %-8s %s\n", st.Source.Path, st.State, applied)
			}
			return nil
		},
	}
}
