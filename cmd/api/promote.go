package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/repository"
	"github.com/colts18seth/jobly/internal/service"
	"github.com/colts18seth/jobly/internal/worker"
)

func newPromoteCmd() *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant admin rights to a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			dispatcher := events.NewInMemoryDispatcher()
			audit := worker.NewAuditWorker(dispatcher, rt.logger, 1)
			users := service.NewUserService(repository.NewUserRepository(pg.DB()), rt.cfg.Auth.BcryptCost, dispatcher, rt.logger)
			if err := users.Promote(cmd.Context(), args[0], !revoke); err != nil {
				return err
			}
			audit.Flush()

			verb := "granted to"
			if revoke {
				verb = "revoked from"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "admin %s %s\n", verb, args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "Remove admin rights instead")
	return cmd
}
