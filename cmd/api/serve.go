package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/app"
	"github.com/colts18seth/jobly/internal/persistence"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			defer rt.logger.Sync() //nolint:errcheck
			return serve(cmd.Context(), rt)
		},
	}
}

func serve(ctx context.Context, rt *runtime) error {
	logger := rt.logger

	pg, err := rt.connectPostgres(ctx)
	if err != nil {
		return err
	}
	defer pg.Close()

	if rt.cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(ctx, rt.cfg.Redis, logger)
	defer redis.Close()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	server := app.NewServer(rt.cfg, logger, pg, redis)
	server.StartWorkers(workerCtx)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", rt.cfg.App.Addr()))
		listenErr <- server.App.Listen(rt.cfg.App.Addr())
	}()

	select {
	case err = <-listenErr:
		logger.Error("fiber listen", zap.Error(err))
	case <-ctx.Done():
		logger.Info("shutting down")
		if shutdownErr := server.App.ShutdownWithTimeout(shutdownTimeout); shutdownErr != nil {
			logger.Warn("shutdown", zap.Error(shutdownErr))
		}
	}

	stopWorkers()
	server.WaitWorkers()
	return err
}
