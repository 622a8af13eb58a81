// Package app assembles the HTTP server from configuration and live
// connections.
package app

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/colts18seth/jobly/internal/api/http"
	"github.com/colts18seth/jobly/internal/api/http/handlers"
	"github.com/colts18seth/jobly/internal/api/validation"
	"github.com/colts18seth/jobly/internal/auth"
	"github.com/colts18seth/jobly/internal/config"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/observability"
	"github.com/colts18seth/jobly/internal/persistence"
	"github.com/colts18seth/jobly/internal/repository"
	"github.com/colts18seth/jobly/internal/service"
	"github.com/colts18seth/jobly/internal/worker"
)

// Server is a fully wired instance of the API.
type Server struct {
	App     *fiber.App
	Users   *service.UserService
	Metrics *observability.Metrics

	audit *worker.AuditWorker
}

// NewServer wires repositories, services and routes. redis may be nil, in
// which case the login throttle is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, pg *persistence.Postgres, redis *persistence.Redis) *Server {
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	audit := worker.NewAuditWorker(dispatcher, logger, 0)
	validator := validation.MustNew()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	db := pg.DB()
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	userRepo := repository.NewUserRepository(db)

	deps := map[string]handlers.Pinger{"postgres": pg}
	authDeps := service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		BcryptCost: cfg.Auth.BcryptCost,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
	if redis != nil {
		deps["redis"] = redis
		authDeps.Limiter = auth.NewLoginThrottle(redis.Client, cfg.Auth.LoginMaxFailures, cfg.Auth.LockoutWindow(), logger)
	}

	companyService := service.NewCompanyService(companyRepo, dispatcher, logger)
	jobService := service.NewJobService(jobRepo, dispatcher, logger)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, dispatcher, logger)
	authService := service.NewAuthService(authDeps)

	app := httptransport.NewApp(cfg.App.Name, logger, metrics)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps, metrics),
		Companies:     handlers.NewCompaniesHandler(companyService, validator),
		Jobs:          handlers.NewJobsHandler(jobService, validator),
		Users:         handlers.NewUsersHandler(userService, authService, validator),
		Login:         handlers.NewLoginHandler(authService, validator),
		Authenticator: auth.NewAuthenticator(tokens),
		LoginLimiter:  httptransport.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	})

	return &Server{App: app, Users: userService, Metrics: metrics, audit: audit}
}

// StartWorkers launches background consumers. They stop when ctx is done.
func (s *Server) StartWorkers(ctx context.Context) {
	s.audit.Start(ctx)
}

// WaitWorkers blocks until background consumers have drained.
func (s *Server) WaitWorkers() {
	s.audit.Wait()
}
