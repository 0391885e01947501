package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/support-desk/internal/api/http"
	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/internal/worker"
	"github.com/spec-kit/support-desk/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	migrator := persistence.NewMigrator(pool, migrations.FS, logger)
	if cfg.Postgres.RunMigrations {
		if _, err := migrator.Apply(ctx); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	var publisher events.EventHandler
	if cfg.Kafka.Enabled() {
		kafka := events.NewKafkaPublisher(cfg.Kafka)
		defer kafka.Close() //nolint:errcheck
		publisher = kafka.Handle
	}
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(dispatcher, logger), publisher, logger)

	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	checks := service.NewChecks(userRepo, ticketRepo)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		Checks:   checks,
		Tokens:   tokens,
	})
	userService := service.NewUserService(cfg.Auth, userRepo, checks)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Checks:     checks,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	exportService := service.NewExportService(ticketRepo)

	metrics := observability.NewMetrics()
	systemService := service.NewSystemService(service.SystemDependencies{
		Database: pg,
		Redis:    redis,
		Migrator: migrator,
		Metrics:  metrics,
		Version:  cfg.App.Version,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		Timeout:      cfg.App.RequestTimeout(),
	})

	probes := map[string]handlers.Pinger{"postgres": pg}
	routes := httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, probes),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Export:         handlers.NewExportHandler(exportService),
		System:         handlers.NewSystemHandler(systemService),
		AuthMiddleware: auth.NewMiddleware(tokens, userRepo),
		LoginLimit:     cfg.HTTP.LoginRateLimit,
	}
	if redis.Enabled() {
		probes["redis"] = redis
		routes.LimiterStorage = redis.Storage("login-limit:")
	}
	httptransport.RegisterRoutes(app, routes)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
