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

	httptransport "github.com/spec-kit/gkh-dispatch/internal/api/http"
	"github.com/spec-kit/gkh-dispatch/internal/api/http/handlers"
	"github.com/spec-kit/gkh-dispatch/internal/config"
	"github.com/spec-kit/gkh-dispatch/internal/events"
	"github.com/spec-kit/gkh-dispatch/internal/observability"
	"github.com/spec-kit/gkh-dispatch/internal/persistence"
	"github.com/spec-kit/gkh-dispatch/internal/repository"
	"github.com/spec-kit/gkh-dispatch/internal/seed"
	"github.com/spec-kit/gkh-dispatch/internal/service"
	"github.com/spec-kit/gkh-dispatch/internal/worker"
)

const seedOperatorID = 1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	pointsPerLevel := cfg.Gamification.PointsPerLevel
	var loader seed.Loader = seed.NewFixtureLoader(pointsPerLevel)
	if pg.Enabled() {
		loader = seed.NewPostgresLoader(pg.PoolHandle(), seedOperatorID, pointsPerLevel)
	}
	dataset, err := loader.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load seed", zap.Error(err))
	}
	logger.Info("seed loaded",
		zap.Int("departments", len(dataset.Departments)),
		zap.Int("requests", len(dataset.Requests)),
		zap.Bool("from_postgres", pg.Enabled()))

	requestRepo, err := repository.NewRequestRepository(dataset.Requests)
	if err != nil {
		logger.Fatal("failed to build request store", zap.Error(err))
	}
	departmentRepo, err := repository.NewDepartmentRepository(dataset.Departments)
	if err != nil {
		logger.Fatal("failed to build department catalog", zap.Error(err))
	}
	operatorRepo := repository.NewOperatorRepository(dataset.Operator)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	var publisher *events.RedisPublisher
	if rdb.Enabled() {
		publisher = events.NewRedisPublisher(rdb.Client, cfg.Redis.EventsChannel)
	}
	worker.StartNotificationWorker(notificationService, dispatcher, publisher)

	profileService := service.NewProfileService(operatorRepo, pointsPerLevel, logger)
	boardService := service.NewBoardService(service.BoardDependencies{
		RequestRepo: requestRepo,
		Profiles:    profileService,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		RequestRepo:    requestRepo,
		DepartmentRepo: departmentRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	dashboardService := service.NewDashboardService(boardService, assignmentService, profileService)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    rdb,
		}),
		Requests:    handlers.NewRequestsHandler(boardService, assignmentService),
		Focus:       handlers.NewFocusHandler(boardService),
		Departments: handlers.NewDepartmentsHandler(assignmentService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, profileService, metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
