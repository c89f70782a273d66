package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/orca-works/orca-crm/internal/api/http"
	"github.com/orca-works/orca-crm/internal/api/http/handlers"
	"github.com/orca-works/orca-crm/internal/auth"
	"github.com/orca-works/orca-crm/internal/config"
	"github.com/orca-works/orca-crm/internal/events"
	"github.com/orca-works/orca-crm/internal/observability"
	"github.com/orca-works/orca-crm/internal/persistence"
	"github.com/orca-works/orca-crm/internal/repository"
	"github.com/orca-works/orca-crm/internal/service"
	"github.com/orca-works/orca-crm/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	worklogRepo := repository.NewWorklogRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	typeRepo := repository.NewTypeRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth)
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		TicketRepo:   ticketRepo,
		Dispatcher:   dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:   taskRepo,
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	worklogService := service.NewWorklogService(service.WorklogDependencies{
		WorklogRepo: worklogRepo,
		TicketRepo:  ticketRepo,
	})
	deviceService := service.NewDeviceService(service.DeviceDependencies{
		DeviceRepo:   deviceRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, redis, cfg.Events)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure),
		Customers:      handlers.NewCustomersHandler(customerService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Tasks:          handlers.NewTasksHandler(taskService),
		Devices:        handlers.NewDevicesHandler(deviceService),
		Worklogs:       handlers.NewWorklogsHandler(worklogService),
		Types:          handlers.NewTypesHandler(typeRepo),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
