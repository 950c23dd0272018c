package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plandesk/admin-api/internal/api/dto"
	httptransport "github.com/plandesk/admin-api/internal/api/http"
	"github.com/plandesk/admin-api/internal/api/http/handlers"
	"github.com/plandesk/admin-api/internal/auth"
	"github.com/plandesk/admin-api/internal/config"
	"github.com/plandesk/admin-api/internal/events"
	"github.com/plandesk/admin-api/internal/observability"
	"github.com/plandesk/admin-api/internal/persistence"
	"github.com/plandesk/admin-api/internal/repository"
	"github.com/plandesk/admin-api/internal/service"
	"github.com/plandesk/admin-api/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	transferRepo := repository.NewTransferRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	planRepo := repository.NewPlanRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	planCache := persistence.NewPlanCache(redis)

	authService := service.NewAuthService(*cfg, userRepo, redis)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		TransferRepo: transferRepo,
		CategoryRepo: categoryRepo,
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
	})
	transferService := service.NewTransferService(service.TransferDependencies{
		TicketRepo:   ticketRepo,
		TransferRepo: transferRepo,
		UserRepo:     userRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
	})
	activityService := service.NewActivityService(activityRepo)
	planService := service.NewPlanService(planRepo, planCache, dispatcher)
	categoryService := service.NewCategoryService(categoryRepo)
	commentService := service.NewCommentService(service.CommentDependencies{
		CommentRepo:  commentRepo,
		TicketRepo:   ticketRepo,
		ActivityRepo: activityRepo,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()
	resolver := dto.AttachmentResolver{BaseURL: cfg.Uploads.BaseURL}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, resolver),
		Transfers:      handlers.NewTransfersHandler(transferService),
		Activity:       handlers.NewActivityHandler(activityService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Plans:          handlers.NewPlansHandler(planService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
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
