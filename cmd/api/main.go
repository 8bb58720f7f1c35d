package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bragboard/internal/api/http"
	"github.com/spec-kit/bragboard/internal/api/http/handlers"
	"github.com/spec-kit/bragboard/internal/auth"
	"github.com/spec-kit/bragboard/internal/config"
	"github.com/spec-kit/bragboard/internal/events"
	"github.com/spec-kit/bragboard/internal/observability"
	"github.com/spec-kit/bragboard/internal/persistence"
	"github.com/spec-kit/bragboard/internal/repository"
	"github.com/spec-kit/bragboard/internal/repository/memory"
	"github.com/spec-kit/bragboard/internal/service"
	"github.com/spec-kit/bragboard/internal/worker"
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
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo     repository.UserRepository
		shoutoutRepo repository.ShoutoutRepository
		reactionRepo repository.ReactionRepository
		commentRepo  repository.CommentRepository
		auditRepo    repository.AuditLogRepository
	)
	if pool != nil {
		userRepo = repository.NewUserRepository(pool)
		shoutoutRepo = repository.NewShoutoutRepository(pool)
		reactionRepo = repository.NewReactionRepository(pool)
		commentRepo = repository.NewCommentRepository(pool)
		auditRepo = repository.NewAuditLogRepository(pool)
	} else {
		store := memory.NewStore()
		userRepo = store.Users()
		shoutoutRepo = store.Shoutouts()
		reactionRepo = store.Reactions()
		commentRepo = store.Comments()
		auditRepo = store.AuditLog()
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	shoutoutService := service.NewShoutoutService(service.ShoutoutDependencies{
		ShoutoutRepo: shoutoutRepo,
		UserRepo:     userRepo,
		ReactionRepo: reactionRepo,
		CommentRepo:  commentRepo,
		Dispatcher:   dispatcher,
	})
	reactionService := service.NewReactionService(reactionRepo, dispatcher)
	commentService := service.NewCommentService(commentRepo, shoutoutRepo, userRepo, dispatcher)
	moderationService := service.NewModerationService(shoutoutRepo, auditRepo, dispatcher)
	leaderboardService := service.NewLeaderboardService(shoutoutRepo, userRepo, redis, cfg.Leaderboard, logger)
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		UserRepo:     userRepo,
		ShoutoutRepo: shoutoutRepo,
		AuditRepo:    auditRepo,
		Dispatcher:   dispatcher,
		BcryptCost:   cfg.Auth.BcryptCost,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)
	worker.StartLeaderboardInvalidator(leaderboardService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, directoryService)
	shoutoutsHandler := handlers.NewShoutoutsHandler(shoutoutService, reactionService, commentService, moderationService, directoryService)
	adminHandler := handlers.NewAdminHandler(moderationService, directoryService, leaderboardService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Shoutouts:      shoutoutsHandler,
		Admin:          adminHandler,
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
