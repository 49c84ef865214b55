package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/daily-pulse/internal/api/http"
	"github.com/spec-kit/daily-pulse/internal/api/http/handlers"
	"github.com/spec-kit/daily-pulse/internal/auth"
	"github.com/spec-kit/daily-pulse/internal/config"
	"github.com/spec-kit/daily-pulse/internal/events"
	"github.com/spec-kit/daily-pulse/internal/observability"
	"github.com/spec-kit/daily-pulse/internal/persistence"
	"github.com/spec-kit/daily-pulse/internal/ratelimit"
	"github.com/spec-kit/daily-pulse/internal/repository"
	"github.com/spec-kit/daily-pulse/internal/repository/memory"
	"github.com/spec-kit/daily-pulse/internal/service"
	"github.com/spec-kit/daily-pulse/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}

	var (
		userRepo      repository.UserRepository
		newsRepo      repository.NewsRepository
		publisherRepo repository.PublisherRepository
	)
	if mongo.Enabled() {
		if err := persistence.EnsureIndexes(ctx, mongo.DB, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
		userRepo = repository.NewUserRepository(mongo.DB)
		newsRepo = repository.NewNewsRepository(mongo.DB)
		publisherRepo = repository.NewPublisherRepository(mongo.DB)
	} else {
		store := memory.NewStore()
		userRepo, newsRepo, publisherRepo = store.Users(), store.News(), store.Publishers()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if redis.Enabled() {
		limiter = ratelimit.NewRedisLimiter(redis.Client)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	userService := service.NewUserService(userRepo, dispatcher)
	newsService := service.NewNewsService(newsRepo, dispatcher)
	publisherService := service.NewPublisherService(publisherRepo)
	counterService := service.NewCounterService(dispatcher, newsRepo, publisherRepo, logger)
	worker.StartEventWorkers(counterService, service.NewAuditService(dispatcher, logger))

	var reconciler *worker.ReconcileWorker
	if cfg.Worker.ReconcileEnabled() {
		reconciler, err = worker.NewReconcileWorker(counterService, cfg.Worker.ReconcileSchedule, time.Minute, logger)
		if err != nil {
			logger.Fatal("failed to schedule reconciliation", zap.Error(err))
		}
		reconciler.Start()
	}

	tokens := auth.NewTokenManager(cfg.Auth.AccessTokenSecret, cfg.Auth.AccessTokenTTL())
	metrics := observability.NewMetrics()

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.App.Port, mongo, redis, metrics),
		Tokens:          handlers.NewTokenHandler(tokens),
		Users:           handlers.NewUsersHandler(userService),
		News:            handlers.NewNewsHandler(newsService),
		Publishers:      handlers.NewPublishersHandler(publisherService),
		AuthMiddleware:  auth.NewAuthMiddleware(tokens),
		Admins:          userRepo,
		Limiter:         limiter,
		RateLimit:       cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.Window(),
		Logger:          logger,
	})

	go func() {
		logger.Info("the daily pulse server is running", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer closeCancel()
	reconciler.Stop(closeCtx)
	mongo.Close(closeCtx)
	redis.Close()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
