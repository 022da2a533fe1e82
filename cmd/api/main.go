package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/nueltech/catalog-service/internal/api/http"
	"github.com/nueltech/catalog-service/internal/api/http/handlers"
	"github.com/nueltech/catalog-service/internal/auth"
	"github.com/nueltech/catalog-service/internal/config"
	"github.com/nueltech/catalog-service/internal/events"
	"github.com/nueltech/catalog-service/internal/observability"
	"github.com/nueltech/catalog-service/internal/persistence"
	"github.com/nueltech/catalog-service/internal/repository"
	"github.com/nueltech/catalog-service/internal/service"
	"github.com/nueltech/catalog-service/internal/worker"
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

	if cfg.Auth.UsingDefaultSecret() {
		logger.Warn("AUTH_JWT_SECRET is not set; using the insecure built-in secret. Every issued token is forgeable. Do not run like this in production.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	productCache := repository.NewProductCache(redis.Client, cfg.Redis.CacheTTL())

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
	})
	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo: productRepo,
		Cache:       productCache,
		Dispatcher:  dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Products:       handlers.NewProductsHandler(productService),
		AuthMiddleware: authMiddleware,
		AuthRateLimit:  httptransport.PerIPRateLimit(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
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
