package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/aueb-cf/inventory-service/internal/api/http"
	"github.com/aueb-cf/inventory-service/internal/api/http/handlers"
	"github.com/aueb-cf/inventory-service/internal/auth"
	"github.com/aueb-cf/inventory-service/internal/config"
	"github.com/aueb-cf/inventory-service/internal/events"
	"github.com/aueb-cf/inventory-service/internal/observability"
	"github.com/aueb-cf/inventory-service/internal/persistence"
	"github.com/aueb-cf/inventory-service/internal/repository"
	"github.com/aueb-cf/inventory-service/internal/service"
	"github.com/aueb-cf/inventory-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	pool := pg.Pool

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), auth.WithIssuer(cfg.Auth.TokenIssuer))
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	policy, err := auth.BuildPolicy(cfg.Auth.PolicyFile, cfg.Auth.PolicyDefault)
	if err != nil {
		logger.Fatal("failed to build authorization policy", zap.Error(err))
	}
	logger.Info("authorization policy loaded",
		zap.Int("rules", len(policy.Rules())),
		zap.String("file", cfg.Auth.PolicyFile),
		zap.String("default", cfg.Auth.PolicyDefault))

	userRepo := repository.NewBreakerUserRepository(
		repository.NewUserRepository(pool), repository.DefaultBreakerSettings(), logger)

	authService, err := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Guard:      auth.NewRedisLoginGuard(redis.Client, cfg.Auth.LoginMaxFailures, cfg.Auth.LockoutWindow(), logger),
		Dispatcher: dispatcher,
		Recorder:   metrics,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}

	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CategoryRepo: repository.NewCategoryRepository(pool),
		SupplierRepo: repository.NewSupplierRepository(pool),
		ProductRepo:  repository.NewProductRepository(pool),
		OrderRepo:    repository.NewOrderRepository(pool),
		Logger:       logger,
	})

	app := httptransport.NewApp(cfg.App.Name, logger)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		Timeout:        cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Authentication: auth.NewAuthMiddleware(tokens, logger, metrics, dispatcher),
		Authorization:  auth.NewAuthorizer(policy, logger, metrics, dispatcher),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		LoginThrottle:  auth.NewLoginLimiter(cfg.Auth.LoginRatePerMinute, logger).Handle,
		MetricsHandler: metrics.Handler(),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
