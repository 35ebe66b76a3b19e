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

	httptransport "github.com/spec-kit/users-service/internal/api/http"
	"github.com/spec-kit/users-service/internal/api/http/handlers"
	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/config"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/observability"
	"github.com/spec-kit/users-service/internal/persistence"
	"github.com/spec-kit/users-service/internal/repository"
	"github.com/spec-kit/users-service/internal/service"
	"github.com/spec-kit/users-service/internal/worker"
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
	if pool == nil {
		logger.Fatal("postgres is required; set POSTGRES_DSN")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger, cfg.Notification.Enabled)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	publisher := events.NewRedisStreamPublisher(redis.Client, cfg.Notification.Stream, cfg.Notification.StreamMaxLen)
	defer publisher.Close() //nolint:errcheck

	notificationService := service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := auth.NewPasswordPolicy()

	userService := service.NewUserService(service.UserDependencies{
		UserRepo: repository.NewUserRepository(pool),
		Hasher:   hasher,
		Policy:   policy,
		Notifier: notificationService,
		Logger:   logger,
		Metrics:  metrics,
	})
	passengerService := service.NewPassengerService(service.PassengerDependencies{
		PassengerRepo: repository.NewPassengerRepository(pool),
		Hasher:        hasher,
		Policy:        policy,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.ServiceTokenSecret, cfg.Auth.ServiceTokenTTLMinutes)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:       handlers.NewUsersHandler(userService),
		Passengers:  handlers.NewPassengersHandler(passengerService),
		Internal:    handlers.NewInternalHandler(userService, passengerService),
		ServiceAuth: auth.NewServiceMiddleware(tokens),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
