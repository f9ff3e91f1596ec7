package main

import (
	"catalogconsole/app"
	"catalogconsole/infra/catalogapi"
	grpcinfra "catalogconsole/infra/grpc"
	"catalogconsole/infra/postgres"
	"catalogconsole/infra/rabbitmq"
	"catalogconsole/infra/redis"
	"catalogconsole/internal/api"
	"catalogconsole/internal/middleware"
	"catalogconsole/internal/web"
	"catalogconsole/pkg/aws"
	"catalogconsole/pkg/config"
	"catalogconsole/pkg/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()

	log := logger.Init(appConfig.LogLevel, appConfig.LogFormat)
	defer log.Sync()

	zap.L().Info("catalog console starting...",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("catalogAPI", appConfig.CatalogAPIURL),
		zap.String("sessionStorage", appConfig.SessionStorage),
	)

	// the backend expects numeric prices
	decimal.MarshalJSONWithoutQuotes = true

	client := catalogapi.NewClient(appConfig.CatalogAPIURL, appConfig.AuthLoginPath, appConfig.CatalogAPITimeout)

	deps := app.Dependencies{
		Gateway:           client,
		Authenticator:     client,
		LowStockThreshold: appConfig.LowStockThreshold,
		ImportConcurrency: appConfig.ImportConcurrency,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthChecks := []grpcinfra.Check{client.Ping}

	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Catalog events disabled", zap.Error(err))
		} else {
			deps.Publisher = publisher
			healthChecks = append(healthChecks, publisher.Check)
			defer publisher.Close()
		}
	}

	if appConfig.ActivityLogEnabled() {
		repository, err := openActivityLog(ctx, appConfig)
		if err != nil {
			zap.L().Warn("Activity log disabled", zap.Error(err))
		} else {
			deps.Activity = repository
			defer repository.Close()
		}
	}

	var bucket *aws.S3
	if appConfig.AWSBucket != "" {
		bucket = aws.NewS3Bucket(appConfig)
		defer bucket.Close()
		if appConfig.ExportArchive {
			deps.Archive = bucket
		}
	}

	storage, err := sessionStorage(appConfig, bucket)
	if err != nil {
		zap.L().Fatal("Failed to set up session storage", zap.Error(err))
	}
	store := middleware.NewSessionStore(storage, appConfig.SessionExpiration, appConfig.CookieSecure)

	handlers := app.NewHandlers(deps)

	fiberApp := fiber.New(fiber.Config{
		AppName:      appConfig.ServiceName,
		Views:        web.NewEngine(),
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    6 << 20,
	})
	fiberApp.Use(middleware.NewRequestLogger())

	api.Register(fiberApp, handlers, store)
	web.NewConsole(handlers, store).Register(fiberApp)

	var healthServer *grpcinfra.Server
	if appConfig.GRPCPort != "" {
		healthServer, err = grpcinfra.NewServer(appConfig.GRPCPort)
		if err != nil {
			zap.L().Fatal("Failed to create gRPC health server", zap.Error(err))
		}
		go func() {
			if err := healthServer.Start(); err != nil {
				zap.L().Error("gRPC health server stopped", zap.Error(err))
			}
		}()
		go healthServer.RunProbe(ctx, appConfig.HealthProbeInterval, grpcinfra.AllChecks(healthChecks...))
	}

	go func() {
		if err := fiberApp.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(fiberApp, func() {
		cancel()
		if healthServer != nil {
			healthServer.GracefulStop()
		}
	})
}

func openActivityLog(ctx context.Context, appConfig *config.AppConfig) (*postgres.PgRepository, error) {
	repository, err := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	if err != nil {
		return nil, err
	}

	if err := repository.EnsureSchema(ctx); err != nil {
		repository.Close()
		return nil, fmt.Errorf("create activity table: %w", err)
	}
	return repository, nil
}

// sessionStorage returns nil for in-memory sessions.
func sessionStorage(appConfig *config.AppConfig, bucket *aws.S3) (fiber.Storage, error) {
	switch appConfig.SessionStorage {
	case "", "memory":
		return nil, nil
	case "redis":
		if appConfig.RedisURL == "" {
			return nil, errors.New("SESSION_STORAGE=redis needs REDIS_URL")
		}
		return redis.NewStorage(appConfig.RedisURL, redis.DefaultPrefix)
	case "s3":
		if bucket == nil {
			return nil, errors.New("SESSION_STORAGE=s3 needs AWS_BUCKET")
		}
		return bucket.SessionStorage(), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORAGE %q", appConfig.SessionStorage)
	}
}

func gracefulShutdown(app *fiber.App, stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	stop()

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
