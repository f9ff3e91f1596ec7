package main

import (
	"catalogconsole/infra/postgres"
	"catalogconsole/infra/rabbitmq"
	"catalogconsole/internal/consumers"
	"catalogconsole/pkg/config"
	"catalogconsole/pkg/events"
	"catalogconsole/pkg/logger"
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const activityQueue = "catalog.activity.all.v1"

func main() {
	appConfig := config.Read()

	log := logger.Init(appConfig.LogLevel, appConfig.LogFormat)
	defer log.Sync()

	zap.L().Info("Catalog activity worker starting...",
		zap.String("serviceName", appConfig.ServiceName),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for the activity worker")
	}
	if !appConfig.ActivityLogEnabled() {
		zap.L().Fatal("POSTGRES_HOST and POSTGRES_DATABASE are required for the activity worker")
	}

	repository, err := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	if err != nil {
		zap.L().Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer repository.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := repository.EnsureSchema(ctx); err != nil {
		zap.L().Fatal("Failed to create activity table", zap.Error(err))
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:      events.CatalogExchange,
		QueueName:     activityQueue,
		RoutingKeys:   []string{"category.*.v1", "product.*.v1"},
		ServiceName:   appConfig.ServiceName + "-worker",
		PrefetchCount: 10,
	})
	if err != nil {
		zap.L().Fatal("Failed to create activity consumer", zap.Error(err))
	}
	defer consumer.Close()

	handler := consumers.NewActivityEventHandler(repository)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("Activity consumer stopped", zap.Error(err))
			cancel()
		}
	}()

	go monitorPool(ctx, repository)

	zap.L().Info("Activity worker started. Waiting for events...",
		zap.String("exchange", events.CatalogExchange),
		zap.String("queue", activityQueue),
	)

	<-ctx.Done()
	zap.L().Info("Shutdown signal received, stopping activity worker...")
	<-done

	zap.L().Info("Activity worker stopped gracefully")
}

func monitorPool(ctx context.Context, repository *postgres.PgRepository) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			zap.L().Debug("Connection pool stats", zap.Any("stats", repository.GetPoolStats()))
		}
	}
}
