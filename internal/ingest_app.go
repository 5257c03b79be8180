package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	postgres_adapter "github.com/laraAkg/immoscout-project/internal/adapters/postgres"
	rabbitmq_adapter "github.com/laraAkg/immoscout-project/internal/adapters/rabbitmq"
	"github.com/laraAkg/immoscout-project/internal/configs"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/usecase"
	"github.com/laraAkg/immoscout-project/pkg/postgres"
)

// IngestApp - сервис приема снапшотов объявлений от скрапера.
type IngestApp struct {
	config   *configs.AppConfig
	dbPool   *pgxpool.Pool
	listener port.EventListenerPort

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewIngestApp собирает зависимости сервиса приема снапшотов.
func NewIngestApp() (*IngestApp, error) {
	appConfig, err := configs.LoadConfig(configs.RequireDatabase, configs.RequireRabbitMQ)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLoggers(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "ingest_app"})

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL:    appConfig.Database.URL,
		ConnectTimeout: appConfig.Database.ConnectTimeout,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	listingStore := postgres_adapter.NewListingStoreAdapter(dbPool)
	ingestUC := usecase.NewIngestSnapshotUseCase(listingStore)

	listener, err := rabbitmq_adapter.NewListingsConsumerAdapter(appConfig.RabbitMQ.URL, ingestUC, baseLogger)
	if err != nil {
		appLogger.Error("Failed to create listings consumer", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listings consumer: %w", err)
	}
	appLogger.Info("All adapters initialized.", nil)

	return &IngestApp{
		config:       appConfig,
		dbPool:       dbPool,
		listener:     listener,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run запускает потребителя и управляет жизненным циклом сервиса.
func (a *IngestApp) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.listener != nil {
			if err := a.listener.Close(); err != nil {
				a.logger.Error("Error closing listings consumer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	listenerErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting listings snapshot consumer...", nil)
		if err := a.listener.Start(appCtx); err != nil {
			listenerErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or consumer error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-listenerErrors:
		a.logger.Error("Listings consumer failed, shutting down", err, nil)
	}

	cancelApp()

	return nil
}
