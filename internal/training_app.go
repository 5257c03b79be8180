package internal

import (
	"context"
	"fmt"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laraAkg/immoscout-project/internal/adapters/azureblob"
	postgres_adapter "github.com/laraAkg/immoscout-project/internal/adapters/postgres"
	rabbitmq_adapter "github.com/laraAkg/immoscout-project/internal/adapters/rabbitmq"
	"github.com/laraAkg/immoscout-project/internal/configs"
	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/regression"
	"github.com/laraAkg/immoscout-project/internal/core/usecase"
	"github.com/laraAkg/immoscout-project/pkg/postgres"
	"github.com/laraAkg/immoscout-project/pkg/rabbitmq"
)

// TrainingApp - батч-пайплайн обучения. Запускается, обучает, выгружает
// артефакт, публикует событие и завершается.
type TrainingApp struct {
	config  *configs.AppConfig
	dbPool  *pgxpool.Pool
	trainUC *usecase.TrainModelUseCase

	publisher    *rabbitmq.Publisher
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewTrainingApp собирает все зависимости пайплайна обучения.
func NewTrainingApp() (*TrainingApp, error) {
	appConfig, err := configs.LoadConfig(configs.RequireDatabase, configs.RequireBlob, configs.RequireRabbitMQ)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLoggers(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "training_app"})

	// Инициализация низкоуровневых зависимостей
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

	registry, err := azureblob.NewModelRegistryAdapter(context.Background(), azureblob.Config{
		ConnectionString: appConfig.Blob.ConnectionString,
		Container:        appConfig.Blob.Container,
		DownloadRetries:  appConfig.Blob.DownloadRetries,
		RetryBackoff:     appConfig.Blob.RetryBackoff,
	})
	if err != nil {
		appLogger.Error("Failed to initialize model registry", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize model registry: %w", err)
	}

	publisher, err := rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
		URL:             appConfig.RabbitMQ.URL,
		ExchangeName:    constants.ExchangeName,
		ExchangeType:    constants.ExchangeType,
		DurableExchange: true,
		DeclareExchange: true,
		Logger:          rabbitmq_adapter.NewLoggerBridge(baseLogger),
	})
	if err != nil {
		appLogger.Error("Failed to connect to RabbitMQ", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	eventPublisher := rabbitmq_adapter.NewModelEventPublisherAdapter(publisher)
	appLogger.Info("All persistence and messaging adapters initialized.", nil)

	trainCfg := regression.DefaultConfig()
	trainCfg.Seed = appConfig.Training.Seed
	trainCfg.TestRatio = appConfig.Training.TestRatio

	trainUC := usecase.NewTrainModelUseCase(listingStore, registry, eventPublisher, trainCfg, appConfig.Training.MinRows)

	return &TrainingApp{
		config:       appConfig,
		dbPool:       dbPool,
		trainUC:      trainUC,
		publisher:    publisher,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run выполняет один прогон пайплайна и освобождает ресурсы.
func (a *TrainingApp) Run() error {
	defer func() {
		if a.publisher != nil {
			if err := a.publisher.Close(); err != nil {
				a.logger.Error("Error closing RabbitMQ publisher", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}
		a.logger.Info("Training pipeline shut down.", nil)
		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	ctx := contextkeys.ContextWithLogger(context.Background(), a.logger)

	a.logger.Info("Training pipeline starting...", nil)
	report, err := a.trainUC.Execute(ctx)
	if err != nil {
		a.logger.Error("Training pipeline failed", err, nil)
		return err
	}

	a.logger.Info("Training pipeline finished", port.Fields{
		"winner":  report.Winner,
		"version": report.Version,
		"mae":     report.Metrics.MAE,
		"rmse":    report.Metrics.RMSE,
	})
	return nil
}
