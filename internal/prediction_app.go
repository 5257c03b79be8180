package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/laraAkg/immoscout-project/internal/adapters/azureblob"
	"github.com/laraAkg/immoscout-project/internal/adapters/csvfile"
	rabbitmq_adapter "github.com/laraAkg/immoscout-project/internal/adapters/rabbitmq"
	"github.com/laraAkg/immoscout-project/internal/adapters/rest"
	"github.com/laraAkg/immoscout-project/internal/configs"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/usecase"
)

// PredictionApp - долгоживущий сервис предсказаний: REST API плюс
// слушатель событий о новых версиях модели.
type PredictionApp struct {
	config        *configs.AppConfig
	apiServer     *rest.Server
	modelListener port.EventListenerPort
	reloadUC      *usecase.ReloadModelUseCase
	holder        *usecase.ModelHolder

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewPredictionApp собирает зависимости сервиса предсказаний.
// Первая загрузка модели фатальна: без модели сервис бесполезен.
func NewPredictionApp() (*PredictionApp, error) {
	appConfig, err := configs.LoadConfig(configs.RequireBlob, configs.RequireRabbitMQ)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := buildLoggers(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "prediction_app"})
	startCtx := contextkeys.ContextWithLogger(context.Background(), appLogger)

	registry, err := azureblob.NewModelRegistryAdapter(startCtx, azureblob.Config{
		ConnectionString: appConfig.Blob.ConnectionString,
		Container:        appConfig.Blob.Container,
		DownloadRetries:  appConfig.Blob.DownloadRetries,
		RetryBackoff:     appConfig.Blob.RetryBackoff,
	})
	if err != nil {
		appLogger.Error("Failed to initialize model registry", err, nil)
		return nil, fmt.Errorf("failed to initialize model registry: %w", err)
	}

	// Справочник индексов загружается один раз при старте
	var postalSource port.PostalLookupPort = csvfile.NewPostalLookupAdapter(appConfig.PostalLookupPath)
	postalLookup, err := postalSource.Load(startCtx)
	if err != nil {
		appLogger.Error("Failed to load postal lookup", err, nil)
		return nil, fmt.Errorf("failed to load postal lookup: %w", err)
	}

	holder := usecase.NewModelHolder()
	reloadUC := usecase.NewReloadModelUseCase(registry, holder)

	// Начальная загрузка модели. Без нее сервис не стартует.
	holder.MarkLoading()
	if err := reloadUC.Reload(startCtx); err != nil {
		appLogger.Error("Initial model load failed", err, nil)
		return nil, fmt.Errorf("initial model load failed: %w", err)
	}

	predictUC := usecase.NewPredictPriceUseCase(holder)
	postalCodesUC := usecase.NewGetPostalCodesUseCase(postalLookup)
	modelInfoUC := usecase.NewGetModelInfoUseCase(holder)

	apiHandlers := rest.NewPredictionHandler(predictUC, postalCodesUC, modelInfoUC)
	apiServer := rest.NewServer(appConfig.Rest.PORT, apiHandlers, baseLogger)

	modelListener, err := rabbitmq_adapter.NewModelEventsConsumerAdapter(appConfig.RabbitMQ.URL, reloadUC, baseLogger)
	if err != nil {
		appLogger.Error("Failed to create model events listener", err, nil)
		return nil, fmt.Errorf("failed to create model events listener: %w", err)
	}
	appLogger.Info("All adapters initialized, model loaded.", nil)

	return &PredictionApp{
		config:        appConfig,
		apiServer:     apiServer,
		modelListener: modelListener,
		reloadUC:      reloadUC,
		holder:        holder,
		fluentClient:  fluentClient,
		logger:        appLogger,
	}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *PredictionApp) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.modelListener != nil {
			if err := a.modelListener.Close(); err != nil {
				a.logger.Error("Error closing model events listener", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	listenerErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting model events listener...", nil)
		if err := a.modelListener.Start(appCtx); err != nil {
			listenerErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
	case err := <-listenerErrors:
		a.logger.Error("Model events listener failed, shutting down", err, nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}
