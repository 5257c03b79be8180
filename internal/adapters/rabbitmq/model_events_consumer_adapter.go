package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/contracts"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/port/usecases_port"
	"github.com/laraAkg/immoscout-project/pkg/rabbitmq"
)

// ModelEventsConsumerAdapter слушает события о новых артефактах модели
// и запускает горячую перезагрузку в сервисе предсказаний.
type ModelEventsConsumerAdapter struct {
	consumer *rabbitmq.Consumer
	reload   usecases_port.ReloadModelUseCase
	logger   port.LoggerPort
}

var _ port.EventListenerPort = (*ModelEventsConsumerAdapter)(nil)

// NewModelEventsConsumerAdapter создает потребителя очереди событий модели.
func NewModelEventsConsumerAdapter(url string, reload usecases_port.ReloadModelUseCase, logger port.LoggerPort) (*ModelEventsConsumerAdapter, error) {
	consumer, err := rabbitmq.NewConsumer(rabbitmq.ConsumerConfig{
		URL:             url,
		QueueName:       constants.QueueModelEvents,
		DurableQueue:    true,
		DeclareQueue:    true,
		ExchangeName:    constants.ExchangeName,
		ExchangeType:    constants.ExchangeType,
		DeclareExchange: true,
		RoutingKey:      constants.RoutingKeyModelUploaded,
		PrefetchCount:   1,
		ConsumerTag:     "prediction-service",
		Logger:          NewLoggerBridge(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model events consumer: %w", err)
	}

	return &ModelEventsConsumerAdapter{
		consumer: consumer,
		reload:   reload,
		logger:   logger,
	}, nil
}

// Start блокирует и обрабатывает события до отмены контекста.
func (a *ModelEventsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.Start(ctx, a.handleMessage)
}

func (a *ModelEventsConsumerAdapter) handleMessage(ctx context.Context, body []byte) error {
	traceID := uuid.New().String()
	logger := a.logger.WithFields(port.Fields{"trace_id": traceID})
	msgCtx := contextkeys.ContextWithLogger(ctx, logger)
	msgCtx = contextkeys.ContextWithTraceID(msgCtx, traceID)

	if err := contracts.ValidateEvent("ModelUploadedEvent", "1.0.0", body); err != nil {
		return fmt.Errorf("model.uploaded event failed contract validation: %w", err)
	}

	var event struct {
		VersionTag string `json:"version_tag"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode model.uploaded event: %w", err)
	}

	logger.Info("Received model.uploaded event, reloading model", port.Fields{
		"version_tag": event.VersionTag,
	})

	if err := a.reload.Reload(msgCtx); err != nil {
		// Сервис остается на последней рабочей модели, событие не возвращаем в очередь
		logger.Error("Model reload failed after upload event", err, port.Fields{
			"version_tag": event.VersionTag,
		})
		return nil
	}
	return nil
}

// Close освобождает соединение с брокером.
func (a *ModelEventsConsumerAdapter) Close() error {
	return a.consumer.Close()
}
