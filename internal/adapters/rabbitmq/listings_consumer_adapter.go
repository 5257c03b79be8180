package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/contracts"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/port/usecases_port"
	"github.com/laraAkg/immoscout-project/pkg/rabbitmq"
)

// ListingsConsumerAdapter слушает снапшоты объявлений от скрапера
// и передает их в use case загрузки.
type ListingsConsumerAdapter struct {
	consumer *rabbitmq.Consumer
	ingest   usecases_port.IngestSnapshotUseCase
	logger   port.LoggerPort
}

var _ port.EventListenerPort = (*ListingsConsumerAdapter)(nil)

type scrapedListingDTO struct {
	Rooms      string            `json:"rooms"`
	Size       string            `json:"size"`
	Price      string            `json:"price"`
	Location   string            `json:"location"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type listingsSnapshotEvent struct {
	SnapshotID string              `json:"snapshot_id"`
	ScrapedAt  string              `json:"scraped_at"`
	Source     string              `json:"source,omitempty"`
	Listings   []scrapedListingDTO `json:"listings"`
}

// NewListingsConsumerAdapter создает потребителя очереди снапшотов.
func NewListingsConsumerAdapter(url string, ingest usecases_port.IngestSnapshotUseCase, logger port.LoggerPort) (*ListingsConsumerAdapter, error) {
	consumer, err := rabbitmq.NewConsumer(rabbitmq.ConsumerConfig{
		URL:             url,
		QueueName:       constants.QueueScrapedListings,
		DurableQueue:    true,
		DeclareQueue:    true,
		ExchangeName:    constants.ExchangeName,
		ExchangeType:    constants.ExchangeType,
		DeclareExchange: true,
		RoutingKey:      constants.RoutingKeyScrapedListings,
		PrefetchCount:   1,
		ConsumerTag:     "listing-ingest-service",
		Logger:          NewLoggerBridge(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create listings consumer: %w", err)
	}

	return &ListingsConsumerAdapter{
		consumer: consumer,
		ingest:   ingest,
		logger:   logger,
	}, nil
}

// Start блокирует и обрабатывает снапшоты до отмены контекста.
func (a *ListingsConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.Start(ctx, a.handleMessage)
}

func (a *ListingsConsumerAdapter) handleMessage(ctx context.Context, body []byte) error {
	traceID := uuid.New().String()
	logger := a.logger.WithFields(port.Fields{"trace_id": traceID})
	msgCtx := contextkeys.ContextWithLogger(ctx, logger)
	msgCtx = contextkeys.ContextWithTraceID(msgCtx, traceID)

	if err := contracts.ValidateEvent("ListingsSnapshotEvent", "1.0.0", body); err != nil {
		return fmt.Errorf("snapshot event failed contract validation: %w", err)
	}

	var event listingsSnapshotEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode snapshot event: %w", err)
	}

	logger.Info("Received listings snapshot", port.Fields{
		"snapshot_id": event.SnapshotID,
		"source":      event.Source,
		"listings":    len(event.Listings),
	})

	scraped := make([]domain.ScrapedListing, len(event.Listings))
	for i, dto := range event.Listings {
		scraped[i] = domain.ScrapedListing{
			Rooms:      dto.Rooms,
			Size:       dto.Size,
			Price:      dto.Price,
			Location:   dto.Location,
			Attributes: dto.Attributes,
		}
	}

	if _, err := a.ingest.Ingest(msgCtx, scraped); err != nil {
		return fmt.Errorf("failed to ingest snapshot %s: %w", event.SnapshotID, err)
	}
	return nil
}

// Close освобождает соединение с брокером.
func (a *ListingsConsumerAdapter) Close() error {
	return a.consumer.Close()
}
