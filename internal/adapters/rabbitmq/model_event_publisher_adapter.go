package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contracts"
	"github.com/laraAkg/immoscout-project/pkg/rabbitmq"
)

// ModelEventPublisherAdapter публикует событие о загрузке нового артефакта.
type ModelEventPublisherAdapter struct {
	publisher *rabbitmq.Publisher
	now       func() time.Time
}

type modelUploadedEvent struct {
	VersionTag string `json:"version_tag"`
	UploadedAt string `json:"uploaded_at"`
}

// NewModelEventPublisherAdapter создает адаптер поверх общего паблишера.
func NewModelEventPublisherAdapter(publisher *rabbitmq.Publisher) *ModelEventPublisherAdapter {
	return &ModelEventPublisherAdapter{publisher: publisher, now: time.Now}
}

// ModelUploaded публикует событие model.uploaded, предварительно проверив его по схеме.
func (a *ModelEventPublisherAdapter) ModelUploaded(ctx context.Context, versionTag string) error {
	event := modelUploadedEvent{
		VersionTag: versionTag,
		UploadedAt: a.now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal model.uploaded event: %w", err)
	}

	// Не выпускаем наружу событие, не соответствующее контракту
	if err := contracts.ValidateEvent("ModelUploadedEvent", "1.0.0", body); err != nil {
		return fmt.Errorf("model.uploaded event failed contract validation: %w", err)
	}

	if err := a.publisher.Publish(ctx, constants.RoutingKeyModelUploaded, body); err != nil {
		return fmt.Errorf("failed to publish model.uploaded event: %w", err)
	}
	return nil
}
