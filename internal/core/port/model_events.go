package port

import "context"

// ModelEventPublisherPort уведомляет внешний мир о новой версии модели.
type ModelEventPublisherPort interface {
	ModelUploaded(ctx context.Context, versionTag string) error
}
