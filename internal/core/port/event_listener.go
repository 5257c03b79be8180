package port

import "context"

// EventListenerPort — контракт для входящих слушателей событий (очереди).
type EventListenerPort interface {
	// Start блокирует и обрабатывает события до отмены контекста.
	Start(ctx context.Context) error
	Close() error
}
