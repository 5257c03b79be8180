package port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// ListingStorePort — контракт хранилища сырых объявлений.
// Хранилище работает по принципу полного снапшота: каждый цикл инжеста
// полностью заменяет содержимое, "текущие" объявления = последний снапшот.
type ListingStorePort interface {
	// ResetAndLoad удаляет все прежние записи и вставляет новый снапшот.
	// Удаление и вставка выполняются в одной транзакции: читатель не может
	// увидеть частично загруженный снапшот.
	ResetAndLoad(ctx context.Context, records []domain.RawListing) (*domain.SnapshotStats, error)

	// FetchAll возвращает все записи текущего снапшота, порядок не гарантируется.
	FetchAll(ctx context.Context) ([]domain.RawListing, error)
}
