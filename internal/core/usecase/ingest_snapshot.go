package usecase

import (
	"context"
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
)

// IngestSnapshotUseCase принимает полный снапшот сырых объявлений,
// очищает записи и полностью заменяет содержимое хранилища.
type IngestSnapshotUseCase struct {
	store port.ListingStorePort
}

// NewIngestSnapshotUseCase создает новый экземпляр use case.
func NewIngestSnapshotUseCase(store port.ListingStorePort) *IngestSnapshotUseCase {
	return &IngestSnapshotUseCase{store: store}
}

// Ingest очищает записи и выполняет reset-and-load. Malformed записи
// пропускаются и считаются; ошибка хранилища фатальна - частичный
// снапшот недопустим.
func (uc *IngestSnapshotUseCase) Ingest(ctx context.Context, scraped []domain.ScrapedListing) (*domain.SnapshotStats, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "IngestSnapshot",
		"received": len(scraped),
	})
	logger.Info("Use case started: ingesting listings snapshot", nil)

	records := make([]domain.RawListing, 0, len(scraped))
	skipped := 0
	for _, s := range scraped {
		record, err := domain.CleanScrapedListing(s)
		if err != nil {
			skipped++
			logger.Warn("Skipping malformed listing", port.Fields{"error": err.Error()})
			continue
		}
		records = append(records, record)
	}

	stats, err := uc.store.ResetAndLoad(ctx, records)
	if err != nil {
		logger.Error("Store failed to load snapshot", err, nil)
		return nil, fmt.Errorf("failed to load listings snapshot: %w", err)
	}
	stats.Skipped += skipped

	logger.Info("Use case finished: snapshot ingested", port.Fields{
		"inserted": stats.Inserted, "skipped": stats.Skipped,
	})
	return stats, nil
}
