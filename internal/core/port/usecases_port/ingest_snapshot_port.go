package usecases_port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

type IngestSnapshotUseCase interface {
	Ingest(ctx context.Context, scraped []domain.ScrapedListing) (*domain.SnapshotStats, error)
}
