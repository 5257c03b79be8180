package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
)

// ListingStoreAdapter хранит очищенные объявления в PostgreSQL.
// Семантика снимка: каждый прогон скрапера полностью заменяет содержимое таблицы.
type ListingStoreAdapter struct {
	pool *pgxpool.Pool
}

// NewListingStoreAdapter создает новый адаптер хранилища объявлений.
func NewListingStoreAdapter(pool *pgxpool.Pool) *ListingStoreAdapter {
	return &ListingStoreAdapter{pool: pool}
}

// ResetAndLoad атомарно заменяет все объявления новым снимком.
// DELETE и COPY выполняются в одной транзакции: читатели либо видят
// старый снимок целиком, либо новый, но никогда смесь.
func (a *ListingStoreAdapter) ResetAndLoad(ctx context.Context, listings []domain.RawListing) (*domain.SnapshotStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM raw_listings`); err != nil {
		return nil, fmt.Errorf("failed to clear raw_listings: %w", err)
	}

	rows := make([][]interface{}, 0, len(listings))
	skipped := 0
	for _, l := range listings {
		attrs, err := json.Marshal(l.RawAttributes)
		if err != nil {
			skipped++
			logger.Warn("Skipping listing with unserializable attributes", port.Fields{"postal_code": l.PostalCode})
			continue
		}
		rows = append(rows, []interface{}{
			l.Rooms, l.LivingAreaM2, l.Price, l.PostalCode, l.Locality, attrs,
		})
	}

	columns := []string{"rooms", "living_area_m2", "price", "postal_code", "locality", "raw_attributes"}

	inserted, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"raw_listings"},
		columns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to copy to raw_listings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	logger.Info("Snapshot loaded into raw_listings", port.Fields{
		"inserted": inserted,
		"skipped":  skipped,
	})

	return &domain.SnapshotStats{Inserted: int(inserted), Skipped: skipped}, nil
}

// FetchAll возвращает все объявления текущего снимка.
// Строки с ошибками сканирования пропускаются с предупреждением.
func (a *ListingStoreAdapter) FetchAll(ctx context.Context) ([]domain.RawListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	rows, err := a.pool.Query(ctx,
		`SELECT rooms, living_area_m2, price, postal_code, locality, raw_attributes FROM raw_listings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw_listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.RawListing
	skipped := 0
	for rows.Next() {
		var l domain.RawListing
		var attrs []byte
		if err := rows.Scan(&l.Rooms, &l.LivingAreaM2, &l.Price, &l.PostalCode, &l.Locality, &attrs); err != nil {
			skipped++
			logger.Warn("Skipping unreadable row in raw_listings", port.Fields{"error": err.Error()})
			continue
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &l.RawAttributes); err != nil {
				// Атрибуты не критичны для обучения, оставляем пустыми
				l.RawAttributes = nil
			}
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raw_listings: %w", err)
	}

	if skipped > 0 {
		logger.Warn("Some rows were skipped while reading the snapshot", port.Fields{"skipped": skipped})
	}

	return listings, nil
}
