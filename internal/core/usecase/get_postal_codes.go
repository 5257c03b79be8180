package usecase

import (
	"context"
	"sort"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// GetPostalCodesUseCase отдает справочник индексов для подсказок на форме.
// Справочник read-only после инициализации.
type GetPostalCodesUseCase struct {
	entries []domain.PostalEntry
}

// NewGetPostalCodesUseCase создает use case из загруженного справочника.
func NewGetPostalCodesUseCase(lookup domain.PostalLookup) *GetPostalCodesUseCase {
	entries := make([]domain.PostalEntry, 0, len(lookup))
	for code, locality := range lookup {
		entries = append(entries, domain.PostalEntry{PostalCode: code, Locality: locality})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PostalCode < entries[j].PostalCode })
	return &GetPostalCodesUseCase{entries: entries}
}

func (uc *GetPostalCodesUseCase) GetPostalCodes(ctx context.Context) []domain.PostalEntry {
	return uc.entries
}
