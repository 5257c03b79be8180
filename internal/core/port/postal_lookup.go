package port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// PostalLookupPort отдает справочник "почтовый индекс -> населенный пункт".
// Справочник используется только на границе запросов (подсказки в форме),
// в кодировании признаков он не участвует.
type PostalLookupPort interface {
	Load(ctx context.Context) (domain.PostalLookup, error)
}
