package usecases_port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

type GetPostalCodesUseCase interface {
	GetPostalCodes(ctx context.Context) []domain.PostalEntry
}
