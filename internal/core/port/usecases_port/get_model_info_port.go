package usecases_port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

type GetModelInfoUseCase interface {
	GetModelInfo(ctx context.Context) *domain.ModelInfo
}
