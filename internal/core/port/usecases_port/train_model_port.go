package usecases_port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

type TrainModelUseCase interface {
	Execute(ctx context.Context) (*domain.TrainingReport, error)
}
