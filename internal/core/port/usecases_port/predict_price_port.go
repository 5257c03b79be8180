package usecases_port

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

type PredictPriceUseCase interface {
	Predict(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResponse, error)
}
