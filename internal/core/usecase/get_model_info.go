package usecase

import (
	"context"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// GetModelInfoUseCase - срез состояния сервинга для наблюдаемости.
type GetModelInfoUseCase struct {
	holder *ModelHolder
}

// NewGetModelInfoUseCase создает новый экземпляр use case.
func NewGetModelInfoUseCase(holder *ModelHolder) *GetModelInfoUseCase {
	return &GetModelInfoUseCase{holder: holder}
}

func (uc *GetModelInfoUseCase) GetModelInfo(ctx context.Context) *domain.ModelInfo {
	info := &domain.ModelInfo{State: uc.holder.State()}

	model, err := uc.holder.Current()
	if err != nil {
		return info
	}

	metrics := model.Metrics
	trainedAt := model.TrainedAt
	info.Kind = model.Kind
	info.Version = model.Version
	info.Metrics = &metrics
	info.TrainedAt = &trainedAt
	info.FeatureCount = model.Schema.NumFeatures()
	return info
}
