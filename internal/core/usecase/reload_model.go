package usecase

import (
	"context"
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/regression"
)

// ReloadModelUseCase загружает последний артефакт из реестра и атомарно
// подменяет текущую модель. Неудачная перезагрузка после успешного
// старта не роняет сервис: он продолжает отвечать последней рабочей
// моделью (graceful degradation).
type ReloadModelUseCase struct {
	registry port.ModelRegistryPort
	holder   *ModelHolder
}

// NewReloadModelUseCase создает новый экземпляр use case.
func NewReloadModelUseCase(registry port.ModelRegistryPort, holder *ModelHolder) *ReloadModelUseCase {
	return &ReloadModelUseCase{registry: registry, holder: holder}
}

// Reload строит новую модель в памяти целиком и только затем подменяет
// ссылку: запросы в полете видят либо старую, либо новую модель.
func (uc *ReloadModelUseCase) Reload(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ReloadModel"})
	logger.Info("Use case started: reloading model from registry", nil)

	artifact, versionTag, err := uc.registry.LoadLatest(ctx)
	if err != nil {
		uc.holder.MarkDegraded()
		logger.Error("Failed to load latest artifact, keeping current model", err, nil)
		return fmt.Errorf("failed to load latest model artifact: %w", err)
	}

	model, err := regression.DecodeArtifact(artifact)
	if err != nil {
		uc.holder.MarkDegraded()
		logger.Error("Failed to decode artifact, keeping current model", err, port.Fields{"version": versionTag})
		return fmt.Errorf("failed to decode model artifact version %s: %w", versionTag, err)
	}
	model.Version = versionTag

	uc.holder.Swap(model)
	logger.Info("Use case finished: model swapped", port.Fields{
		"version": versionTag, "estimator": model.Kind, "features": model.Schema.NumFeatures(),
	})
	return nil
}
