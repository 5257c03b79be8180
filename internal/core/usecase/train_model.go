package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/laraAkg/immoscout-project/internal/constants"
	"github.com/laraAkg/immoscout-project/internal/contextkeys"
	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"github.com/laraAkg/immoscout-project/internal/core/port"
	"github.com/laraAkg/immoscout-project/internal/core/regression"
)

// TrainModelUseCase - полный запуск пайплайна обучения: снапшот из
// хранилища -> матрица признаков -> обучение и выбор кандидата ->
// выгрузка версионированного артефакта -> событие о новой версии.
type TrainModelUseCase struct {
	store     port.ListingStorePort
	registry  port.ModelRegistryPort
	publisher port.ModelEventPublisherPort

	trainCfg regression.Config
	minRows  int
	// now вынесено для детерминированных тестов версионирования
	now func() time.Time
}

// NewTrainModelUseCase создает новый экземпляр use case.
func NewTrainModelUseCase(store port.ListingStorePort, registry port.ModelRegistryPort,
	publisher port.ModelEventPublisherPort, trainCfg regression.Config, minRows int) *TrainModelUseCase {
	return &TrainModelUseCase{
		store:     store,
		registry:  registry,
		publisher: publisher,
		trainCfg:  trainCfg,
		minRows:   minRows,
		now:       time.Now,
	}
}

// Execute выполняет один батч-запуск. Любая ошибка до успешной выгрузки
// фатальна для запуска: устаревшая или полуобученная модель не должна
// молча попасть в сервинг.
func (uc *TrainModelUseCase) Execute(ctx context.Context) (*domain.TrainingReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "TrainModel"})
	logger.Info("Use case started: training pipeline run", nil)

	listings, err := uc.store.FetchAll(ctx)
	if err != nil {
		logger.Error("Failed to fetch listings snapshot", err, nil)
		return nil, fmt.Errorf("failed to fetch listings snapshot: %w", err)
	}
	logger.Info("Retrieved listings from store", port.Fields{"count": len(listings)})

	matrix, featureStats, err := domain.BuildFeatures(listings, uc.minRows)
	if err != nil {
		logger.Error("Feature building failed", err, port.Fields{
			"total": featureStats.Total, "dropped": featureStats.Dropped,
		})
		return nil, err
	}
	logger.Info("Feature matrix built", port.Fields{
		"rows": featureStats.Used, "dropped": featureStats.Dropped, "columns": matrix.Schema.NumFeatures(),
	})

	model, candidates, err := regression.Train(matrix, uc.trainCfg)
	for _, c := range candidates {
		if c.Err != "" {
			logger.Warn("Candidate excluded from comparison", port.Fields{"estimator": c.Kind, "error": c.Err})
			continue
		}
		logger.Info("Candidate evaluated", port.Fields{
			"estimator": c.Kind,
			"mae":       c.Metrics.MAE, "mse": c.Metrics.MSE,
			"rmse": c.Metrics.RMSE, "r2": c.Metrics.R2,
		})
	}
	if err != nil {
		logger.Error("Training failed", err, nil)
		return nil, err
	}
	logger.Info("Best model selected", port.Fields{"estimator": model.Kind, "mae": model.Metrics.MAE})

	artifact, err := regression.EncodeArtifact(model)
	if err != nil {
		logger.Error("Failed to serialize model artifact", err, nil)
		return nil, fmt.Errorf("failed to serialize model artifact: %w", err)
	}

	versionTag := uc.now().UTC().Format(constants.VersionTagLayout)
	if err := uc.registry.Upload(ctx, artifact, versionTag); err != nil {
		logger.Error("Artifact upload failed", err, port.Fields{"version": versionTag})
		return nil, fmt.Errorf("failed to upload model artifact version %s: %w", versionTag, err)
	}
	logger.Info("Model artifact uploaded", port.Fields{"version": versionTag, "size_bytes": len(artifact)})

	if uc.publisher != nil {
		if err := uc.publisher.ModelUploaded(ctx, versionTag); err != nil {
			// Логируем, но не возвращаем: артефакт уже выгружен, сервинг
			// подхватит его при следующем событии или рестарте.
			logger.Error("Failed to publish model uploaded event", err, port.Fields{"version": versionTag})
		}
	}

	logger.Info("Use case finished: training pipeline run complete", nil)
	return &domain.TrainingReport{
		Winner:     model.Kind,
		Version:    versionTag,
		Metrics:    model.Metrics,
		Candidates: candidates,
		Features:   featureStats,
	}, nil
}
