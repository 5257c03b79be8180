package regression

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// artifactEnvelope - сериализованная форма TrainedModel: один JSON-артефакт
// с видом регрессора, схемой признаков и метриками. Конкретный тип
// регрессора восстанавливается по тегу estimator_kind.
type artifactEnvelope struct {
	Kind      domain.EstimatorKind `json:"estimator_kind"`
	Schema    domain.FeatureSchema `json:"feature_schema"`
	Metrics   domain.ModelMetrics  `json:"metrics"`
	TrainedAt time.Time            `json:"trained_at"`
	Estimator json.RawMessage      `json:"estimator"`
}

// EncodeArtifact сериализует модель в байты артефакта.
func EncodeArtifact(m *domain.TrainedModel) ([]byte, error) {
	estimatorJSON, err := json.Marshal(m.Estimator)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal estimator: %w", err)
	}

	data, err := json.Marshal(artifactEnvelope{
		Kind:      m.Kind,
		Schema:    m.Schema,
		Metrics:   m.Metrics,
		TrainedAt: m.TrainedAt,
		Estimator: estimatorJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model artifact: %w", err)
	}
	return data, nil
}

// DecodeArtifact восстанавливает модель из байтов артефакта.
func DecodeArtifact(data []byte) (*domain.TrainedModel, error) {
	var envelope artifactEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model artifact: %w", err)
	}

	var estimator domain.Estimator
	switch envelope.Kind {
	case domain.KindRandomForest:
		estimator = &ForestModel{}
	case domain.KindXGBoost:
		estimator = &XGBoostModel{}
	case domain.KindGradientBoosting:
		estimator = &BoostingModel{}
	case domain.KindLinearRegression:
		estimator = &LinearModel{}
	default:
		return nil, fmt.Errorf("unknown estimator kind %q in artifact", envelope.Kind)
	}

	if err := json.Unmarshal(envelope.Estimator, estimator); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s estimator: %w", envelope.Kind, err)
	}

	return &domain.TrainedModel{
		Kind:      envelope.Kind,
		Schema:    envelope.Schema,
		Metrics:   envelope.Metrics,
		Estimator: estimator,
		TrainedAt: envelope.TrainedAt,
	}, nil
}
