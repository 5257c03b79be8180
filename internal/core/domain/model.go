package domain

import "time"

// EstimatorKind - вид регрессора-кандидата.
type EstimatorKind string

const (
	KindRandomForest     EstimatorKind = "random_forest"
	KindXGBoost          EstimatorKind = "xgboost"
	KindGradientBoosting EstimatorKind = "gradient_boosting"
	KindLinearRegression EstimatorKind = "linear_regression"
)

// ModelMetrics - метрики качества на отложенной выборке.
type ModelMetrics struct {
	MAE  float64 `json:"mae"`
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Estimator - единый контракт обученного регрессора.
// Вектор признаков должен соответствовать FeatureSchema модели.
type Estimator interface {
	Predict(features []float64) float64
}

// TrainedModel - выбранная модель со схемой и метриками.
// После сериализации модель не мутирует.
type TrainedModel struct {
	Kind      EstimatorKind
	Schema    FeatureSchema
	Metrics   ModelMetrics
	Estimator Estimator
	TrainedAt time.Time
	// Version присваивается при выгрузке/загрузке артефакта.
	Version string
}

// CandidateReport - результат одного кандидата для таблицы сравнения.
type CandidateReport struct {
	Kind    EstimatorKind `json:"estimator_kind"`
	Metrics ModelMetrics  `json:"metrics"`
	// Err не пуст, если кандидат не обучился и был исключен из сравнения.
	Err string `json:"error,omitempty"`
}

// TrainingReport - итог одного запуска пайплайна обучения.
type TrainingReport struct {
	Winner     EstimatorKind     `json:"winner"`
	Version    string            `json:"version"`
	Metrics    ModelMetrics      `json:"metrics"`
	Candidates []CandidateReport `json:"candidates"`
	Features   FeatureBuildStats `json:"feature_stats"`
}

// ModelInfo - срез состояния сервинга для наблюдаемости.
type ModelInfo struct {
	State        string         `json:"state"`
	Kind         EstimatorKind  `json:"estimator_kind,omitempty"`
	Version      string         `json:"version,omitempty"`
	Metrics      *ModelMetrics  `json:"metrics,omitempty"`
	TrainedAt    *time.Time     `json:"trained_at,omitempty"`
	FeatureCount int            `json:"feature_count,omitempty"`
}
