package regression

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// Config - гиперпараметры обучения. Значения по умолчанию повторяют
// исторические запуски: 100 деревьев, сплит 80/20, seed 42.
type Config struct {
	Seed      int64
	TestRatio float64

	NumTrees       int
	ForestMaxDepth int
	BoostingDepth  int
	LearningRate   float64
	MinLeafSamples int
	Lambda         float64 // L2 весов листьев xgboost-кандидата
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		TestRatio:      0.2,
		NumTrees:       100,
		ForestMaxDepth: 12,
		BoostingDepth:  3,
		LearningRate:   0.1,
		MinLeafSamples: 2,
		Lambda:         1,
	}
}

type fitFunc func(x [][]float64, y []float64, cfg Config) (domain.Estimator, error)

// KindPriority - порядок кандидатов; он же служит последним критерием
// при равенстве MAE и RMSE, чтобы выбор был строго детерминирован.
var KindPriority = []domain.EstimatorKind{
	domain.KindRandomForest,
	domain.KindXGBoost,
	domain.KindGradientBoosting,
	domain.KindLinearRegression,
}

var fitters = map[domain.EstimatorKind]fitFunc{
	domain.KindRandomForest:     fitRandomForest,
	domain.KindXGBoost:          fitXGBoost,
	domain.KindGradientBoosting: fitGradientBoosting,
	domain.KindLinearRegression: fitLinearRegression,
}

// Train обучает всех кандидатов на одном и том же train-сплите, считает
// метрики на тестовом и выбирает победителя: минимальный MAE, при равенстве
// минимальный RMSE, дальше порядок KindPriority. Кандидат, упавший на
// обучении, исключается из сравнения; если упали все - ErrTrainingFailed.
func Train(m *domain.FeatureMatrix, cfg Config) (*domain.TrainedModel, []domain.CandidateReport, error) {
	trainX, trainY, testX, testY := split(m, cfg)

	var (
		reports  []domain.CandidateReport
		best     *domain.TrainedModel
		failures []string
	)

	for _, kind := range KindPriority {
		est, err := fitters[kind](trainX, trainY, cfg)
		if err != nil {
			reports = append(reports, domain.CandidateReport{Kind: kind, Err: err.Error()})
			failures = append(failures, fmt.Sprintf("%s: %v", kind, err))
			continue
		}

		metrics := Evaluate(est, testX, testY)
		reports = append(reports, domain.CandidateReport{Kind: kind, Metrics: metrics})

		if best == nil || beats(metrics, best.Metrics) {
			best = &domain.TrainedModel{
				Kind:      kind,
				Schema:    m.Schema,
				Metrics:   metrics,
				Estimator: est,
				TrainedAt: time.Now().UTC(),
			}
		}
	}

	if best == nil {
		return nil, reports, fmt.Errorf("%w: %s", domain.ErrTrainingFailed, strings.Join(failures, "; "))
	}
	return best, reports, nil
}

// beats сравнивает кандидата с текущим лучшим. Кандидаты перебираются
// в порядке приоритета, поэтому при полном равенстве остается ранний.
func beats(candidate, best domain.ModelMetrics) bool {
	if candidate.MAE != best.MAE {
		return candidate.MAE < best.MAE
	}
	return candidate.RMSE < best.RMSE
}

// split детерминированно перемешивает индексы и отделяет тестовую выборку.
func split(m *domain.FeatureMatrix, cfg Config) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	n := len(m.X)
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)

	testSize := int(math.Round(cfg.TestRatio * float64(n)))
	if testSize < 1 {
		testSize = 1
	}
	if testSize >= n {
		testSize = n - 1
	}

	for pos, i := range perm {
		if pos < testSize {
			testX = append(testX, m.X[i])
			testY = append(testY, m.Y[i])
		} else {
			trainX = append(trainX, m.X[i])
			trainY = append(trainY, m.Y[i])
		}
	}
	return trainX, trainY, testX, testY
}
