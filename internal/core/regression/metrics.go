package regression

import (
	"math"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"gonum.org/v1/gonum/stat"
)

// Evaluate считает MAE, MSE, RMSE и R2 модели на отложенной выборке.
func Evaluate(est domain.Estimator, x [][]float64, y []float64) domain.ModelMetrics {
	n := float64(len(y))
	if n == 0 {
		return domain.ModelMetrics{}
	}

	var absSum, sqSum float64
	for i := range y {
		diff := est.Predict(x[i]) - y[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}

	mean := stat.Mean(y, nil)
	var totalSq float64
	for _, v := range y {
		d := v - mean
		totalSq += d * d
	}

	metrics := domain.ModelMetrics{
		MAE:  absSum / n,
		MSE:  sqSum / n,
		RMSE: math.Sqrt(sqSum / n),
	}
	if totalSq > 0 {
		metrics.R2 = 1 - sqSum/totalSq
	}
	return metrics
}
