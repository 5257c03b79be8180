package regression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFitLinearRegressionRecoversCoefficients(t *testing.T) {
	// y = 100 + 300*x1 + 15*x2, без шума
	var x [][]float64
	var y []float64
	for i := 0; i < 30; i++ {
		x1 := float64(1 + i%5)
		x2 := float64(40 + i*2)
		x = append(x, []float64{x1, x2})
		y = append(y, 100+300*x1+15*x2)
	}

	est, err := fitLinearRegression(x, y, DefaultConfig())
	require.NoError(t, err)

	model, ok := est.(*LinearModel)
	require.True(t, ok)
	require.InDelta(t, 100, model.Intercept, 1.0)
	require.InDelta(t, 300, model.Weights[0], 0.5)
	require.InDelta(t, 15, model.Weights[1], 0.5)

	require.InDelta(t, 100+300*3+15*80, est.Predict([]float64{3, 80}), 2.0)
}

func TestFitLinearRegressionHandlesCollinearOneHot(t *testing.T) {
	// Две one-hot колонки в сумме дают колонку интерсепта.
	// Без регуляризации решение не единственно, fit не должен падать.
	var x [][]float64
	var y []float64
	for i := 0; i < 20; i++ {
		group := float64(i % 2)
		x = append(x, []float64{float64(2 + i%3), 1 - group, group})
		y = append(y, 1000+500*float64(2+i%3)+800*group)
	}

	est, err := fitLinearRegression(x, y, DefaultConfig())
	require.NoError(t, err)

	// Разница предсказаний между группами при прочих равных ~800
	diff := est.Predict([]float64{3, 0, 1}) - est.Predict([]float64{3, 1, 0})
	require.InDelta(t, 800, diff, 5.0)
}

func TestFitLinearRegressionEmptySet(t *testing.T) {
	_, err := fitLinearRegression(nil, nil, DefaultConfig())
	require.Error(t, err)
}

func TestEvaluatePerfectFit(t *testing.T) {
	est := &LinearModel{Intercept: 0, Weights: []float64{2}}
	x := [][]float64{{1}, {2}, {3}}
	y := []float64{2, 4, 6}

	metrics := Evaluate(est, x, y)
	require.InDelta(t, 0, metrics.MAE, 1e-9)
	require.InDelta(t, 0, metrics.RMSE, 1e-9)
	require.InDelta(t, 1, metrics.R2, 1e-9)
}
