package regression

import (
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"gonum.org/v1/gonum/mat"
)

// ridgeSqrt - корень небольшой L2-добавки к задаче наименьших квадратов.
// One-hot колонки в сумме дают колонку интерсепта, без регуляризации
// матрица вырождена и решение не единственно.
const ridgeSqrt = 1e-3

// LinearModel - линейная регрессия: intercept + w*x.
type LinearModel struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

func (m *LinearModel) Predict(x []float64) float64 {
	sum := m.Intercept
	for i, w := range m.Weights {
		if i < len(x) {
			sum += w * x[i]
		}
	}
	return sum
}

// fitLinearRegression решает задачу наименьших квадратов через QR-разложение
// расширенной матрицы [A; sqrt(eps)*I] - регуляризованная система всегда
// полного ранга, решение детерминировано.
func fitLinearRegression(x [][]float64, y []float64, cfg Config) (domain.Estimator, error) {
	n := len(x)
	if n == 0 {
		return nil, fmt.Errorf("linear regression: empty training set")
	}
	p := len(x[0])
	cols := p + 1 // колонка интерсепта + признаки

	a := mat.NewDense(n+cols, cols, nil)
	b := mat.NewVecDense(n+cols, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			a.Set(i, j+1, x[i][j])
		}
		b.SetVec(i, y[i])
	}
	// Ридж-строки: sqrt(eps) на диагонали, нули в правой части
	for j := 0; j < cols; j++ {
		a.Set(n+j, j, ridgeSqrt)
	}

	var qr mat.QR
	qr.Factorize(a)

	var solution mat.VecDense
	if err := qr.SolveVecTo(&solution, false, b); err != nil {
		return nil, fmt.Errorf("linear regression: least squares solve failed: %w", err)
	}

	model := &LinearModel{
		Intercept: solution.AtVec(0),
		Weights:   make([]float64, p),
	}
	for j := 0; j < p; j++ {
		model.Weights[j] = solution.AtVec(j + 1)
	}
	return model, nil
}
