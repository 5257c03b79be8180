package regression

import (
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"gonum.org/v1/gonum/stat"
)

// BoostingModel - градиентный бустинг над неглубокими деревьями:
// каждое дерево обучается на остатках предыдущего ансамбля.
type BoostingModel struct {
	Base         float64     `json:"base"`
	LearningRate float64     `json:"learning_rate"`
	Trees        []*treeNode `json:"trees"`
}

func (m *BoostingModel) Predict(x []float64) float64 {
	sum := m.Base
	for _, t := range m.Trees {
		sum += m.LearningRate * t.predict(x)
	}
	return sum
}

func fitGradientBoosting(x [][]float64, y []float64, cfg Config) (domain.Estimator, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("gradient boosting: empty training set")
	}

	model := &BoostingModel{
		Base:         stat.Mean(y, nil),
		LearningRate: cfg.LearningRate,
		Trees:        make([]*treeNode, 0, cfg.NumTrees),
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = model.Base
	}

	residuals := make([]float64, len(y))
	indices := make([]int, len(y))
	for i := range indices {
		indices[i] = i
	}

	for t := 0; t < cfg.NumTrees; t++ {
		for i := range y {
			residuals[i] = y[i] - pred[i]
		}

		builder := &treeBuilder{
			x:        x,
			y:        residuals,
			maxDepth: cfg.BoostingDepth,
			minLeaf:  cfg.MinLeafSamples,
		}
		tree := builder.build(indices, 0)
		model.Trees = append(model.Trees, tree)

		for i := range pred {
			pred[i] += cfg.LearningRate * tree.predict(x[i])
		}
	}

	return model, nil
}
