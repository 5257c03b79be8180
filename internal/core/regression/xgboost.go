package regression

import (
	"fmt"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
	"gonum.org/v1/gonum/stat"
)

// XGBoostModel - бустинг в духе XGBoost: сплиты по gain второго порядка
// и L2-регуляризация весов листьев. Для квадратичной функции потерь
// градиент = pred - y, гессиан = 1 на каждый объект.
type XGBoostModel struct {
	Base         float64     `json:"base"`
	LearningRate float64     `json:"learning_rate"`
	Lambda       float64     `json:"lambda"`
	Trees        []*treeNode `json:"trees"`
}

func (m *XGBoostModel) Predict(x []float64) float64 {
	sum := m.Base
	for _, t := range m.Trees {
		sum += m.LearningRate * t.predict(x)
	}
	return sum
}

// xgbBuilder строит дерево по статистикам градиента.
// Вес листа = G/(n + lambda), где G - сумма остатков листа.
type xgbBuilder struct {
	x        [][]float64
	grad     []float64
	maxDepth int
	minLeaf  int
	lambda   float64
}

func (b *xgbBuilder) build(indices []int, depth int) *treeNode {
	if depth >= b.maxDepth || len(indices) < 2*b.minLeaf {
		return b.leaf(indices)
	}

	feature, threshold, ok := b.bestSplit(indices)
	if !ok {
		return b.leaf(indices)
	}

	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *xgbBuilder) leaf(indices []int) *treeNode {
	var g float64
	for _, i := range indices {
		g += b.grad[i]
	}
	return &treeNode{Leaf: true, Value: g / (float64(len(indices)) + b.lambda)}
}

func (b *xgbBuilder) gain(g, h float64) float64 {
	return g * g / (h + b.lambda)
}

func (b *xgbBuilder) bestSplit(indices []int) (feature int, threshold float64, ok bool) {
	var totalG float64
	for _, i := range indices {
		totalG += b.grad[i]
	}
	totalH := float64(len(indices))
	parentGain := b.gain(totalG, totalH)

	sorted := make([]int, len(indices))
	bestGain := 0.0
	for f := 0; f < len(b.x[0]); f++ {
		copy(sorted, indices)
		sortIndicesByFeature(sorted, b.x, f)

		var leftG float64
		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			leftG += b.grad[i]

			cur, next := b.x[i][f], b.x[sorted[pos+1]][f]
			if cur == next {
				continue
			}

			leftH := float64(pos + 1)
			rightH := totalH - leftH
			if int(leftH) < b.minLeaf || int(rightH) < b.minLeaf {
				continue
			}

			gain := b.gain(leftG, leftH) + b.gain(totalG-leftG, rightH) - parentGain
			if gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func fitXGBoost(x [][]float64, y []float64, cfg Config) (domain.Estimator, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("xgboost: empty training set")
	}

	model := &XGBoostModel{
		Base:         stat.Mean(y, nil),
		LearningRate: cfg.LearningRate,
		Lambda:       cfg.Lambda,
		Trees:        make([]*treeNode, 0, cfg.NumTrees),
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = model.Base
	}

	grad := make([]float64, len(y))
	indices := make([]int, len(y))
	for i := range indices {
		indices[i] = i
	}

	for t := 0; t < cfg.NumTrees; t++ {
		for i := range y {
			grad[i] = y[i] - pred[i]
		}

		builder := &xgbBuilder{
			x:        x,
			grad:     grad,
			maxDepth: cfg.BoostingDepth,
			minLeaf:  cfg.MinLeafSamples,
			lambda:   cfg.Lambda,
		}
		tree := builder.build(indices, 0)
		model.Trees = append(model.Trees, tree)

		for i := range pred {
			pred[i] += cfg.LearningRate * tree.predict(x[i])
		}
	}

	return model, nil
}
