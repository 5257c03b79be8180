package regression

import (
	"fmt"
	"math/rand"

	"github.com/laraAkg/immoscout-project/internal/core/domain"
)

// ForestModel - случайный лес: усреднение деревьев, обученных на
// бутстрэп-выборках со случайным подбором признаков.
type ForestModel struct {
	Trees []*treeNode `json:"trees"`
}

func (m *ForestModel) Predict(x []float64) float64 {
	var sum float64
	for _, t := range m.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(m.Trees))
}

func fitRandomForest(x [][]float64, y []float64, cfg Config) (domain.Estimator, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("random forest: empty training set")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	p := len(x[0])
	maxFeatures := p / 3
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	model := &ForestModel{Trees: make([]*treeNode, 0, cfg.NumTrees)}
	for t := 0; t < cfg.NumTrees; t++ {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = rng.Intn(len(x))
		}

		builder := &treeBuilder{
			x:           x,
			y:           y,
			maxDepth:    cfg.ForestMaxDepth,
			minLeaf:     cfg.MinLeafSamples,
			maxFeatures: maxFeatures,
			rng:         rng,
		}
		model.Trees = append(model.Trees, builder.build(sample, 0))
	}

	return model, nil
}
