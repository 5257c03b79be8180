package regression

import (
	"math/rand"
	"sort"
)

// treeNode - узел регрессионного дерева (CART). Узлы сериализуются в JSON
// как часть артефакта модели, поэтому все поля экспортируемые.
type treeNode struct {
	Leaf      bool      `json:"leaf,omitempty"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

func (n *treeNode) predict(x []float64) float64 {
	node := n
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// treeBuilder строит дерево минимизацией суммы квадратов остатков.
type treeBuilder struct {
	x [][]float64
	y []float64

	maxDepth int
	minLeaf  int
	// maxFeatures > 0 включает случайный подбор признаков на каждый сплит
	// (для случайного леса). 0 - рассматриваются все признаки.
	maxFeatures int
	rng         *rand.Rand
}

func (b *treeBuilder) build(indices []int, depth int) *treeNode {
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

func (b *treeBuilder) leaf(indices []int) *treeNode {
	var sum float64
	for _, i := range indices {
		sum += b.y[i]
	}
	return &treeNode{Leaf: true, Value: sum / float64(len(indices))}
}

// candidateFeatures возвращает признаки для перебора на одном сплите.
func (b *treeBuilder) candidateFeatures() []int {
	p := len(b.x[0])
	if b.maxFeatures <= 0 || b.maxFeatures >= p {
		features := make([]int, p)
		for i := range features {
			features[i] = i
		}
		return features
	}
	return b.rng.Perm(p)[:b.maxFeatures]
}

// bestSplit перебирает пороги по отсортированным значениям признака;
// SSE обеих половин считается через накопленные суммы за один проход.
func (b *treeBuilder) bestSplit(indices []int) (feature int, threshold float64, ok bool) {
	var (
		bestScore = -1.0
		totalSum  float64
		totalSq   float64
	)
	for _, i := range indices {
		totalSum += b.y[i]
		totalSq += b.y[i] * b.y[i]
	}
	n := float64(len(indices))
	if totalSq-totalSum*totalSum/n == 0 {
		return 0, 0, false // все цели одинаковы, делить нечего
	}

	sorted := make([]int, len(indices))
	for _, f := range b.candidateFeatures() {
		copy(sorted, indices)
		sortIndicesByFeature(sorted, b.x, f)

		var leftSum, leftSq float64
		for pos := 0; pos < len(sorted)-1; pos++ {
			i := sorted[pos]
			leftSum += b.y[i]
			leftSq += b.y[i] * b.y[i]

			cur, next := b.x[i][f], b.x[sorted[pos+1]][f]
			if cur == next {
				continue // порог между равными значениями невозможен
			}

			leftN := float64(pos + 1)
			rightN := n - leftN
			if int(leftN) < b.minLeaf || int(rightN) < b.minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			score := (leftSq - leftSum*leftSum/leftN) + (rightSq - rightSum*rightSum/rightN)

			if bestScore < 0 || score < bestScore {
				bestScore = score
				feature = f
				threshold = (cur + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// sortIndicesByFeature сортирует индексы объектов по значению признака f.
func sortIndicesByFeature(indices []int, x [][]float64, f int) {
	sort.Slice(indices, func(i, j int) bool { return x[indices[i]][f] < x[indices[j]][f] })
}
