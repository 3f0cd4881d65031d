package scoring

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// node is a CART regression node. A node without children is a leaf.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
}

func (n *node) leaf() bool { return n.left == nil || n.right == nil }

func (n *node) predict(x []float64) float64 {
	cur := n
	for !cur.leaf() {
		if x[cur.feature] <= cur.threshold {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur.value
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int
}

type treeBuilder struct {
	x      *mat.Dense
	y      []float64
	params treeParams
	rng    *rand.Rand
}

type split struct {
	feature   int
	threshold float64
	sse       float64
	left      []int
	right     []int
}

func (b *treeBuilder) build(idx []int, depth int) *node {
	ys := make([]float64, len(idx))
	for i, r := range idx {
		ys[i] = b.y[r]
	}
	n := &node{value: stat.Mean(ys, nil)}

	if len(idx) < b.params.minSamplesSplit {
		return n
	}
	if b.params.maxDepth > 0 && depth >= b.params.maxDepth {
		return n
	}
	if constant(ys) {
		return n
	}

	_, cols := b.x.Dims()
	candidates := b.rng.Perm(cols)[:b.params.maxFeatures]
	best, ok := b.bestSplit(idx, candidates)
	if !ok && b.params.maxFeatures < cols {
		all := make([]int, cols)
		for i := range all {
			all[i] = i
		}
		best, ok = b.bestSplit(idx, all)
	}
	if !ok {
		return n
	}

	n.feature = best.feature
	n.threshold = best.threshold
	n.left = b.build(best.left, depth+1)
	n.right = b.build(best.right, depth+1)
	return n
}

// bestSplit scans each candidate column in sorted order and keeps the
// threshold with the lowest summed squared error across both sides.
func (b *treeBuilder) bestSplit(idx []int, features []int) (split, bool) {
	best := split{sse: math.Inf(1)}
	found := false

	sorted := make([]int, len(idx))
	for _, f := range features {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x.At(sorted[i], f) < b.x.At(sorted[j], f)
		})

		var totalSum, totalSq float64
		for _, r := range sorted {
			totalSum += b.y[r]
			totalSq += b.y[r] * b.y[r]
		}

		var leftSum, leftSq float64
		n := float64(len(sorted))
		for i := 1; i < len(sorted); i++ {
			yv := b.y[sorted[i-1]]
			leftSum += yv
			leftSq += yv * yv

			lo := b.x.At(sorted[i-1], f)
			hi := b.x.At(sorted[i], f)
			if lo == hi {
				continue
			}

			nl := float64(i)
			nr := n - nl
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if sse < best.sse {
				best.sse = sse
				best.feature = f
				best.threshold = (lo + hi) / 2
				found = true
			}
		}
	}
	if !found {
		return best, false
	}

	for _, r := range idx {
		if b.x.At(r, best.feature) <= best.threshold {
			best.left = append(best.left, r)
		} else {
			best.right = append(best.right, r)
		}
	}
	return best, true
}

func constant(ys []float64) bool {
	for _, v := range ys[1:] {
		if v != ys[0] {
			return false
		}
	}
	return true
}

// growTree fits one tree on a bootstrap resample of the rows of x.
func growTree(x *mat.Dense, y []float64, params treeParams, rng *rand.Rand) *node {
	rows, _ := x.Dims()
	idx := make([]int, rows)
	for i := range idx {
		idx[i] = rng.IntN(rows)
	}
	b := &treeBuilder{x: x, y: y, params: params, rng: rng}
	return b.build(idx, 0)
}
