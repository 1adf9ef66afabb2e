package model

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	domsvc "EdgeLab/internal/domain/service"
)

// ForestConfig controls the random-forest classifier. Identical config and
// training data always reproduce the same fit: all randomness flows from
// one seeded source consumed in a fixed order.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// Forest is a bagged ensemble of depth-limited CART trees over binary
// labels. PredictProba averages leaf up-frequencies across trees.
type Forest struct {
	cfg      ForestConfig
	trees    []*node
	features int
}

type node struct {
	leaf      bool
	prob      float64
	feature   int
	threshold float64
	left      *node
	right     *node
}

// NewForest builds an unfitted forest, applying defaults for zero fields.
func NewForest(cfg ForestConfig) *Forest {
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 6
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 2
	}
	return &Forest{cfg: cfg}
}

// Fit trains the ensemble on rows and {0,1} labels.
func (f *Forest) Fit(rows [][]float64, lbs []int) error {
	if len(rows) == 0 {
		return fmt.Errorf("fit forest: empty training set")
	}
	if len(rows) != len(lbs) {
		return fmt.Errorf("fit forest: %d rows vs %d labels", len(rows), len(lbs))
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("fit forest: row %d width %d, want %d", i, len(r), width)
		}
	}
	for i, l := range lbs {
		if l != 0 && l != 1 {
			return fmt.Errorf("fit forest: label %d at row %d is not binary", l, i)
		}
	}

	f.features = width
	f.trees = make([]*node, 0, f.cfg.Trees)
	rng := rand.New(rand.NewSource(f.cfg.Seed))
	mtry := int(math.Ceil(math.Sqrt(float64(width))))

	for t := 0; t < f.cfg.Trees; t++ {
		idx := make([]int, len(rows))
		for i := range idx {
			idx[i] = rng.Intn(len(rows))
		}
		f.trees = append(f.trees, f.grow(rows, lbs, idx, 0, mtry, rng))
	}
	return nil
}

// PredictProba returns the ensemble's estimate of P(label=1) for one row.
func (f *Forest) PredictProba(row []float64) float64 {
	if len(f.trees) == 0 {
		return 0.5
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.trees))
}

// PredictLabel thresholds PredictProba at 0.5.
func (f *Forest) PredictLabel(row []float64) int {
	if f.PredictProba(row) >= 0.5 {
		return 1
	}
	return 0
}

func (n *node) predict(row []float64) float64 {
	cur := n
	for !cur.leaf {
		if row[cur.feature] <= cur.threshold {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur.prob
}

func (f *Forest) grow(rows [][]float64, lbs []int, idx []int, depth, mtry int, rng *rand.Rand) *node {
	ups := 0
	for _, i := range idx {
		ups += lbs[i]
	}
	prob := float64(ups) / float64(len(idx))

	if depth >= f.cfg.MaxDepth || len(idx) < 2*f.cfg.MinLeaf || ups == 0 || ups == len(idx) {
		return &node{leaf: true, prob: prob}
	}

	feature, threshold, ok := f.bestSplit(rows, lbs, idx, mtry, rng)
	if !ok {
		return &node{leaf: true, prob: prob}
	}

	var left, right []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < f.cfg.MinLeaf || len(right) < f.cfg.MinLeaf {
		return &node{leaf: true, prob: prob}
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		left:      f.grow(rows, lbs, left, depth+1, mtry, rng),
		right:     f.grow(rows, lbs, right, depth+1, mtry, rng),
	}
}

// bestSplit picks the gini-optimal (feature, threshold) among mtry randomly
// drawn candidate features. Thresholds are midpoints of consecutive
// distinct sorted values.
func (f *Forest) bestSplit(rows [][]float64, lbs []int, idx []int, mtry int, rng *rand.Rand) (int, float64, bool) {
	candidates := rng.Perm(f.features)[:mtry]
	sort.Ints(candidates)

	bestGini := math.Inf(1)
	bestFeature := -1
	bestThreshold := 0.0

	vals := make([]float64, len(idx))
	for _, feat := range candidates {
		for j, i := range idx {
			vals[j] = rows[i][feat]
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)

		for j := 1; j < len(sorted); j++ {
			if sorted[j] == sorted[j-1] {
				continue
			}
			thr := (sorted[j] + sorted[j-1]) / 2
			g := weightedGini(rows, lbs, idx, feat, thr)
			if g < bestGini {
				bestGini = g
				bestFeature = feat
				bestThreshold = thr
			}
		}
	}
	return bestFeature, bestThreshold, bestFeature >= 0
}

func weightedGini(rows [][]float64, lbs []int, idx []int, feat int, thr float64) float64 {
	var nL, upL, nR, upR int
	for _, i := range idx {
		if rows[i][feat] <= thr {
			nL++
			upL += lbs[i]
		} else {
			nR++
			upR += lbs[i]
		}
	}
	total := float64(nL + nR)
	return float64(nL)/total*gini(upL, nL) + float64(nR)/total*gini(upR, nR)
}

func gini(ups, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(ups) / float64(n)
	return 2 * p * (1 - p)
}

var _ domsvc.Classifier = (*Forest)(nil)
