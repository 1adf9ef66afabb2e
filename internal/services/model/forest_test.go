package model

import (
	"math/rand"
	"testing"
)

// separable builds a toy dataset where label 1 sits above x0=0.5 with a
// little feature noise elsewhere.
func separable(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	lbs := make([]int, n)
	for i := range rows {
		up := i % 2
		x0 := rng.Float64() * 0.4
		if up == 1 {
			x0 += 0.6
		}
		rows[i] = []float64{x0, rng.Float64(), rng.Float64()}
		lbs[i] = up
	}
	return rows, lbs
}

func TestForestLearnsSeparableData(t *testing.T) {
	rows, lbs := separable(200, 7)
	f := NewForest(ForestConfig{Trees: 50, MaxDepth: 4, MinLeaf: 2, Seed: 1})
	if err := f.Fit(rows, lbs); err != nil {
		t.Fatalf("fit: %v", err)
	}

	correct := 0
	for i, r := range rows {
		if f.PredictLabel(r) == lbs[i] {
			correct++
		}
	}
	if acc := float64(correct) / float64(len(rows)); acc < 0.95 {
		t.Fatalf("training accuracy %.3f, want >= 0.95", acc)
	}
}

func TestForestDeterministic(t *testing.T) {
	rows, lbs := separable(120, 3)
	cfg := ForestConfig{Trees: 30, MaxDepth: 5, MinLeaf: 2, Seed: 42}

	a := NewForest(cfg)
	b := NewForest(cfg)
	if err := a.Fit(rows, lbs); err != nil {
		t.Fatalf("fit a: %v", err)
	}
	if err := b.Fit(rows, lbs); err != nil {
		t.Fatalf("fit b: %v", err)
	}
	for i, r := range rows {
		pa, pb := a.PredictProba(r), b.PredictProba(r)
		if pa != pb {
			t.Fatalf("row %d: probas differ %v vs %v", i, pa, pb)
		}
	}
}

func TestForestRefitSameInstance(t *testing.T) {
	rows, lbs := separable(100, 9)
	f := NewForest(ForestConfig{Trees: 20, MaxDepth: 4, Seed: 5})
	if err := f.Fit(rows, lbs); err != nil {
		t.Fatalf("first fit: %v", err)
	}
	first := make([]float64, len(rows))
	for i, r := range rows {
		first[i] = f.PredictProba(r)
	}
	if err := f.Fit(rows, lbs); err != nil {
		t.Fatalf("second fit: %v", err)
	}
	for i, r := range rows {
		if got := f.PredictProba(r); got != first[i] {
			t.Fatalf("row %d: refit proba %v, want %v", i, got, first[i])
		}
	}
}

func TestForestProbaRange(t *testing.T) {
	rows, lbs := separable(80, 11)
	f := NewForest(ForestConfig{Trees: 15, Seed: 2})
	if err := f.Fit(rows, lbs); err != nil {
		t.Fatalf("fit: %v", err)
	}
	for i, r := range rows {
		p := f.PredictProba(r)
		if p < 0 || p > 1 {
			t.Fatalf("row %d: proba %v out of [0,1]", i, p)
		}
	}
}

func TestForestFitValidation(t *testing.T) {
	f := NewForest(ForestConfig{Trees: 5, Seed: 1})

	if err := f.Fit(nil, nil); err == nil {
		t.Fatalf("expected error for empty training set")
	}
	if err := f.Fit([][]float64{{1, 2}}, []int{0, 1}); err == nil {
		t.Fatalf("expected error for row/label mismatch")
	}
	if err := f.Fit([][]float64{{1, 2}, {1}}, []int{0, 1}); err == nil {
		t.Fatalf("expected error for ragged rows")
	}
	if err := f.Fit([][]float64{{1}, {2}}, []int{0, 2}); err == nil {
		t.Fatalf("expected error for non-binary label")
	}
}

func TestForestUnfittedProba(t *testing.T) {
	f := NewForest(ForestConfig{})
	if got := f.PredictProba([]float64{1, 2, 3}); got != 0.5 {
		t.Fatalf("unfitted proba %v, want 0.5", got)
	}
}
