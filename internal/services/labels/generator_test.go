package labels

import (
	"errors"
	"testing"
	"time"

	"EdgeLab/internal/domain/models"
)

func series(prices ...float64) *models.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &models.PriceSeries{Ticker: "TEST"}
	for i, p := range prices {
		s.Points = append(s.Points, models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Price:     p,
		})
	}
	return s
}

func TestGenerateDropsTrailingRows(t *testing.T) {
	s := series(100, 101, 102, 103, 104, 105, 106, 107, 108, 109)
	for _, horizon := range []int{1, 3, 5, 9} {
		got, err := Generate(s, horizon)
		if err != nil {
			t.Fatalf("horizon %d: %v", horizon, err)
		}
		if len(got) != s.Len()-horizon {
			t.Fatalf("horizon %d: got %d labels, want %d", horizon, len(got), s.Len()-horizon)
		}
	}
}

func TestGenerateUpDown(t *testing.T) {
	s := series(100, 105, 95, 95, 110)
	got, err := Generate(s, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	// strictly-above comparison: an unchanged price is not up
	want := []int{1, 0, 0, 1}
	for i, l := range got {
		if l.Up != want[i] {
			t.Fatalf("label %d = %d, want %d", i, l.Up, want[i])
		}
		if !l.Timestamp.Equal(s.Points[i].Timestamp) {
			t.Fatalf("label %d timestamp mismatch", i)
		}
	}
}

func TestGenerateInvalidHorizon(t *testing.T) {
	s := series(100, 101, 102)
	for _, horizon := range []int{0, -1, 3, 4} {
		_, err := Generate(s, horizon)
		var ihErr *models.InvalidHorizonError
		if !errors.As(err, &ihErr) {
			t.Fatalf("horizon %d: got %v, want InvalidHorizonError", horizon, err)
		}
		if ihErr.Horizon != horizon || ihErr.SeriesLen != s.Len() {
			t.Fatalf("horizon %d: error fields %+v", horizon, ihErr)
		}
	}
}
