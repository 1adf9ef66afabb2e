package backtest

import (
	"errors"
	"math"
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

func allLong(n int) []models.Signal {
	sig := make([]models.Signal, n)
	for i := range sig {
		sig[i] = models.SignalLong
	}
	return sig
}

func TestRunLongCapturesReturns(t *testing.T) {
	s := series(100, 110, 121)
	res, err := Run(s, allLong(3))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.PeriodReturns[0]-0.1) > 1e-12 || math.Abs(res.PeriodReturns[1]-0.1) > 1e-12 {
		t.Fatalf("period returns %v, want 0.1 each", res.PeriodReturns[:2])
	}
	if res.PeriodReturns[2] != 0 {
		t.Fatalf("final period return %v, want 0", res.PeriodReturns[2])
	}
	if math.Abs(res.Equity[0].Value-1.1) > 1e-12 {
		t.Fatalf("first equity %v, want 1.1", res.Equity[0].Value)
	}
	if math.Abs(res.Equity[2].Value-1.21) > 1e-12 {
		t.Fatalf("final equity %v, want 1.21", res.Equity[2].Value)
	}
}

func TestRunShortInvertsReturns(t *testing.T) {
	s := series(100, 90)
	res, err := Run(s, []models.Signal{models.SignalShort, models.SignalNeutral})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.PeriodReturns[0]-0.1) > 1e-12 {
		t.Fatalf("short return %v, want 0.1", res.PeriodReturns[0])
	}
}

func TestRunNeutralHoldsEquity(t *testing.T) {
	s := series(100, 150, 75, 120)
	sig := make([]models.Signal, 4) // all neutral
	res, err := Run(s, sig)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, p := range res.Equity {
		if p.Value != 1.0 {
			t.Fatalf("equity %d = %v, want 1.0", i, p.Value)
		}
	}
}

func TestRunEquityPositive(t *testing.T) {
	s := series(100, 10, 200, 20, 300)
	sig := []models.Signal{
		models.SignalShort, models.SignalLong, models.SignalShort, models.SignalLong, models.SignalNeutral,
	}
	res, err := Run(s, sig)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, p := range res.Equity {
		if p.Value <= 0 {
			t.Fatalf("equity %d = %v, want > 0", i, p.Value)
		}
	}
}

func TestRunLengthMismatch(t *testing.T) {
	if _, err := Run(series(100, 101), allLong(3)); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
}

func TestRunEmpty(t *testing.T) {
	_, err := Run(&models.PriceSeries{Ticker: "TEST"}, nil)
	var edErr *models.EmptyDataError
	if !errors.As(err, &edErr) {
		t.Fatalf("got %v, want EmptyDataError", err)
	}
}
