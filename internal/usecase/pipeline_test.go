package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"EdgeLab/internal/domain/models"
	"EdgeLab/pkg/config"
	applogger "EdgeLab/pkg/logger"
)

type fakeProvider struct {
	series *models.PriceSeries
	err    error
}

func (f *fakeProvider) Daily(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

// bullish always predicts up with full conviction.
type bullish struct{}

func (bullish) Fit(rows [][]float64, lbs []int) error { return nil }

func (bullish) PredictProba(row []float64) float64 { return 1.0 }

func (bullish) PredictLabel(row []float64) int { return 1 }

type noopMetrics struct{}

func (noopMetrics) RecordRun(ticker, status string) {}

func (noopMetrics) RecordStageDuration(stage string, s float64) {}

func (noopMetrics) RecordDatasetRows(partition string, n int) {}

func (noopMetrics) RecordFinalEquity(ticker string, v float64) {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Instrument.Ticker = "TEST"
	cfg.Instrument.StartDate = "2024-01-01"
	cfg.Instrument.EndDate = "2024-03-01"
	cfg.Label.Horizon = 5
	cfg.Model.Seed = 42
	cfg.Signal.Threshold = 0.6
	cfg.Split.TrainRatio = 0.8
	return cfg
}

func risingSeries(n int) *models.PriceSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &models.PriceSeries{Ticker: "TEST"}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, models.PricePoint{
			Timestamp: base.AddDate(0, 0, i),
			Price:     100 + float64(i),
		})
	}
	return s
}

func TestPipelineRisingSeries(t *testing.T) {
	cfg := testConfig()
	p := NewPipeline(cfg, testLogger(t), &fakeProvider{series: risingSeries(30)}, bullish{}, noopMetrics{})

	run, ds, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// 30 prices, horizon 5 -> 25 aligned rows, split 20/5
	if ds.Len() != 25 {
		t.Fatalf("dataset rows %d, want 25", ds.Len())
	}
	if run.TrainRows != 20 || run.TestRows != 5 {
		t.Fatalf("partitions %d/%d, want 20/5", run.TrainRows, run.TestRows)
	}

	// full-conviction up probabilities against threshold 0.6 go long
	if len(run.Signals) != 5 {
		t.Fatalf("got %d signals, want 5", len(run.Signals))
	}
	for i, s := range run.Signals {
		if s != models.SignalLong {
			t.Fatalf("signal %d = %v, want long", i, s)
		}
	}

	// every actual label on a strictly rising series is up, so the
	// always-up classifier scores perfectly
	if run.Report.Accuracy != 1 {
		t.Fatalf("accuracy %v, want 1", run.Report.Accuracy)
	}

	// long positions on rising prices compound monotonically from above 1
	prev := 1.0
	for i, pt := range run.Equity {
		if pt.Value < prev {
			t.Fatalf("equity %d = %v dropped below %v", i, pt.Value, prev)
		}
		prev = pt.Value
	}
	if run.FinalEquity() <= 1 {
		t.Fatalf("final equity %v, want > 1", run.FinalEquity())
	}

	if run.ID == "" {
		t.Fatalf("missing run id")
	}
	if run.Horizon != 5 || run.Threshold != 0.6 || run.Seed != 42 {
		t.Fatalf("run parameters %+v", run)
	}
}

func TestPipelineProviderError(t *testing.T) {
	cfg := testConfig()
	wantErr := &models.EmptyDataError{Ticker: "TEST"}
	p := NewPipeline(cfg, testLogger(t), &fakeProvider{err: wantErr}, bullish{}, noopMetrics{})

	_, _, err := p.Run(context.Background())
	var edErr *models.EmptyDataError
	if !errors.As(err, &edErr) {
		t.Fatalf("got %v, want EmptyDataError", err)
	}
}

func TestPipelineInvalidHorizon(t *testing.T) {
	cfg := testConfig()
	cfg.Label.Horizon = 40 // exceeds series length
	p := NewPipeline(cfg, testLogger(t), &fakeProvider{series: risingSeries(30)}, bullish{}, noopMetrics{})

	_, _, err := p.Run(context.Background())
	var ihErr *models.InvalidHorizonError
	if !errors.As(err, &ihErr) {
		t.Fatalf("got %v, want InvalidHorizonError", err)
	}
}

func TestPipelineTooSmallForSplit(t *testing.T) {
	cfg := testConfig()
	cfg.Label.Horizon = 4
	p := NewPipeline(cfg, testLogger(t), &fakeProvider{series: risingSeries(5)}, bullish{}, noopMetrics{})

	_, _, err := p.Run(context.Background())
	var aeErr *models.AlignmentEmptyError
	if !errors.As(err, &aeErr) {
		t.Fatalf("got %v, want AlignmentEmptyError", err)
	}
}
