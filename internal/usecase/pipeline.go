package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"EdgeLab/internal/domain/models"
	drepo "EdgeLab/internal/domain/repository"
	domsvc "EdgeLab/internal/domain/service"
	"EdgeLab/internal/services/backtest"
	"EdgeLab/internal/services/dataset"
	"EdgeLab/internal/services/features"
	"EdgeLab/internal/services/labels"
	"EdgeLab/internal/services/report"
	sig "EdgeLab/internal/services/signal"
	"EdgeLab/pkg/config"
	applogger "EdgeLab/pkg/logger"
)

// Pipeline runs the full experiment once: fetch, features, labels, align,
// split, fit, signal, backtest, report. Strictly sequential, one pass per
// stage; every error is fatal and names the violated precondition.
type Pipeline struct {
	cfg        *config.Config
	l          *applogger.Logger
	provider   drepo.PriceProvider
	classifier domsvc.Classifier
	metrics    drepo.Metrics
}

func NewPipeline(cfg *config.Config, l *applogger.Logger, provider drepo.PriceProvider, classifier domsvc.Classifier, m drepo.Metrics) *Pipeline {
	return &Pipeline{cfg: cfg, l: l, provider: provider, classifier: classifier, metrics: m}
}

// Run executes the pipeline and returns the run result plus the aligned
// dataset (for export). The classifier is fitted in place.
func (p *Pipeline) Run(ctx context.Context) (*models.RunResult, *models.Dataset, error) {
	ticker := p.cfg.Instrument.Ticker
	start, end := p.cfg.DateRange()

	series, err := p.fetch(ctx, ticker, start, end)
	if err != nil {
		p.fail("fetch", err)
		return nil, nil, err
	}

	var rows []models.FeatureRow
	err = p.stage("features", func() error {
		if features.ShortSeries(series) {
			p.l.Warn("series shorter than largest indicator window, features are mostly fill-derived",
				applogger.Int("rows", series.Len()),
				applogger.Int("largest_window", features.RSIWindow),
			)
		}
		rows, err = features.Extract(series)
		return err
	})
	if err != nil {
		p.fail("features", err)
		return nil, nil, err
	}

	var lbs []labels.Label
	err = p.stage("labels", func() error {
		lbs, err = labels.Generate(series, p.cfg.Label.Horizon)
		return err
	})
	if err != nil {
		p.fail("labels", err)
		return nil, nil, err
	}

	var ds *models.Dataset
	var split *models.Split
	err = p.stage("align", func() error {
		ds, err = dataset.Align(rows, lbs)
		if err != nil {
			return err
		}
		split, err = dataset.ChronoSplit(ds, p.cfg.Split.TrainRatio)
		return err
	})
	if err != nil {
		p.fail("align", err)
		return nil, nil, err
	}
	p.metrics.RecordDatasetRows("train", split.Train.Len())
	p.metrics.RecordDatasetRows("test", split.Test.Len())

	err = p.stage("fit", func() error {
		return p.classifier.Fit(split.Train.Rows, split.Train.Labels)
	})
	if err != nil {
		p.fail("fit", err)
		return nil, nil, err
	}

	var signals []models.Signal
	var predicted []int
	err = p.stage("signal", func() error {
		probas := make([]float64, split.Test.Len())
		predicted = make([]int, split.Test.Len())
		for i, row := range split.Test.Rows {
			probas[i] = p.classifier.PredictProba(row)
			predicted[i] = p.classifier.PredictLabel(row)
		}
		signals = sig.FromProbas(probas, p.cfg.Signal.Threshold)
		return nil
	})
	if err != nil {
		p.fail("signal", err)
		return nil, nil, err
	}

	var bt *backtest.Result
	err = p.stage("backtest", func() error {
		held, err := heldOutSeries(series, split.Test)
		if err != nil {
			return err
		}
		bt, err = backtest.Run(held, signals)
		return err
	})
	if err != nil {
		p.fail("backtest", err)
		return nil, nil, err
	}

	var rep models.Report
	err = p.stage("report", func() error {
		rep, err = report.Build(split.Test.Labels, predicted)
		return err
	})
	if err != nil {
		p.fail("report", err)
		return nil, nil, err
	}

	run := &models.RunResult{
		ID:            uuid.NewString(),
		Ticker:        ticker,
		StartDate:     p.cfg.Instrument.StartDate,
		EndDate:       p.cfg.Instrument.EndDate,
		Horizon:       p.cfg.Label.Horizon,
		Threshold:     p.cfg.Signal.Threshold,
		Seed:          p.cfg.Model.Seed,
		CreatedAt:     time.Now().UTC(),
		TrainRows:     split.Train.Len(),
		TestRows:      split.Test.Len(),
		Report:        rep,
		Signals:       signals,
		PeriodReturns: bt.PeriodReturns,
		Equity:        bt.Equity,
	}

	p.metrics.RecordRun(ticker, "ok")
	p.metrics.RecordFinalEquity(ticker, run.FinalEquity())
	p.l.Info("run complete",
		applogger.String("run_id", run.ID),
		applogger.String("ticker", ticker),
		applogger.Int("train_rows", run.TrainRows),
		applogger.Int("test_rows", run.TestRows),
		applogger.Float64("accuracy", rep.Accuracy),
		applogger.Float64("final_equity", run.FinalEquity()),
	)
	return run, ds, nil
}

func (p *Pipeline) fetch(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	var series *models.PriceSeries
	err := p.stage("fetch", func() error {
		var err error
		series, err = p.provider.Daily(ctx, ticker, start, end)
		if err != nil {
			return err
		}
		return series.Validate()
	})
	if err != nil {
		return nil, err
	}
	p.l.Info("price series fetched",
		applogger.String("ticker", ticker),
		applogger.Int("rows", series.Len()),
	)
	return series, nil
}

// stage runs fn and records its wall time.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.RecordStageDuration(name, time.Since(start).Seconds())
	if err == nil {
		p.l.Debug("stage done",
			applogger.String("stage", name),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return err
}

func (p *Pipeline) fail(stage string, err error) {
	p.metrics.RecordRun(p.cfg.Instrument.Ticker, "error")
	p.l.Error("pipeline aborted",
		applogger.String("stage", stage),
		applogger.Error(err),
	)
}

// heldOutSeries rebuilds the price sub-series matching the test partition
// 1:1 by timestamp.
func heldOutSeries(series *models.PriceSeries, test *models.Dataset) (*models.PriceSeries, error) {
	byTS := make(map[int64]models.PricePoint, series.Len())
	for _, pt := range series.Points {
		byTS[pt.Timestamp.UnixNano()] = pt
	}
	points := make([]models.PricePoint, 0, test.Len())
	for _, ts := range test.Timestamps {
		pt, ok := byTS[ts.UnixNano()]
		if !ok {
			return nil, fmt.Errorf("backtest: test timestamp %s missing from price series", ts)
		}
		points = append(points, pt)
	}
	return &models.PriceSeries{Ticker: series.Ticker, Points: points}, nil
}
