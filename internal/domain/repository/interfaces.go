package repository

import (
	"context"
	"time"

	"EdgeLab/internal/domain/models"
)

// PriceProvider fetches historical daily prices for one instrument.
// Implementations must return a chronologically ordered, de-duplicated
// series or a models.EmptyDataError when nothing exists for the range.
type PriceProvider interface {
	Daily(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error)
}

// RunStore archives completed run results.
type RunStore interface {
	SaveRun(ctx context.Context, run *models.RunResult) error
}

// Metrics abstracts run instrumentation.
type Metrics interface {
	RecordRun(ticker, status string)
	RecordStageDuration(stage string, seconds float64)
	RecordDatasetRows(partition string, rows int)
	RecordFinalEquity(ticker string, value float64)
}
