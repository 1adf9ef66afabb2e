package models

import "time"

// EquityPoint is one sample of the cumulative-return curve.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ClassMetrics holds precision/recall/F1 for a single label class.
type ClassMetrics struct {
	Class     int     `json:"class"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is the evaluation summary for the held-out partition.
type Report struct {
	Accuracy float64        `json:"accuracy"`
	Classes  []ClassMetrics `json:"classes"`
	Text     string         `json:"text"`
}

// RunResult is everything one pipeline run produced.
type RunResult struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Horizon   int       `json:"horizon"`
	Threshold float64   `json:"threshold"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`

	TrainRows int `json:"train_rows"`
	TestRows  int `json:"test_rows"`

	Report        Report        `json:"report"`
	Signals       []Signal      `json:"signals"`
	PeriodReturns []float64     `json:"period_returns"`
	Equity        []EquityPoint `json:"equity"`
}

// FinalEquity returns the last point of the curve, or 1.0 for an empty one.
func (r *RunResult) FinalEquity() float64 {
	if len(r.Equity) == 0 {
		return 1.0
	}
	return r.Equity[len(r.Equity)-1].Value
}
