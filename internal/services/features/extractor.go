package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"EdgeLab/internal/domain/models"
)

// Rolling windows used by the extractor. RSIWindow is the largest; a series
// shorter than it still yields rows, but they are mostly fill-derived.
const (
	ShortWindow = 5
	LongWindow  = 10
	RSIWindow   = 14
)

// ShortSeries reports whether the series is too short for the largest
// indicator window to ever be fully populated.
func ShortSeries(s *models.PriceSeries) bool { return s.Len() < RSIWindow }

// Extract derives one FeatureRow per input timestamp. Cells with
// insufficient window history are backfilled from the nearest later valid
// value, then forward-filled, so no row carries a missing value.
func Extract(s *models.PriceSeries) ([]models.FeatureRow, error) {
	n := s.Len()
	if n < 2 {
		return nil, fmt.Errorf("extract features: need at least 2 prices, got %d", n)
	}

	prices := s.Prices()

	ret := nanColumn(n)
	logRet := nanColumn(n)
	for t := 1; t < n; t++ {
		ret[t] = prices[t]/prices[t-1] - 1
		logRet[t] = math.Log(prices[t] / prices[t-1])
	}

	ma5 := rollingMean(prices, ShortWindow)
	ma10 := rollingMean(prices, LongWindow)
	vol5 := rollingStd(ret, ShortWindow)
	vol10 := rollingStd(ret, LongWindow)
	mom5 := momentum(prices, ShortWindow)
	mom10 := momentum(prices, LongWindow)
	rsi := rsiColumn(prices, RSIWindow)

	cols := [][]float64{ret, logRet, ma5, ma10, vol5, vol10, mom5, mom10, rsi}
	for _, col := range cols {
		fillColumn(col)
	}

	ts := s.Timestamps()
	rows := make([]models.FeatureRow, n)
	for t := 0; t < n; t++ {
		rows[t] = models.FeatureRow{
			Timestamp:  ts[t],
			Return:     ret[t],
			LogReturn:  logRet[t],
			MA5:        ma5[t],
			MA10:       ma10[t],
			Vol5:       vol5[t],
			Vol10:      vol10[t],
			Momentum5:  mom5[t],
			Momentum10: mom10[t],
			RSI14:      rsi[t],
		}
	}
	return rows, nil
}

func nanColumn(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = math.NaN()
	}
	return col
}

// rollingMean computes the trailing simple mean of values over w samples
// ending at each index. Indexes with fewer than w samples stay NaN.
func rollingMean(values []float64, w int) []float64 {
	out := nanColumn(len(values))
	for t := w - 1; t < len(values); t++ {
		out[t] = stat.Mean(values[t-w+1:t+1], nil)
	}
	return out
}

// rollingStd computes the trailing sample standard deviation over w samples
// ending at each index, skipping windows that contain undefined cells.
func rollingStd(values []float64, w int) []float64 {
	out := nanColumn(len(values))
	for t := w - 1; t < len(values); t++ {
		window := values[t-w+1 : t+1]
		if hasNaN(window) {
			continue
		}
		out[t] = stat.StdDev(window, nil)
	}
	return out
}

func momentum(prices []float64, k int) []float64 {
	out := nanColumn(len(prices))
	for t := k; t < len(prices); t++ {
		out[t] = prices[t] - prices[t-k]
	}
	return out
}

// rsiColumn computes the w-sample relative strength index. A zero average
// loss maps to exactly 100, never NaN or +Inf.
func rsiColumn(prices []float64, w int) []float64 {
	out := nanColumn(len(prices))
	for t := w; t < len(prices); t++ {
		var gain, loss float64
		for i := t - w + 1; i <= t; i++ {
			d := prices[i] - prices[i-1]
			if d > 0 {
				gain += d
			} else {
				loss -= d
			}
		}
		avgGain := gain / float64(w)
		avgLoss := loss / float64(w)
		if avgLoss == 0 {
			out[t] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[t] = 100 - 100/(1+rs)
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// fillColumn replaces NaN cells in place: nearest later valid value first
// (warm-up rows), then nearest earlier valid value. A column with no valid
// cell at all becomes zeros.
func fillColumn(col []float64) {
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
	prev := math.NaN()
	for i := 0; i < len(col); i++ {
		if math.IsNaN(col[i]) {
			col[i] = prev
		} else {
			prev = col[i]
		}
	}
	for i := range col {
		if math.IsNaN(col[i]) {
			col[i] = 0
		}
	}
}
