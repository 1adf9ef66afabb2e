package models

import "time"

// FeatureRow holds the fixed set of indicators derived for one timestamp.
type FeatureRow struct {
	Timestamp time.Time

	Return     float64 // simple one-period return
	LogReturn  float64 // ln(P_t / P_{t-1})
	MA5        float64 // trailing simple moving average, 5 samples
	MA10       float64
	Vol5       float64 // stddev of Return over trailing 5 samples
	Vol10      float64
	Momentum5  float64 // P_t - P_{t-5}
	Momentum10 float64
	RSI14      float64 // bounded [0,100]
}

// FeatureCount is the width of the feature vector.
const FeatureCount = 9

// FeatureNames lists vector components in Vector() order.
var FeatureNames = []string{
	"return", "log_return", "ma_5", "ma_10",
	"vol_5", "vol_10", "momentum_5", "momentum_10", "rsi_14",
}

// Vector flattens the row for classifier input. Order must stay in sync
// with FeatureNames.
func (f *FeatureRow) Vector() []float64 {
	return []float64{
		f.Return, f.LogReturn, f.MA5, f.MA10,
		f.Vol5, f.Vol10, f.Momentum5, f.Momentum10, f.RSI14,
	}
}
