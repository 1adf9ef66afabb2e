package backtest

import (
	"fmt"

	"EdgeLab/internal/domain/models"
)

// Result holds period returns and the cumulative equity curve for one
// simulated strategy on the held-out partition.
type Result struct {
	PeriodReturns []float64
	Equity        []models.EquityPoint
}

// Run converts signals and the 1:1 aligned held-out prices into period
// returns (next-period percent change times current signal; the final
// period's unknowable forward return is 0) and an equity curve compounded
// from 1.0. Transaction costs, slippage and position sizing are not
// modeled; positions are flat +1/0/-1.
func Run(prices *models.PriceSeries, signals []models.Signal) (*Result, error) {
	n := prices.Len()
	if n == 0 {
		return nil, &models.EmptyDataError{Ticker: prices.Ticker}
	}
	if n != len(signals) {
		return nil, fmt.Errorf("backtest: %d prices vs %d signals", n, len(signals))
	}

	res := &Result{
		PeriodReturns: make([]float64, n),
		Equity:        make([]models.EquityPoint, n),
	}
	equity := 1.0
	for t := 0; t < n; t++ {
		r := 0.0
		if t+1 < n {
			r = (prices.Points[t+1].Price/prices.Points[t].Price - 1) * float64(signals[t])
		}
		res.PeriodReturns[t] = r
		equity *= 1 + r
		res.Equity[t] = models.EquityPoint{Timestamp: prices.Points[t].Timestamp, Value: equity}
	}
	return res, nil
}
