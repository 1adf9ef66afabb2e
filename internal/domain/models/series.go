package models

import (
	"fmt"
	"time"
)

// PricePoint is a single observation of an instrument's price.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// PriceSeries is a chronologically ordered, de-duplicated price history.
// It is immutable once fetched: downstream stages read it, never mutate it.
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Prices returns the price column as a new slice.
func (s *PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Timestamps returns the time column as a new slice.
func (s *PriceSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Timestamp
	}
	return out
}

// Validate checks series invariants: non-empty, strictly increasing
// timestamps, strictly positive prices.
func (s *PriceSeries) Validate() error {
	if len(s.Points) == 0 {
		return &EmptyDataError{Ticker: s.Ticker}
	}
	for i, p := range s.Points {
		if p.Price <= 0 {
			return fmt.Errorf("series %s: non-positive price %.6f at %s", s.Ticker, p.Price, p.Timestamp.Format(time.RFC3339))
		}
		if i > 0 && !s.Points[i-1].Timestamp.Before(p.Timestamp) {
			return fmt.Errorf("series %s: timestamps not strictly increasing at index %d", s.Ticker, i)
		}
	}
	return nil
}
