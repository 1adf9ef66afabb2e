package labels

import (
	"time"

	"EdgeLab/internal/domain/models"
)

// Label marks whether the price `horizon` steps ahead closed strictly above
// the current price.
type Label struct {
	Timestamp time.Time
	Up        int // 1 up, 0 not up
}

// Generate produces one label per timestamp that still has a forward price
// to compare against; the trailing `horizon` timestamps are dropped. The
// horizon must be positive and smaller than the series length.
func Generate(s *models.PriceSeries, horizon int) ([]Label, error) {
	n := s.Len()
	if horizon <= 0 || horizon >= n {
		return nil, &models.InvalidHorizonError{Horizon: horizon, SeriesLen: n}
	}
	out := make([]Label, 0, n-horizon)
	for t := 0; t < n-horizon; t++ {
		up := 0
		if s.Points[t+horizon].Price > s.Points[t].Price {
			up = 1
		}
		out = append(out, Label{Timestamp: s.Points[t].Timestamp, Up: up})
	}
	return out, nil
}
