package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"EdgeLab/internal/domain/models"
	drepo "EdgeLab/internal/domain/repository"
	"EdgeLab/pkg/util"
)

// Provider reads daily prices from a local CSV file (header: date,close),
// for offline runs and fixtures. Rows outside the requested range are
// skipped; duplicates keep the first occurrence.
type Provider struct {
	path string
}

func New(path string) drepo.PriceProvider {
	return &Provider{path: path}
}

func (p *Provider) Daily(_ context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open csv source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv source: %w", err)
	}
	if len(records) == 0 {
		return nil, &models.EmptyDataError{Ticker: ticker}
	}

	header := records[0]
	dateCol, closeCol := -1, -1
	for i, name := range header {
		switch name {
		case "date", "t":
			dateCol = i
		case "close", "c", "adj_close":
			closeCol = i
		}
	}
	if dateCol < 0 {
		return nil, &models.MissingColumnError{Ticker: ticker, Column: "date"}
	}
	if closeCol < 0 {
		return nil, &models.MissingColumnError{Ticker: ticker, Column: "close"}
	}

	seen := make(map[int64]bool)
	points := make([]models.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		ts, ok := util.ParseTime(rec[dateCol])
		if !ok {
			return nil, fmt.Errorf("csv source: bad date %q", rec[dateCol])
		}
		if ts.Before(start) || ts.After(end) {
			continue
		}
		price, err := strconv.ParseFloat(rec[closeCol], 64)
		if err != nil {
			return nil, fmt.Errorf("csv source: bad close %q: %w", rec[closeCol], err)
		}
		if seen[ts.UnixNano()] {
			continue
		}
		seen[ts.UnixNano()] = true
		points = append(points, models.PricePoint{Timestamp: ts, Price: price})
	}
	if len(points) == 0 {
		return nil, &models.EmptyDataError{
			Ticker: ticker,
			Start:  util.FormatISODate(start),
			End:    util.FormatISODate(end),
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	series := &models.PriceSeries{Ticker: ticker, Points: points}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}
	return series, nil
}
