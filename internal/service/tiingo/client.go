package tiingo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"EdgeLab/internal/domain/models"
	drepo "EdgeLab/internal/domain/repository"
	"EdgeLab/internal/service/ratelimit"
	xhttp "EdgeLab/pkg/http"
	"EdgeLab/pkg/util"
)

// Client implements a PriceProvider backed by the Tiingo end-of-day API.
type Client struct {
	baseURL string
	apiKey  string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	rate    float64
}

// New creates a new Tiingo PriceProvider.
func New(baseURL, apiKey string, timeout time.Duration, ratePerSec float64) drepo.PriceProvider {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		rate:    ratePerSec,
	}
}

type eodBar struct {
	Date     string   `json:"date"`
	Close    *float64 `json:"close"`
	AdjClose *float64 `json:"adjClose"`
}

// Daily fetches the end-of-day close series for one ticker. Rows come back
// chronologically ordered and de-duplicated; adjusted close is preferred
// over raw close.
func (c *Client) Daily(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	if err := c.limiter.Wait(ctx, "tiingo:"+ticker, c.rate, c.rate); err != nil {
		return nil, fmt.Errorf("tiingo rate limit: %w", err)
	}

	var bars []eodBar
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/tiingo/daily/%s/prices", c.baseURL, ticker),
		QueryParams: map[string][]string{
			"startDate": {util.FormatISODate(start)},
			"endDate":   {util.FormatISODate(end)},
			"token":     {c.apiKey},
		},
	}, &bars)
	if err != nil {
		return nil, fmt.Errorf("tiingo daily %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, &models.EmptyDataError{
			Ticker: ticker,
			Start:  util.FormatISODate(start),
			End:    util.FormatISODate(end),
		}
	}

	seen := make(map[int64]bool, len(bars))
	points := make([]models.PricePoint, 0, len(bars))
	for _, b := range bars {
		ts, ok := util.ParseTime(b.Date)
		if !ok {
			return nil, &models.MissingColumnError{Ticker: ticker, Column: "date"}
		}
		price := b.AdjClose
		if price == nil {
			price = b.Close
		}
		if price == nil {
			return nil, &models.MissingColumnError{Ticker: ticker, Column: "close"}
		}
		if seen[ts.UnixNano()] {
			continue
		}
		seen[ts.UnixNano()] = true
		points = append(points, models.PricePoint{Timestamp: ts, Price: *price})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	series := &models.PriceSeries{Ticker: ticker, Points: points}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("tiingo daily %s: %w", ticker, err)
	}
	return series, nil
}
