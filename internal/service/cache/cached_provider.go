package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"EdgeLab/internal/domain/models"
	drepo "EdgeLab/internal/domain/repository"
	pkgcache "EdgeLab/pkg/cache"
	applogger "EdgeLab/pkg/logger"
	"EdgeLab/pkg/util"
)

// CachedProvider decorates a PriceProvider with a TTL cache keyed by
// (ticker, range), so repeated experiment runs over the same range skip
// the network fetch. Provider errors are never cached.
type CachedProvider struct {
	inner drepo.PriceProvider
	cache pkgcache.Service
	ttl   time.Duration
	l     *applogger.Logger
}

func NewCachedProvider(inner drepo.PriceProvider, c pkgcache.Service, ttl time.Duration, l *applogger.Logger) drepo.PriceProvider {
	return &CachedProvider{inner: inner, cache: c, ttl: ttl, l: l}
}

func (p *CachedProvider) Daily(ctx context.Context, ticker string, start, end time.Time) (*models.PriceSeries, error) {
	key := fmt.Sprintf("series:%s:%s:%s", ticker, util.FormatISODate(start), util.FormatISODate(end))

	var cached models.PriceSeries
	err := p.cache.Get(ctx, key, &cached)
	if err == nil && cached.Len() > 0 {
		if p.l != nil {
			p.l.Debug("price series cache hit", applogger.String("key", key), applogger.Int("rows", cached.Len()))
		}
		return &cached, nil
	}
	if err != nil && !errors.Is(err, pkgcache.ErrCacheMiss) && p.l != nil {
		p.l.Warn("price series cache read failed", applogger.String("key", key), applogger.Error(err))
	}

	series, err := p.inner.Daily(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}

	if err := p.cache.Set(ctx, key, series, p.ttl); err != nil && p.l != nil {
		p.l.Warn("price series cache write failed", applogger.String("key", key), applogger.Error(err))
	}
	return series, nil
}
