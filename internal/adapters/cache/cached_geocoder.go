package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// CachedGeocoder consults a GeocodeCache before falling through to the upstream
// geocoder, and stores fresh results. Cache failures are logged and never fail
// the lookup.
type CachedGeocoder struct {
	cache    ports.GeocodeCache
	upstream ports.Geocoder
	logger   *zap.Logger
}

func NewCachedGeocoder(cache ports.GeocodeCache, upstream ports.Geocoder, logger *zap.Logger) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{cache: cache, upstream: upstream, logger: logger}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, query string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.cached")(&err)

	key := NormalizeAddress(query)
	if key == "" {
		return domain.Coordinate{}, fmt.Errorf("geocode: %w: empty query", domain.ErrInvalidInput)
	}

	hits, err := g.cache.GetMany(ctx, []string{key})
	if err != nil {
		g.logger.Warn("geocode cache read failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("address", key),
			zap.Error(err),
		)
	} else if c, ok := hits[key]; ok {
		return c, nil
	}

	c, err := g.upstream.Geocode(ctx, query)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if err := g.cache.PutMany(ctx, map[string]domain.Coordinate{key: c}); err != nil {
		g.logger.Warn("geocode cache write failed",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.String("address", key),
			zap.Error(err),
		)
	}

	return c, nil
}
