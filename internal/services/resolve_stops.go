package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// Upper bound on concurrent geocoding calls for one request.
const maxGeocodeInFlight = 5

// ResolveStops returns a copy of stops in which every stop without coordinates has
// been geocoded from its address. A stop carries coordinates when either component
// is non-zero. Order is preserved; the first failure cancels the remaining lookups.
func ResolveStops(ctx context.Context, geocoder ports.Geocoder, stops []domain.Stop) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "services.ResolveStops")(&err)

	out := make([]domain.Stop, len(stops))
	copy(out, stops)

	var pending []int
	for i, s := range out {
		if hasCoordinate(s) {
			if !s.Valid() {
				return nil, fmt.Errorf("resolve stops: stop %d: %w: coordinate out of range", i, domain.ErrInvalidInput)
			}
			continue
		}
		if strings.TrimSpace(s.Address) == "" {
			return nil, fmt.Errorf("resolve stops: stop %d: %w: needs coordinates or an address", i, domain.ErrInvalidInput)
		}
		pending = append(pending, i)
	}

	if len(pending) == 0 {
		return out, nil
	}
	if geocoder == nil {
		return nil, fmt.Errorf("resolve stops: %w: address-only stops need a geocoder", domain.ErrInvalidInput)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxGeocodeInFlight)

	for _, idx := range pending {
		idx := idx
		// Each goroutine writes only its own element of out.
		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, out[idx].Address)
			if err != nil {
				return fmt.Errorf("resolve stops: geocode stop %d %q: %w", idx, out[idx].Address, err)
			}
			out[idx].Coordinate = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func hasCoordinate(s domain.Stop) bool {
	return s.Lat != 0 || s.Lng != 0
}
