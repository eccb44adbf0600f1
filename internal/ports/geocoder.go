package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for resolving a free-text place query to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (domain.Coordinate, error)
}

// Port: persistent address -> coordinate cache.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinate, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinate) error
}
