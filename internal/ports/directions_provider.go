package ports

import (
	"context"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// DepartureNow asks the provider for live-traffic estimates.
const DepartureNow = "now"

// Request for a driving route through an ordered list of points.
type DirectionsRequest struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	Waypoints   []domain.Coordinate
	// Let the provider reorder Waypoints; the chosen order comes back in WaypointOrder.
	OptimizeWaypointOrder bool
	Alternatives          bool
	// "now" or a unix timestamp.
	DepartureTime string
}

// One provider route with its legs in request order.
type DirectionsRoute struct {
	Summary          string
	OverviewPolyline string
	Legs             []domain.Leg
	WaypointOrder    []int
}

// Provider-level response. Status is "OK" or a provider error code.
type DirectionsResponse struct {
	Status       string
	ErrorMessage string
	Routes       []DirectionsRoute
}

// Contract for the external directions service.
type DirectionsProvider interface {
	// Return driving routes for the request. A transport failure is returned as an
	// error; a provider-level failure is reported through Status.
	Directions(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error)
}

// StatusOK is the only provider status that carries usable routes.
const StatusOK = "OK"

// StatusError reports a provider-level (non-OK) response status.
// It unwraps to domain.ErrRouteUnavailable.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider status %s", e.Status)
	}
	return fmt.Sprintf("provider status %s: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return domain.ErrRouteUnavailable }
