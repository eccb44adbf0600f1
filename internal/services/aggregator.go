package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// BuildOptimizedRoute fetches a driving route through origin and orderedStops (in
// that exact order, optionally closing back at origin) and folds the provider's
// per-leg figures into a single RouteInfo.
//
// Aggregation is all-or-nothing: any provider failure yields an error wrapping
// domain.ErrRouteUnavailable or domain.ErrEmptyResult and no partial route.
// With no stops there is no route and (nil, nil) is returned.
func BuildOptimizedRoute(
	ctx context.Context,
	provider ports.DirectionsProvider,
	origin domain.Coordinate,
	orderedStops []domain.Stop,
	returnToOrigin bool,
) (_ *domain.RouteInfo, err error) {
	defer obs.Time(ctx, "services.BuildOptimizedRoute")(&err)

	if len(orderedStops) == 0 {
		return nil, nil
	}

	seq := routeSequence(origin, orderedStops, returnToOrigin)
	req := ports.DirectionsRequest{
		Origin:        seq[0],
		Destination:   seq[len(seq)-1],
		Waypoints:     seq[1 : len(seq)-1],
		DepartureTime: ports.DepartureNow,
	}

	resp, err := provider.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("build optimized route: fetch directions: %w: %w", domain.ErrRouteUnavailable, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("build optimized route: %w", err)
	}

	route := resp.Routes[0]
	want := len(seq) - 1
	if len(route.Legs) == 0 {
		return nil, fmt.Errorf("build optimized route: %w: route has no legs", domain.ErrEmptyResult)
	}
	if len(route.Legs) < want {
		return nil, fmt.Errorf(
			"build optimized route: %w: provider returned %d legs for %d waypoint pairs",
			domain.ErrRouteUnavailable, len(route.Legs), want,
		)
	}
	// Totals cover exactly the legs of the sequence built above, so a stray
	// closing leg is never counted twice.
	legs := route.Legs[:want]

	totals := sumLegs(legs)
	hasDelay, delay := trafficDelay(totals.duration, totals.inTraffic)

	coords := routeCoordinates(ctx, route.OverviewPolyline, legs)

	waypoints := make([]domain.Waypoint, 0, len(orderedStops))
	for i, s := range orderedStops {
		waypoints = append(waypoints, domain.Waypoint{
			Coordinate: s.Coordinate,
			Name:       s.Name,
			Address:    s.Address,
			VisitOrder: i + 1,
		})
	}

	steps := make([]domain.Step, 0)
	for _, l := range legs {
		steps = append(steps, l.Steps...)
	}

	return &domain.RouteInfo{
		Coordinates: coords,
		Steps:       steps,
		Bounds:      geo.BoundsOf(coords),

		TotalDistanceMeters:           totals.distance,
		TotalDurationSeconds:          totals.duration,
		TotalDurationInTrafficSeconds: totals.inTraffic,
		HasTrafficDelay:               hasDelay,
		TrafficDelaySeconds:           delay,

		ColorTag:  ColorForIndex(0),
		Waypoints: waypoints,

		NextLegDistanceMeters:           legs[0].DistanceMeters,
		NextLegDurationSeconds:          legs[0].DurationSeconds,
		NextLegDurationInTrafficSeconds: legs[0].DurationInTrafficSeconds,
	}, nil
}

// routeSequence is origin, every stop in order, and origin again when returning.
func routeSequence(origin domain.Coordinate, stops []domain.Stop, returnToOrigin bool) []domain.Coordinate {
	seq := make([]domain.Coordinate, 0, len(stops)+2)
	seq = append(seq, origin)
	for _, s := range stops {
		seq = append(seq, s.Coordinate)
	}
	if returnToOrigin {
		seq = append(seq, origin)
	}
	return seq
}

// checkResponse maps provider statuses onto the domain error taxonomy.
func checkResponse(resp *ports.DirectionsResponse) error {
	if resp == nil {
		return fmt.Errorf("%w: nil provider response", domain.ErrEmptyResult)
	}
	if resp.Status != ports.StatusOK {
		return &ports.StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}
	if len(resp.Routes) == 0 {
		return fmt.Errorf("%w: provider returned no routes", domain.ErrEmptyResult)
	}
	return nil
}

type legTotals struct {
	distance  int
	duration  int
	inTraffic int
}

func sumLegs(legs []domain.Leg) legTotals {
	var t legTotals
	for _, l := range legs {
		t.distance += l.DistanceMeters
		t.duration += l.DurationSeconds
		t.inTraffic += l.DurationInTrafficSeconds
	}
	return t
}

// trafficDelay reports whether traffic slows the trip, and by how much (floored at 0).
func trafficDelay(duration, inTraffic int) (bool, int) {
	if inTraffic > duration {
		return true, inTraffic - duration
	}
	return false, 0
}

// routeCoordinates prefers the overview polyline and falls back to the legs' own geometry.
func routeCoordinates(ctx context.Context, overview string, legs []domain.Leg) []domain.Coordinate {
	if overview != "" {
		coords, err := geo.DecodePolyline(overview)
		if err == nil {
			return coords
		}
		zap.L().Warn("overview polyline unreadable, using leg geometry",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(err),
		)
	}

	coords := make([]domain.Coordinate, 0)
	for _, l := range legs {
		for _, c := range l.Polyline {
			if n := len(coords); n > 0 && coords[n-1] == c {
				continue
			}
			coords = append(coords, c)
		}
	}
	return coords
}
