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

// ComputeDeliveryRoute orders stops with OptimizeOrder and fetches the driving
// route for that exact order. The returned RouteInfo records the permutation in Order.
func ComputeDeliveryRoute(
	ctx context.Context,
	provider ports.DirectionsProvider,
	origin domain.Coordinate,
	stops []domain.Stop,
	returnToOrigin bool,
	opts ...OptimizerOption,
) (*domain.RouteInfo, error) {
	order := OptimizeOrder(domain.StopOrderRequest{
		Origin:         origin,
		Stops:          stops,
		ReturnToOrigin: returnToOrigin,
	}, opts...)

	ordered := make([]domain.Stop, 0, len(order))
	for _, idx := range order {
		ordered = append(ordered, stops[idx])
	}

	zap.L().Debug("stop order computed",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("stops", len(stops)),
		zap.Ints("order", order),
		zap.Bool("return_to_origin", returnToOrigin),
	)

	route, err := BuildOptimizedRoute(ctx, provider, origin, ordered, returnToOrigin)
	if err != nil {
		return nil, fmt.Errorf("compute delivery route: %w", err)
	}
	if route != nil {
		route.Order = order
	}

	return route, nil
}

// CompareAlternatives parses whole-route alternatives from a raw provider response,
// tags each with the color of its provider index, and ranks them by pref.
func CompareAlternatives(resp *ports.DirectionsResponse, pref domain.Preference) ([]domain.AlternativeRoute, error) {
	if err := checkResponse(resp); err != nil {
		return nil, fmt.Errorf("compare alternatives: %w", err)
	}

	routes := make([]domain.AlternativeRoute, 0, len(resp.Routes))
	for i, r := range resp.Routes {
		if len(r.Legs) == 0 {
			return nil, fmt.Errorf("compare alternatives: %w: route %d has no legs", domain.ErrEmptyResult, i)
		}

		coords, err := geo.DecodePolyline(r.OverviewPolyline)
		if err != nil {
			return nil, fmt.Errorf("compare alternatives: route %d: %w: %w", i, domain.ErrRouteUnavailable, err)
		}

		totals := sumLegs(r.Legs)
		hasDelay, delay := trafficDelay(totals.duration, totals.inTraffic)

		steps := make([]domain.Step, 0)
		for _, l := range r.Legs {
			steps = append(steps, l.Steps...)
		}

		routes = append(routes, domain.AlternativeRoute{
			Index:       i,
			Summary:     r.Summary,
			Coordinates: coords,
			Steps:       steps,

			TotalDistanceMeters:           totals.distance,
			TotalDurationSeconds:          totals.duration,
			TotalDurationInTrafficSeconds: totals.inTraffic,
			HasTrafficDelay:               hasDelay,
			TrafficDelaySeconds:           delay,

			ColorTag: ColorForIndex(i),
		})
	}

	return RankRoutes(routes, pref), nil
}

// FetchAlternatives asks the provider for alternative routes between two points
// and ranks them with CompareAlternatives.
func FetchAlternatives(
	ctx context.Context,
	provider ports.DirectionsProvider,
	origin domain.Coordinate,
	destination domain.Coordinate,
	pref domain.Preference,
) (_ []domain.AlternativeRoute, err error) {
	defer obs.Time(ctx, "services.FetchAlternatives")(&err)

	resp, err := provider.Directions(ctx, ports.DirectionsRequest{
		Origin:        origin,
		Destination:   destination,
		Alternatives:  true,
		DepartureTime: ports.DepartureNow,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch alternatives: %w: %w", domain.ErrRouteUnavailable, err)
	}

	routes, err := CompareAlternatives(resp, pref)
	if err != nil {
		return nil, fmt.Errorf("fetch alternatives: %w", err)
	}
	return routes, nil
}
