package directions

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

// MockProvider is an in-memory DirectionsProvider and Geocoder for tests and
// offline runs. Without a canned Response it synthesizes one straight-line leg per
// consecutive pair of points, at SpeedMetersPerSecond.
type MockProvider struct {
	mu sync.Mutex

	Response *ports.DirectionsResponse
	Err      error
	// Places maps geocode queries (case-insensitive) to coordinates.
	Places map[string]domain.Coordinate

	SpeedMetersPerSecond float64
	// TrafficFactor scales synthesized durations into duration-in-traffic.
	TrafficFactor float64

	requests     []ports.DirectionsRequest
	geocodeCalls []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Places:               map[string]domain.Coordinate{},
		SpeedMetersPerSecond: 10,
		TrafficFactor:        1,
	}
}

func (p *MockProvider) Directions(ctx context.Context, req ports.DirectionsRequest) (*ports.DirectionsResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	canned, cannedErr := p.Response, p.Err
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cannedErr != nil {
		return nil, cannedErr
	}
	if canned != nil {
		return canned, nil
	}

	points := make([]domain.Coordinate, 0, len(req.Waypoints)+2)
	points = append(points, req.Origin)
	points = append(points, req.Waypoints...)
	points = append(points, req.Destination)

	legs := make([]domain.Leg, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		legs = append(legs, p.straightLeg(points[i], points[i+1]))
	}

	route := ports.DirectionsRoute{
		Summary:          "mock",
		OverviewPolyline: geo.EncodePolyline(points),
		Legs:             legs,
	}
	if req.OptimizeWaypointOrder {
		route.WaypointOrder = make([]int, len(req.Waypoints))
		for i := range route.WaypointOrder {
			route.WaypointOrder[i] = i
		}
	}

	return &ports.DirectionsResponse{Status: ports.StatusOK, Routes: []ports.DirectionsRoute{route}}, nil
}

func (p *MockProvider) straightLeg(from, to domain.Coordinate) domain.Leg {
	meters := geo.DistanceMeters(from, to)
	seconds := int(math.Round(meters / p.SpeedMetersPerSecond))

	return domain.Leg{
		DistanceMeters:           int(math.Round(meters)),
		DurationSeconds:          seconds,
		DurationInTrafficSeconds: int(math.Round(float64(seconds) * p.TrafficFactor)),
		Polyline:                 []domain.Coordinate{from, to},
		Steps: []domain.Step{
			{Text: "Head to " + to.LatLng(), DistanceMeters: int(math.Round(meters))},
		},
	}
}

func (p *MockProvider) Geocode(ctx context.Context, query string) (domain.Coordinate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.geocodeCalls = append(p.geocodeCalls, query)

	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	if p.Err != nil {
		return domain.Coordinate{}, p.Err
	}

	c, ok := p.Places[strings.ToLower(strings.TrimSpace(query))]
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("mock geocode %q: %w", query, domain.ErrEmptyResult)
	}
	return c, nil
}

// Requests returns a copy of every directions request received so far.
func (p *MockProvider) Requests() []ports.DirectionsRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]ports.DirectionsRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// GeocodeCalls returns the queries passed to Geocode so far.
func (p *MockProvider) GeocodeCalls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.geocodeCalls))
	copy(out, p.geocodeCalls)
	return out
}
