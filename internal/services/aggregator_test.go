package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/directions"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

var (
	testOrigin = domain.Coordinate{Lat: 14.5995, Lng: 120.9842}
	testStops  = []domain.Stop{
		{Coordinate: domain.Coordinate{Lat: 14.6091, Lng: 121.0223}, Name: "A", Address: "1 Alpha St"},
		{Coordinate: domain.Coordinate{Lat: 14.5547, Lng: 121.0244}, Name: "B", Address: "2 Bravo St"},
	}
)

func leg(distance, duration, inTraffic int, steps ...string) domain.Leg {
	l := domain.Leg{
		DistanceMeters:           distance,
		DurationSeconds:          duration,
		DurationInTrafficSeconds: inTraffic,
	}
	for _, s := range steps {
		l.Steps = append(l.Steps, domain.Step{Text: s, DistanceMeters: distance})
	}
	return l
}

func okResponse(legs ...domain.Leg) *ports.DirectionsResponse {
	return &ports.DirectionsResponse{
		Status: ports.StatusOK,
		Routes: []ports.DirectionsRoute{{
			OverviewPolyline: geo.EncodePolyline([]domain.Coordinate{testOrigin, testStops[0].Coordinate, testStops[1].Coordinate}),
			Legs:             legs,
		}},
	}
}

func TestBuildOptimizedRoute_Additivity(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = okResponse(leg(1000, 60, 60), leg(2000, 120, 120), leg(1500, 90, 90))

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, true)
	require.NoError(t, err)

	assert.Equal(t, 4500, route.TotalDistanceMeters)
	assert.Equal(t, 270, route.TotalDurationSeconds)
	assert.False(t, route.HasTrafficDelay)
	assert.Zero(t, route.TrafficDelaySeconds)
	assert.Equal(t, 4.5, domain.Kilometers(route.TotalDistanceMeters))
	assert.Equal(t, 5, domain.Minutes(route.TotalDurationSeconds))
}

func TestBuildOptimizedRoute_TrafficDelay(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = okResponse(leg(1000, 60, 70), leg(2000, 120, 130), leg(1500, 90, 100))

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, true)
	require.NoError(t, err)

	assert.Equal(t, 300, route.TotalDurationInTrafficSeconds)
	assert.True(t, route.HasTrafficDelay)
	assert.Equal(t, 30, route.TrafficDelaySeconds)
}

func TestBuildOptimizedRoute_TrafficFasterThanFreeFlow(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = okResponse(leg(1000, 60, 50), leg(2000, 120, 100))

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)
	require.NoError(t, err)

	assert.False(t, route.HasTrafficDelay)
	assert.Zero(t, route.TrafficDelaySeconds)
}

func TestBuildOptimizedRoute_ReturnLegAccounting(t *testing.T) {
	t.Run("return to origin", func(t *testing.T) {
		p := directions.NewMockProvider()
		p.Response = okResponse(leg(1000, 60, 60), leg(2000, 120, 120), leg(1500, 90, 90))

		route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, true)
		require.NoError(t, err)

		reqs := p.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, testOrigin, reqs[0].Origin)
		assert.Equal(t, testOrigin, reqs[0].Destination)
		assert.Equal(t, []domain.Coordinate{testStops[0].Coordinate, testStops[1].Coordinate}, reqs[0].Waypoints)
		assert.Equal(t, 4, 2+len(reqs[0].Waypoints))
		assert.Equal(t, ports.DepartureNow, reqs[0].DepartureTime)
		assert.False(t, reqs[0].OptimizeWaypointOrder)
		assert.Equal(t, 4500, route.TotalDistanceMeters)
	})

	t.Run("open route", func(t *testing.T) {
		// A stray closing leg from the provider is not counted.
		p := directions.NewMockProvider()
		p.Response = okResponse(leg(1000, 60, 60), leg(2000, 120, 120), leg(1500, 90, 90))

		route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)
		require.NoError(t, err)

		reqs := p.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, testStops[1].Coordinate, reqs[0].Destination)
		assert.Equal(t, 3, 2+len(reqs[0].Waypoints))
		assert.Equal(t, 3000, route.TotalDistanceMeters)
		assert.Equal(t, 180, route.TotalDurationSeconds)
	})
}

func TestBuildOptimizedRoute_NextLegAndWaypoints(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = okResponse(leg(1000, 60, 75, "Head north"), leg(2000, 120, 120, "Turn left", "Arrive"))

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)
	require.NoError(t, err)

	assert.Equal(t, 1000, route.NextLegDistanceMeters)
	assert.Equal(t, 60, route.NextLegDurationSeconds)
	assert.Equal(t, 75, route.NextLegDurationInTrafficSeconds)

	require.Len(t, route.Waypoints, 2)
	assert.Equal(t, "A", route.Waypoints[0].Name)
	assert.Equal(t, 1, route.Waypoints[0].VisitOrder)
	assert.Equal(t, "2 Bravo St", route.Waypoints[1].Address)
	assert.Equal(t, 2, route.Waypoints[1].VisitOrder)

	require.Len(t, route.Steps, 3)
	assert.Equal(t, "Arrive", route.Steps[2].Text)
	assert.Len(t, route.Coordinates, 3)
	assert.Equal(t, ColorForIndex(0), route.ColorTag)
	assert.InDelta(t, 14.6091, route.Bounds.NorthEast.Lat, 1e-5)
}

func TestBuildOptimizedRoute_FallsBackToLegGeometry(t *testing.T) {
	resp := okResponse(leg(1000, 60, 60), leg(2000, 120, 120))
	resp.Routes[0].OverviewPolyline = ""
	resp.Routes[0].Legs[0].Polyline = []domain.Coordinate{testOrigin, testStops[0].Coordinate}
	resp.Routes[0].Legs[1].Polyline = []domain.Coordinate{testStops[0].Coordinate, testStops[1].Coordinate}

	p := directions.NewMockProvider()
	p.Response = resp

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coordinate{testOrigin, testStops[0].Coordinate, testStops[1].Coordinate}, route.Coordinates)
}

func TestBuildOptimizedRoute_NoStops(t *testing.T) {
	p := directions.NewMockProvider()

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, nil, true)
	require.NoError(t, err)
	assert.Nil(t, route)
	assert.Empty(t, p.Requests())
}

func TestBuildOptimizedRoute_Errors(t *testing.T) {
	cases := []struct {
		name string
		resp *ports.DirectionsResponse
		err  error
		want error
	}{
		{name: "transport", err: errors.New("connection reset"), want: domain.ErrRouteUnavailable},
		{name: "status", resp: &ports.DirectionsResponse{Status: "OVER_QUERY_LIMIT"}, want: domain.ErrRouteUnavailable},
		{name: "no routes", resp: &ports.DirectionsResponse{Status: ports.StatusOK}, want: domain.ErrEmptyResult},
		{name: "no legs", resp: okResponse(), want: domain.ErrEmptyResult},
		{name: "missing legs", resp: okResponse(leg(1000, 60, 60)), want: domain.ErrRouteUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := directions.NewMockProvider()
			p.Response, p.Err = tc.resp, tc.err

			route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)
			assert.Nil(t, route)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuildOptimizedRoute_StatusErrorDetails(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = &ports.DirectionsResponse{Status: "REQUEST_DENIED", ErrorMessage: "key invalid"}

	_, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, false)

	var se *ports.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "REQUEST_DENIED", se.Status)
	assert.Equal(t, "key invalid", se.Message)
}

func TestBuildOptimizedRoute_SynthesizedLegs(t *testing.T) {
	p := directions.NewMockProvider()

	route, err := BuildOptimizedRoute(context.Background(), p, testOrigin, testStops, true)
	require.NoError(t, err)

	want := geo.DistanceMeters(testOrigin, testStops[0].Coordinate) +
		geo.DistanceMeters(testStops[0].Coordinate, testStops[1].Coordinate) +
		geo.DistanceMeters(testStops[1].Coordinate, testOrigin)
	assert.InDelta(t, want, float64(route.TotalDistanceMeters), 2)
	assert.Len(t, route.Coordinates, 4)
}
