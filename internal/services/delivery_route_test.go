package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/directions"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/ports"
)

func TestComputeDeliveryRoute_VisitsStopsInOptimizedOrder(t *testing.T) {
	origin := domain.Coordinate{Lat: 0, Lng: 0}
	stops := []domain.Stop{
		{Coordinate: domain.Coordinate{Lat: 0, Lng: 0.03}, Name: "far"},
		{Coordinate: domain.Coordinate{Lat: 0, Lng: 0.01}, Name: "near"},
		{Coordinate: domain.Coordinate{Lat: 0, Lng: 0.02}, Name: "mid"},
	}
	p := directions.NewMockProvider()

	route, err := ComputeDeliveryRoute(context.Background(), p, origin, stops, false)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 0}, route.Order)
	require.Len(t, route.Waypoints, 3)
	assert.Equal(t, "near", route.Waypoints[0].Name)
	assert.Equal(t, "mid", route.Waypoints[1].Name)
	assert.Equal(t, "far", route.Waypoints[2].Name)

	reqs := p.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, stops[0].Coordinate, reqs[0].Destination)
	assert.Equal(t, []domain.Coordinate{stops[1].Coordinate, stops[2].Coordinate}, reqs[0].Waypoints)
}

func TestComputeDeliveryRoute_NoStops(t *testing.T) {
	route, err := ComputeDeliveryRoute(context.Background(), directions.NewMockProvider(), testOrigin, nil, true)
	require.NoError(t, err)
	assert.Nil(t, route)
}

func TestComputeDeliveryRoute_ProviderFailure(t *testing.T) {
	p := directions.NewMockProvider()
	p.Response = &ports.DirectionsResponse{Status: "UNKNOWN_ERROR"}

	_, err := ComputeDeliveryRoute(context.Background(), p, testOrigin, testStops, true)
	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)
}

func TestCompareAlternatives(t *testing.T) {
	line := geo.EncodePolyline([]domain.Coordinate{testOrigin, testStops[0].Coordinate})
	resp := &ports.DirectionsResponse{
		Status: ports.StatusOK,
		Routes: []ports.DirectionsRoute{
			{Summary: "EDSA", OverviewPolyline: line, Legs: []domain.Leg{leg(9000, 500, 500, "a")}},
			{Summary: "C5", OverviewPolyline: line, Legs: []domain.Leg{leg(7000, 280, 300, "a", "b")}},
			{Summary: "Roxas", OverviewPolyline: line, Legs: []domain.Leg{leg(8000, 300, 300, "a", "b", "c")}},
		},
	}

	got, err := CompareAlternatives(resp, domain.PreferenceFastest)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 0}, indexes(got))
	assert.Equal(t, "C5", got[0].Summary)
	assert.Equal(t, "#34C759", got[0].ColorTag)
	assert.True(t, got[0].HasTrafficDelay)
	assert.Equal(t, 20, got[0].TrafficDelaySeconds)
	assert.Len(t, got[0].Coordinates, 2)

	got, err = CompareAlternatives(resp, domain.PreferenceNone)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indexes(got))
	assert.Equal(t, "#007AFF", got[0].ColorTag)
}

func TestCompareAlternatives_Errors(t *testing.T) {
	_, err := CompareAlternatives(&ports.DirectionsResponse{Status: "NOT_FOUND"}, domain.PreferenceNone)
	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)

	_, err = CompareAlternatives(&ports.DirectionsResponse{Status: ports.StatusOK}, domain.PreferenceNone)
	assert.ErrorIs(t, err, domain.ErrEmptyResult)

	_, err = CompareAlternatives(&ports.DirectionsResponse{
		Status: ports.StatusOK,
		Routes: []ports.DirectionsRoute{{OverviewPolyline: "_p~iF~ps|U_ulL", Legs: []domain.Leg{leg(1, 1, 1)}}},
	}, domain.PreferenceNone)
	assert.ErrorIs(t, err, domain.ErrRouteUnavailable)
}

func TestFetchAlternatives_RequestsAlternatives(t *testing.T) {
	p := directions.NewMockProvider()
	dest := testStops[1].Coordinate

	got, err := FetchAlternatives(context.Background(), p, testOrigin, dest, domain.PreferenceShortest)
	require.NoError(t, err)
	require.Len(t, got, 1)

	reqs := p.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Alternatives)
	assert.Empty(t, reqs[0].Waypoints)
	assert.Equal(t, dest, reqs[0].Destination)
}
