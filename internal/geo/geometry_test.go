package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([]domain.Coordinate{
		{Lat: 14.60, Lng: 121.00},
		{Lat: 14.55, Lng: 121.05},
		{Lat: 14.58, Lng: 120.98},
	})

	assert.Equal(t, domain.Coordinate{Lat: 14.55, Lng: 120.98}, b.SouthWest)
	assert.Equal(t, domain.Coordinate{Lat: 14.60, Lng: 121.05}, b.NorthEast)
}

func TestBoundsOfEmpty(t *testing.T) {
	assert.Equal(t, domain.Bounds{}, BoundsOf(nil))
}

func TestRouteFeatureCollection(t *testing.T) {
	route := &domain.RouteInfo{
		Coordinates: []domain.Coordinate{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}},
		ColorTag:    "#007AFF",
		Waypoints: []domain.Waypoint{
			{Coordinate: domain.Coordinate{Lat: 3, Lng: 4}, Name: "Depot B", VisitOrder: 1},
		},
	}

	fc := RouteFeatureCollection(route)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "route", fc.Features[0].Properties["kind"])
	assert.Equal(t, "Depot B", fc.Features[1].Properties["name"])
	assert.Equal(t, 1, fc.Features[1].Properties["visit_order"])

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"LineString"`)
	assert.Contains(t, string(raw), `[2,1]`)
}
