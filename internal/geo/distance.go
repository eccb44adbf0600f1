// Package geo holds coordinate math and route geometry helpers.
package geo

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle distance between a and b.
// It is only used to build optimizer cost matrices; display distances come from
// the directions provider. Out-of-range input yields undefined results.
func DistanceMeters(a, b domain.Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	// Squared terms keep the formula symmetric in a and b.
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
