package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"route-optimizer-service/internal/domain"
)

// DecodePolyline decodes the 5-decimal signed-varint delta encoding used by
// common mapping providers into a coordinate sequence.
func DecodePolyline(encoded string) ([]domain.Coordinate, error) {
	if encoded == "" {
		return []domain.Coordinate{}, nil
	}

	coords, rest, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("decode polyline: %d trailing bytes", len(rest))
	}

	out := make([]domain.Coordinate, 0, len(coords))
	for _, c := range coords {
		out = append(out, domain.Coordinate{Lat: c[0], Lng: c[1]})
	}
	return out, nil
}

// EncodePolyline is the inverse of DecodePolyline.
func EncodePolyline(coords []domain.Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	raw := make([][]float64, 0, len(coords))
	for _, c := range coords {
		raw = append(raw, []float64{c.Lat, c.Lng})
	}
	return string(polyline.EncodeCoords(raw))
}
