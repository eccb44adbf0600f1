package domain

import "strconv"

// Immutable geographic coordinate (latitude, longitude) in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies within the WGS84 ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Return the coordinate as "lat,lng" for external API compatibility.
func (c Coordinate) LatLng() string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lng, 'f', 6, 64)
}

// A delivery stop supplied by the caller.
// The optimizer never mutates a Stop; it only reorders indexes into the caller's slice.
type Stop struct {
	Coordinate
	Name    string `json:"name"`
	Address string `json:"address"`
}
