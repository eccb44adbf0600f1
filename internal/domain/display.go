package domain

import "math"

// Kilometers converts meters to kilometers rounded to one decimal place.
func Kilometers(meters int) float64 {
	return math.Round(float64(meters)/100) / 10
}

// Minutes converts seconds to whole minutes, rounding to the nearest minute.
func Minutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60))
}
