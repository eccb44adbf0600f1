package domain

// A single turn-by-turn instruction inside a leg.
type Step struct {
	Text           string
	DistanceMeters int
}

// Represents one provider-returned segment between two consecutive route points.
// DurationInTrafficSeconds is usually >= DurationSeconds but the provider does not
// guarantee it.
type Leg struct {
	DistanceMeters           int
	DurationSeconds          int
	DurationInTrafficSeconds int
	Polyline                 []Coordinate
	Steps                    []Step
}

// A stop annotated with its position in the optimized visiting order.
type Waypoint struct {
	Coordinate
	Name       string
	Address    string
	VisitOrder int
}

// Bounds is the south-west / north-east box enclosing a route geometry.
type Bounds struct {
	SouthWest Coordinate
	NorthEast Coordinate
}

// Represents the aggregated multi-stop itinerary.
// A RouteInfo is built fresh on every optimize-and-fetch call and is never
// mutated afterwards: a newer route replaces it wholesale.
type RouteInfo struct {
	Coordinates []Coordinate
	Steps       []Step
	Bounds      Bounds

	TotalDistanceMeters           int
	TotalDurationSeconds          int
	TotalDurationInTrafficSeconds int
	HasTrafficDelay               bool
	TrafficDelaySeconds           int

	ColorTag  string
	Waypoints []Waypoint
	// Order is the permutation of the caller's stops that produced Waypoints.
	Order []int

	NextLegDistanceMeters           int
	NextLegDurationSeconds          int
	NextLegDurationInTrafficSeconds int
}

// Input of the stop-order optimizer. Stops are unordered semantically.
type StopOrderRequest struct {
	Origin         Coordinate
	Stops          []Stop
	ReturnToOrigin bool
}

// One whole-route alternative returned by the directions provider.
// Index is the provider's original position and drives the color tag.
type AlternativeRoute struct {
	Index       int
	Summary     string
	Coordinates []Coordinate
	Steps       []Step

	TotalDistanceMeters           int
	TotalDurationSeconds          int
	TotalDurationInTrafficSeconds int
	HasTrafficDelay               bool
	TrafficDelaySeconds           int

	ColorTag string
}

// Preference selects how alternatives are ranked. The zero value keeps provider order.
type Preference string

const (
	PreferenceNone     Preference = ""
	PreferenceFastest  Preference = "fastest"
	PreferenceShortest Preference = "shortest"
	PreferenceScenic   Preference = "scenic"
)
