package dto

import "route-optimizer-service/internal/domain"

type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

func (c Coordinate) Domain() domain.Coordinate {
	return domain.Coordinate{Lat: c.Latitude, Lng: c.Longitude}
}

func FromCoordinate(c domain.Coordinate) Coordinate {
	return Coordinate{Latitude: c.Lat, Longitude: c.Lng}
}

// StopRequest carries coordinates, an address to geocode, or both.
type StopRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Name      string   `json:"name" validate:"max=200"`
	Address   string   `json:"address" validate:"required_without=Latitude,max=300"`
}

// PartialCoordinate reports a stop that sets only one of latitude and longitude.
func (s StopRequest) PartialCoordinate() bool {
	return (s.Latitude == nil) != (s.Longitude == nil)
}

func (s StopRequest) Domain() domain.Stop {
	out := domain.Stop{Name: s.Name, Address: s.Address}
	if s.Latitude != nil && s.Longitude != nil {
		out.Coordinate = domain.Coordinate{Lat: *s.Latitude, Lng: *s.Longitude}
	}
	return out
}

type RouteRequest struct {
	Origin         Coordinate    `json:"origin"`
	Stops          []StopRequest `json:"stops" validate:"required,min=1,max=25,dive"`
	ReturnToOrigin bool          `json:"return_to_origin"`
}

func (r RouteRequest) DomainStops() []domain.Stop {
	out := make([]domain.Stop, 0, len(r.Stops))
	for _, s := range r.Stops {
		out = append(out, s.Domain())
	}
	return out
}

type StopResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type OrderResponse struct {
	// Order lists indexes into the request's stops in visiting order.
	Order []int          `json:"order"`
	Stops []StopResponse `json:"stops"`
	// Great-circle length of the visiting order, closing at the origin when requested.
	EstimatedDistanceKm float64 `json:"estimated_distance_km"`
}

type StepResponse struct {
	Instruction    string  `json:"instruction"`
	DistanceMeters int     `json:"distance_meters"`
	DistanceKm     float64 `json:"distance_km"`
}

type WaypointResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Name       string  `json:"name,omitempty"`
	Address    string  `json:"address,omitempty"`
	VisitOrder int     `json:"visit_order"`
}

type BoundsResponse struct {
	SouthWest Coordinate `json:"south_west"`
	NorthEast Coordinate `json:"north_east"`
}

type RouteResponse struct {
	Order       []int              `json:"order"`
	Waypoints   []WaypointResponse `json:"waypoints"`
	Coordinates []Coordinate       `json:"coordinates"`
	Steps       []StepResponse     `json:"steps"`
	Bounds      BoundsResponse     `json:"bounds"`
	ColorTag    string             `json:"color_tag"`

	TotalDistanceMeters           int  `json:"total_distance_meters"`
	TotalDurationSeconds          int  `json:"total_duration_seconds"`
	TotalDurationInTrafficSeconds int  `json:"total_duration_in_traffic_seconds"`
	HasTrafficDelay               bool `json:"has_traffic_delay"`
	TrafficDelaySeconds           int  `json:"traffic_delay_seconds"`

	NextLegDistanceMeters           int `json:"next_leg_distance_meters"`
	NextLegDurationSeconds          int `json:"next_leg_duration_seconds"`
	NextLegDurationInTrafficSeconds int `json:"next_leg_duration_in_traffic_seconds"`

	TotalDistanceKm           float64 `json:"total_distance_km"`
	TotalDurationMin          int     `json:"total_duration_min"`
	TotalDurationInTrafficMin int     `json:"total_duration_in_traffic_min"`
	TrafficDelayMin           int     `json:"traffic_delay_min"`
	NextLegDistanceKm         float64 `json:"next_leg_distance_km"`
	NextLegDurationMin        int     `json:"next_leg_duration_min"`
}

type AlternativesRequest struct {
	Origin      Coordinate `json:"origin"`
	Destination Coordinate `json:"destination"`
	Preference  string     `json:"preference" validate:"omitempty,oneof=fastest shortest scenic"`
	// Command is a spoken reroute request such as "reroute quickest". It is
	// only consulted when Preference is empty.
	Command     string     `json:"command" validate:"max=300"`
}

type AlternativeResponse struct {
	Index       int            `json:"index"`
	Summary     string         `json:"summary"`
	ColorTag    string         `json:"color_tag"`
	Coordinates []Coordinate   `json:"coordinates"`
	Steps       []StepResponse `json:"steps"`

	TotalDistanceMeters           int  `json:"total_distance_meters"`
	TotalDurationSeconds          int  `json:"total_duration_seconds"`
	TotalDurationInTrafficSeconds int  `json:"total_duration_in_traffic_seconds"`
	HasTrafficDelay               bool `json:"has_traffic_delay"`
	TrafficDelaySeconds           int  `json:"traffic_delay_seconds"`

	TotalDistanceKm           float64 `json:"total_distance_km"`
	TotalDurationInTrafficMin int     `json:"total_duration_in_traffic_min"`
}

type ListAlternativesResponse struct {
	Preference string                `json:"preference"`
	Routes     []AlternativeResponse `json:"routes"`
}

type GeocodeResponse struct {
	Query     string  `json:"query"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
