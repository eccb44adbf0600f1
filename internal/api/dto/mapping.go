package dto

import "route-optimizer-service/internal/domain"

func coordinates(in []domain.Coordinate) []Coordinate {
	out := make([]Coordinate, 0, len(in))
	for _, c := range in {
		out = append(out, FromCoordinate(c))
	}
	return out
}

func steps(in []domain.Step) []StepResponse {
	out := make([]StepResponse, 0, len(in))
	for _, s := range in {
		out = append(out, StepResponse{
			Instruction:    s.Text,
			DistanceMeters: s.DistanceMeters,
			DistanceKm:     domain.Kilometers(s.DistanceMeters),
		})
	}
	return out
}

func NewRouteResponse(r *domain.RouteInfo) RouteResponse {
	waypoints := make([]WaypointResponse, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		waypoints = append(waypoints, WaypointResponse{
			Latitude:   w.Lat,
			Longitude:  w.Lng,
			Name:       w.Name,
			Address:    w.Address,
			VisitOrder: w.VisitOrder,
		})
	}

	return RouteResponse{
		Order:       r.Order,
		Waypoints:   waypoints,
		Coordinates: coordinates(r.Coordinates),
		Steps:       steps(r.Steps),
		Bounds: BoundsResponse{
			SouthWest: FromCoordinate(r.Bounds.SouthWest),
			NorthEast: FromCoordinate(r.Bounds.NorthEast),
		},
		ColorTag: r.ColorTag,

		TotalDistanceMeters:           r.TotalDistanceMeters,
		TotalDurationSeconds:          r.TotalDurationSeconds,
		TotalDurationInTrafficSeconds: r.TotalDurationInTrafficSeconds,
		HasTrafficDelay:               r.HasTrafficDelay,
		TrafficDelaySeconds:           r.TrafficDelaySeconds,

		NextLegDistanceMeters:           r.NextLegDistanceMeters,
		NextLegDurationSeconds:          r.NextLegDurationSeconds,
		NextLegDurationInTrafficSeconds: r.NextLegDurationInTrafficSeconds,

		TotalDistanceKm:           domain.Kilometers(r.TotalDistanceMeters),
		TotalDurationMin:          domain.Minutes(r.TotalDurationSeconds),
		TotalDurationInTrafficMin: domain.Minutes(r.TotalDurationInTrafficSeconds),
		TrafficDelayMin:           domain.Minutes(r.TrafficDelaySeconds),
		NextLegDistanceKm:         domain.Kilometers(r.NextLegDistanceMeters),
		NextLegDurationMin:        domain.Minutes(r.NextLegDurationSeconds),
	}
}

func NewAlternativeResponse(a domain.AlternativeRoute) AlternativeResponse {
	return AlternativeResponse{
		Index:       a.Index,
		Summary:     a.Summary,
		ColorTag:    a.ColorTag,
		Coordinates: coordinates(a.Coordinates),
		Steps:       steps(a.Steps),

		TotalDistanceMeters:           a.TotalDistanceMeters,
		TotalDurationSeconds:          a.TotalDurationSeconds,
		TotalDurationInTrafficSeconds: a.TotalDurationInTrafficSeconds,
		HasTrafficDelay:               a.HasTrafficDelay,
		TrafficDelaySeconds:           a.TrafficDelaySeconds,

		TotalDistanceKm:           domain.Kilometers(a.TotalDistanceMeters),
		TotalDurationInTrafficMin: domain.Minutes(a.TotalDurationInTrafficSeconds),
	}
}
