package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"route-optimizer-service/internal/domain"
)

func lineString(coords []domain.Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point{c.Lng, c.Lat})
	}
	return ls
}

// BoundsOf returns the smallest box enclosing coords.
// An empty sequence yields zero bounds.
func BoundsOf(coords []domain.Coordinate) domain.Bounds {
	if len(coords) == 0 {
		return domain.Bounds{}
	}

	b := lineString(coords).Bound()
	return domain.Bounds{
		SouthWest: domain.Coordinate{Lat: b.Min.Lat(), Lng: b.Min.Lon()},
		NorthEast: domain.Coordinate{Lat: b.Max.Lat(), Lng: b.Max.Lon()},
	}
}

// RouteFeatureCollection renders a route as GeoJSON: the full polyline as a
// LineString feature followed by one Point feature per waypoint in visit order.
func RouteFeatureCollection(route *domain.RouteInfo) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if route == nil {
		return fc
	}

	line := geojson.NewFeature(lineString(route.Coordinates))
	line.Properties["kind"] = "route"
	line.Properties["color"] = route.ColorTag
	line.Properties["total_distance_meters"] = route.TotalDistanceMeters
	line.Properties["total_duration_seconds"] = route.TotalDurationSeconds
	line.Properties["total_duration_in_traffic_seconds"] = route.TotalDurationInTrafficSeconds
	fc.Append(line)

	for _, wp := range route.Waypoints {
		f := geojson.NewFeature(orb.Point{wp.Lng, wp.Lat})
		f.Properties["kind"] = "waypoint"
		f.Properties["name"] = wp.Name
		f.Properties["address"] = wp.Address
		f.Properties["visit_order"] = wp.VisitOrder
		fc.Append(f)
	}

	return fc
}
