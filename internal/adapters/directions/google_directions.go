package directions

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

type valueField struct {
	Value int `json:"value"`
}

type polylineField struct {
	Points string `json:"points"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary          string        `json:"summary"`
		OverviewPolyline polylineField `json:"overview_polyline"`
		WaypointOrder    []int         `json:"waypoint_order"`
		Legs             []struct {
			Distance          valueField  `json:"distance"`
			Duration          valueField  `json:"duration"`
			DurationInTraffic *valueField `json:"duration_in_traffic"`
			Steps             []struct {
				HTMLInstructions string        `json:"html_instructions"`
				Distance         valueField    `json:"distance"`
				Polyline         polylineField `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// plainInstruction turns "Turn <b>left</b> onto <b>Main St</b>" into "Turn left onto Main St".
func plainInstruction(s string) string {
	s = htmlTag.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// directionsQuery encodes req as Directions API query parameters.
func directionsQuery(req ports.DirectionsRequest) map[string][]string {
	q := map[string][]string{
		"origin":      {req.Origin.LatLng()},
		"destination": {req.Destination.LatLng()},
		"mode":        {"driving"},
	}

	if len(req.Waypoints) > 0 {
		parts := make([]string, 0, len(req.Waypoints)+1)
		if req.OptimizeWaypointOrder {
			parts = append(parts, "optimize:true")
		}
		for _, w := range req.Waypoints {
			parts = append(parts, w.LatLng())
		}
		q["waypoints"] = []string{strings.Join(parts, "|")}
	}

	if req.Alternatives {
		q["alternatives"] = []string{"true"}
	}
	if req.DepartureTime != "" {
		q["departure_time"] = []string{req.DepartureTime}
	}

	return q
}

// Directions fetches driving routes. Non-OK provider statuses are returned in the
// response, not as errors; only transport and decoding failures are errors.
func (g *GoogleProvider) Directions(
	ctx context.Context,
	req ports.DirectionsRequest,
) (_ *ports.DirectionsResponse, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	var raw directionsResponse
	if err := g.getJSON(ctx, directionsPath, directionsQuery(req), &raw); err != nil {
		return nil, fmt.Errorf("google directions: %w", err)
	}

	out := &ports.DirectionsResponse{
		Status:       raw.Status,
		ErrorMessage: raw.ErrorMessage,
		Routes:       make([]ports.DirectionsRoute, 0, len(raw.Routes)),
	}

	for ri, r := range raw.Routes {
		route := ports.DirectionsRoute{
			Summary:          r.Summary,
			OverviewPolyline: r.OverviewPolyline.Points,
			WaypointOrder:    r.WaypointOrder,
			Legs:             make([]domain.Leg, 0, len(r.Legs)),
		}

		for li, l := range r.Legs {
			leg := domain.Leg{
				DistanceMeters:  l.Distance.Value,
				DurationSeconds: l.Duration.Value,
				// Without traffic data the free-flow duration is the best estimate.
				DurationInTrafficSeconds: l.Duration.Value,
				Steps:                    make([]domain.Step, 0, len(l.Steps)),
			}
			if l.DurationInTraffic != nil {
				leg.DurationInTrafficSeconds = l.DurationInTraffic.Value
			}

			for _, s := range l.Steps {
				leg.Steps = append(leg.Steps, domain.Step{
					Text:           plainInstruction(s.HTMLInstructions),
					DistanceMeters: s.Distance.Value,
				})

				pts, err := geo.DecodePolyline(s.Polyline.Points)
				if err != nil {
					g.logger.Warn("skipping unreadable step polyline",
						zap.Int("route", ri),
						zap.Int("leg", li),
						zap.Error(err),
					)
					continue
				}
				for _, p := range pts {
					if n := len(leg.Polyline); n > 0 && leg.Polyline[n-1] == p {
						continue
					}
					leg.Polyline = append(leg.Polyline, p)
				}
			}

			route.Legs = append(route.Legs, leg)
		}

		out.Routes = append(out.Routes, route)
	}

	g.logger.Debug("google directions fetched",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("status", out.Status),
		zap.Int("routes", len(out.Routes)),
		zap.Int("waypoints", len(req.Waypoints)),
		zap.String("departure_time", req.DepartureTime),
		zap.Bool("alternatives", req.Alternatives),
	)

	return out, nil
}
