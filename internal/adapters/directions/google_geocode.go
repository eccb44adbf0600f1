package directions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text place query to the coordinates of the first match.
func (g *GoogleProvider) Geocode(ctx context.Context, query string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinate{}, fmt.Errorf("google geocode: %w: empty query", domain.ErrInvalidInput)
	}

	var raw geocodeResponse
	if err := g.getJSON(ctx, geocodePath, map[string][]string{"address": {query}}, &raw); err != nil {
		return domain.Coordinate{}, fmt.Errorf("google geocode %q: %w: %w", query, domain.ErrRouteUnavailable, err)
	}

	switch raw.Status {
	case ports.StatusOK:
	case "ZERO_RESULTS":
		return domain.Coordinate{}, fmt.Errorf("google geocode %q: %w", query, domain.ErrEmptyResult)
	default:
		return domain.Coordinate{}, fmt.Errorf("google geocode %q: %w", query,
			&ports.StatusError{Status: raw.Status, Message: raw.ErrorMessage})
	}

	if len(raw.Results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("google geocode %q: %w", query, domain.ErrEmptyResult)
	}

	loc := raw.Results[0].Geometry.Location
	c := domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
	if !c.Valid() {
		return domain.Coordinate{}, errors.New("google geocode: provider returned out-of-range coordinate")
	}
	return c, nil
}
