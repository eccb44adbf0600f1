package handlers

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// SessionHeader names the client session whose requests supersede each other.
const SessionHeader = "X-Route-Session"

// RouteHandler serves stop ordering, optimized routes and route alternatives.
type RouteHandler struct {
	Provider  ports.DirectionsProvider
	Geocoder  ports.Geocoder
	Sequencer *services.Sequencer
	MaxPasses int
	Logger    *zap.Logger
}

func (h *RouteHandler) optimizerOptions() []services.OptimizerOption {
	if h.MaxPasses > 0 {
		return []services.OptimizerOption{services.WithMaxPasses(h.MaxPasses)}
	}
	return nil
}

// sequenced runs fn under the session's sequence guard when the client sent a
// session header. A result produced after a newer request of the same session
// began is reported as domain.ErrSuperseded.
func (h *RouteHandler) sequenced(r *http.Request, fn func(ctx context.Context) error) error {
	session := r.Header.Get(SessionHeader)
	if session == "" || h.Sequencer == nil {
		return fn(r.Context())
	}

	ticket, ctx, err := h.Sequencer.Begin(r.Context(), session)
	if err != nil {
		return err
	}
	defer h.Sequencer.Done(ticket)

	runErr := fn(ctx)

	current, err := h.Sequencer.Current(r.Context(), ticket)
	if err != nil {
		h.Logger.Warn("sequence check failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("session", ticket.Session),
			zap.Error(err),
		)
		return runErr
	}
	if !current {
		return fmt.Errorf("session %q request %d: %w", ticket.Session, ticket.Seq, domain.ErrSuperseded)
	}
	return runErr
}

func (h *RouteHandler) decodeRouteRequest(w http.ResponseWriter, r *http.Request) (dto.RouteRequest, error) {
	var req dto.RouteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return req, err
	}
	for i, s := range req.Stops {
		if s.PartialCoordinate() {
			return req, fmt.Errorf("%w: stops[%d] needs both latitude and longitude", domain.ErrInvalidInput, i)
		}
	}
	return req, nil
}

// Order returns the optimized visiting order without contacting the directions provider.
func (h *RouteHandler) Order(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRouteRequest(w, r)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	stops, err := services.ResolveStops(r.Context(), h.Geocoder, req.DomainStops())
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	origin := req.Origin.Domain()
	order := services.OptimizeOrder(domain.StopOrderRequest{
		Origin:         origin,
		Stops:          stops,
		ReturnToOrigin: req.ReturnToOrigin,
	}, h.optimizerOptions()...)

	res := dto.OrderResponse{
		Order: order,
		Stops: make([]dto.StopResponse, 0, len(order)),
	}

	var meters float64
	prev := origin
	for _, idx := range order {
		s := stops[idx]
		res.Stops = append(res.Stops, dto.StopResponse{
			Latitude:  s.Lat,
			Longitude: s.Lng,
			Name:      s.Name,
			Address:   s.Address,
		})
		meters += geo.DistanceMeters(prev, s.Coordinate)
		prev = s.Coordinate
	}
	if req.ReturnToOrigin {
		meters += geo.DistanceMeters(prev, origin)
	}
	res.EstimatedDistanceKm = domain.Kilometers(int(meters + 0.5))

	writeJSON(w, r, http.StatusOK, res)
}

// Optimize orders the stops and fetches the driving route for that order.
// ?format=geojson returns the route as a GeoJSON FeatureCollection.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "format must be json or geojson")
		return
	}

	req, err := h.decodeRouteRequest(w, r)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	var route *domain.RouteInfo
	err = h.sequenced(r, func(ctx context.Context) error {
		stops, err := services.ResolveStops(ctx, h.Geocoder, req.DomainStops())
		if err != nil {
			return err
		}

		route, err = services.ComputeDeliveryRoute(
			ctx, h.Provider, req.Origin.Domain(), stops, req.ReturnToOrigin, h.optimizerOptions()...,
		)
		return err
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if route == nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "at least one stop is required")
		return
	}

	if format == "geojson" {
		writeJSON(w, r, http.StatusOK, geo.RouteFeatureCollection(route))
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRouteResponse(route))
}

// Alternatives returns the provider's whole-route alternatives ranked by preference.
func (h *RouteHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	var req dto.AlternativesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	pref, err := services.ParsePreference(req.Preference)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}
	if pref == domain.PreferenceNone && req.Command != "" {
		p, ok := services.PreferenceFromCommand(req.Command)
		if !ok {
			writeServiceError(w, r, h.Logger, fmt.Errorf("%w: command %q is not a reroute request", domain.ErrInvalidInput, req.Command))
			return
		}
		pref = p
	}

	var routes []domain.AlternativeRoute
	err = h.sequenced(r, func(ctx context.Context) error {
		var err error
		routes, err = services.FetchAlternatives(ctx, h.Provider, req.Origin.Domain(), req.Destination.Domain(), pref)
		return err
	})
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	res := dto.ListAlternativesResponse{
		Preference: string(pref),
		Routes:     make([]dto.AlternativeResponse, 0, len(routes)),
	}
	for _, a := range routes {
		res.Routes = append(res.Routes, dto.NewAlternativeResponse(a))
	}

	writeJSON(w, r, http.StatusOK, res)
}
