package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

type GeocodeHandler struct {
	Geocoder ports.Geocoder
	Logger   *zap.Logger
}

// Geocode resolves ?q= to a coordinate.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "q is required")
		return
	}
	if len(q) > 300 {
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, "q must be at most 300 characters")
		return
	}

	c, err := h.Geocoder.Geocode(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, h.Logger, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GeocodeResponse{Query: q, Latitude: c.Lat, Longitude: c.Lng})
}
