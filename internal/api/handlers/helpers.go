package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Error codes returned in dto.ErrorResponse.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodeRouteUnavailable = "ROUTE_UNAVAILABLE"
	CodeEmptyResult      = "EMPTY_RESULT"
	CodeSuperseded       = "SUPERSEDED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeInternal         = "INTERNAL"
)

// Maximum accepted request body size.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg, Code: code})
}

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrSuperseded):
		writeError(w, r, http.StatusConflict, CodeSuperseded, "a newer request for this session was issued")
	case errors.Is(err, domain.ErrEmptyResult):
		logger.Warn("provider returned no route", fields...)
		writeError(w, r, http.StatusBadGateway, CodeEmptyResult, "provider returned no result")
	case errors.Is(err, domain.ErrRouteUnavailable):
		logger.Warn("route unavailable", fields...)
		writeError(w, r, http.StatusBadGateway, CodeRouteUnavailable, "route unavailable")
	default:
		logger.Error("request failed", fields...)
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// decodeJSON strictly decodes a single JSON object into v and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json body: %v", domain.ErrInvalidInput, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must contain only one JSON object", domain.ErrInvalidInput)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err.Error()
	}
	fe := ve[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
}
