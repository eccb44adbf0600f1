package domain

import "errors"

var (
	// ErrInvalidInput marks a malformed request that would otherwise be silently miscomputed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRouteUnavailable marks a failed provider call or a non-OK provider status.
	ErrRouteUnavailable = errors.New("route unavailable")
	// ErrEmptyResult marks an OK provider response that carried no routes or legs.
	ErrEmptyResult = errors.New("empty result")
)

// ErrSuperseded marks a result discarded because a newer request from the same session was issued.
var ErrSuperseded = errors.New("superseded by a newer request")
