package directions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com"

	directionsPath = "/maps/api/directions/json"
	geocodePath    = "/maps/api/geocode/json"
)

// GoogleConfig configures the Google Maps web service adapter.
type GoogleConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// Retries on transient failures; zero values take the defaults.
	MaxAttempts    int
	InitialBackoff time.Duration
}

// GoogleProvider implements ports.DirectionsProvider and ports.Geocoder using the
// Google Maps Directions and Geocoding web services.
//
// It coordinates:
//   - Request encoding (waypoints, alternatives, departure time)
//   - External API calls with retry/backoff
//   - Decoding provider payloads into domain legs and steps
//
// The provider is safe for concurrent use.
type GoogleProvider struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
	logger         *zap.Logger
}

func NewGoogleProvider(cfg GoogleConfig, logger *zap.Logger) (*GoogleProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	provider := &GoogleProvider{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
		logger:         logger,
	}
	if provider.baseURL == "" {
		provider.baseURL = DefaultBaseURL
	}
	if cfg.Timeout > 0 {
		provider.session.Timeout = cfg.Timeout
	}
	if cfg.MaxAttempts > 0 {
		provider.maxAttempts = cfg.MaxAttempts
	}
	if cfg.InitialBackoff > 0 {
		provider.initialBackoff = cfg.InitialBackoff
	}

	return provider, nil
}
