package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"route-optimizer-service/internal/config"
)

func TestRunRequiresAPIKey(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Path: t.TempDir() + "/app.db"}}

	err := run(context.Background(), cfg, zaptest.NewLogger(t))

	assert.EqualError(t, err, "GOOGLE_MAPS_API_KEY is required")
}
