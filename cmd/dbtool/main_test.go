package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
)

func TestRunSeedsConfiguredDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PATH", filepath.Join(dir, "cache", "app.db"))
	seed := filepath.Join(dir, "geocodes.json")
	t.Setenv("SEED_PATH", seed)
	require.NoError(t, os.WriteFile(seed, []byte(`[{"address": "Coit Tower", "latitude": 37.8024, "longitude": -122.4058}]`), 0o644))

	cfg := config.Load()
	require.Equal(t, seed, cfg.Database.SeedPath)

	ctx := context.Background()
	require.NoError(t, run(ctx, cfg.Database, cfg.Database.SeedPath, false, zaptest.NewLogger(t)))

	conn, err := db.OpenSQLite(ctx, cfg.Database.Path)
	require.NoError(t, err)
	defer conn.Close()

	got, err := cache.NewSqliteGeocodeCache(conn).GetMany(ctx, []string{"coit tower"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 37.8024, Lng: -122.4058}, got["coit tower"])
}

func TestRunReturnsErrorsInsteadOfExiting(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DatabaseConfig{Path: filepath.Join(dir, "app.db")}
	log := zaptest.NewLogger(t)

	err := run(context.Background(), cfg, filepath.Join(dir, "missing.json"), false, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")

	// Schema-only never touches the seed file.
	assert.NoError(t, run(context.Background(), cfg, filepath.Join(dir, "missing.json"), true, log))
}
