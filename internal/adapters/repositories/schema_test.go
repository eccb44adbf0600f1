package repositories_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "geocodes.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestInitSchemaAndSeed(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, repositories.InitSchema(ctx, conn))
	// Idempotent.
	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := cache.NewSqliteGeocodeCache(conn)
	n, err := repositories.SeedFromJSON(ctx, c, writeSeed(t, `[
		{"address": "Ferry Building", "latitude": 37.7955, "longitude": -122.3937},
		{"address": "Coit Tower", "latitude": 37.8024, "longitude": -122.4058}
	]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := c.GetMany(ctx, []string{"coit tower"})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 37.8024, Lng: -122.4058}, got["coit tower"])
}

func TestSeedFromJSON_Rejects(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := cache.NewSqliteGeocodeCache(conn)

	cases := map[string]string{
		"empty address": `[{"address": " ", "latitude": 1, "longitude": 1}]`,
		"out of range":  `[{"address": "x", "latitude": 91, "longitude": 1}]`,
		"bad json":      `{`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := repositories.SeedFromJSON(ctx, c, writeSeed(t, body))
			assert.Error(t, err)
		})
	}

	_, err = repositories.SeedFromJSON(ctx, c, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestInitSchema_NilDB(t *testing.T) {
	assert.Error(t, repositories.InitSchema(context.Background(), nil))
}
