package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// InitSchema creates the geocode cache table. The DDL is valid for both SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}

type GeocodeSeed struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SeedFromJSON preloads the geocode cache from a JSON array of GeocodeSeed.
// It returns the number of seeded addresses.
func SeedFromJSON(ctx context.Context, cache ports.GeocodeCache, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed geocodes: read %q: %w", jsonPath, err)
	}

	var data []GeocodeSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed geocodes: parse json: %w", err)
	}

	rows := make(map[string]domain.Coordinate, len(data))
	for i, item := range data {
		addr := strings.TrimSpace(item.Address)
		if addr == "" {
			return 0, fmt.Errorf("seed geocodes: item at index %d: address cannot be empty", i+1)
		}

		c := domain.Coordinate{Lat: item.Latitude, Lng: item.Longitude}
		if !c.Valid() {
			return 0, fmt.Errorf("seed geocodes: item %q: coordinate out of range", addr)
		}
		rows[addr] = c
	}

	if err := cache.PutMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed geocodes: %w", err)
	}
	return len(rows), nil
}
