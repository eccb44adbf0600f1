package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping normalized addresses to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT address, lat, lng
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store address -> coordinate mappings, updating rows that already exist.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) (err error) {
	defer obs.Time(ctx, "geocode.sql.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lat, lng)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		key := NormalizeAddress(addr)
		if key == "" {
			return errors.New("insert geocode cache: empty address key")
		}
		if _, err := stmt.ExecContext(ctx, key, c.Lat, c.Lng); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}
	return nil
}
