package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SQLite backed cache mapping normalized addresses to coordinates.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given addresses. Keys of the result are normalized.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, a := range uniq {
		ph[i] = "?"
		args[i] = a
	}

	// SQLite cannot bind a slice to IN (...); only placeholders are interpolated.
	q := fmt.Sprintf(`
	SELECT address, lat, lng
	FROM geocode_cache
	WHERE address IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanCoordinates(rows, len(uniq))
}

// Store address -> coordinate mappings, replacing existing rows.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) (err error) {
	defer obs.Time(ctx, "geocode.sqlite.PutMany")(&err)

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
	INSERT OR REPLACE INTO geocode_cache (address, lat, lng)
	VALUES (?, ?, ?);
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

func scanCoordinates(rows *sql.Rows, size int) (map[string]domain.Coordinate, error) {
	out := make(map[string]domain.Coordinate, size)
	for rows.Next() {
		var addr string
		var c domain.Coordinate
		if err := rows.Scan(&addr, &c.Lat, &c.Lng); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}
