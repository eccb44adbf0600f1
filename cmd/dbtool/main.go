package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
)

// dbtool initializes the geocode cache schema and preloads it from a seed file.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	seedPath := flag.String("seed", cfg.Database.SeedPath, "geocode seed JSON file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg.Database, *seedPath, *schemaOnly, log); err != nil {
		log.Error("dbtool failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(ctx context.Context, cfg config.DatabaseConfig, seedPath string, schemaOnly bool, log *zap.Logger) error {
	conn, store, err := open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization: %w", err)
	}
	log.Info("schema ready")

	if schemaOnly {
		return nil
	}

	log.Info("seeding geocode cache", zap.String("path", seedPath))
	n, err := repositories.SeedFromJSON(ctx, store, seedPath)
	if err != nil {
		return err
	}
	log.Info("seeding complete", zap.Int("addresses", n))
	return nil
}

func open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, ports.GeocodeCache, error) {
	if cfg.URL != "" {
		conn, err := db.OpenPostgres(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		return conn, cache.NewSQLGeocodeCache(conn), nil
	}

	conn, err := db.OpenSQLite(ctx, cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return conn, cache.NewSqliteGeocodeCache(conn), nil
}
