package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/directions"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/sequence"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/platform/logger"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, SQL geocode cache, sequence store)
// behind ports and starts the HTTP server.
func main() {
	dotenv := config.LoadDotEnv()
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if !dotenv {
		log.Info("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("server stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Provider.APIKey == "" {
		return errors.New("GOOGLE_MAPS_API_KEY is required")
	}

	conn, geocodeCache, err := openGeocodeCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer conn.Close()

	provider, err := directions.NewGoogleProvider(directions.GoogleConfig{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Timeout: cfg.Provider.Timeout,
	}, log.Named("google"))
	if err != nil {
		return fmt.Errorf("init provider: %w", err)
	}

	store, closeStore, err := openSequenceStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	router := api.NewRouter(api.Deps{
		Provider:       provider,
		Geocoder:       cache.NewCachedGeocoder(geocodeCache, provider, log.Named("geocode")),
		Sequencer:      services.NewSequencer(store),
		MaxPasses:      cfg.Optimizer.MaxPasses,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Logger:         log.Named("http"),
	})

	// Write timeout leaves room for geocoding plus a retried provider call.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openGeocodeCache uses PostgreSQL when DATABASE_URL is set and the local SQLite
// file otherwise. The schema is created on startup for local runs.
func openGeocodeCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sql.DB, ports.GeocodeCache, error) {
	var (
		conn  *sql.DB
		store ports.GeocodeCache
		err   error
	)

	if cfg.Database.URL != "" {
		conn, err = db.OpenPostgres(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		store = cache.NewSQLGeocodeCache(conn)
		log.Info("geocode cache on postgres")
	} else {
		conn, err = db.OpenSQLite(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		store = cache.NewSqliteGeocodeCache(conn)
		log.Info("geocode cache on sqlite", zap.String("path", cfg.Database.Path))
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, store, nil
}

// openSequenceStore shares request sequence numbers through Redis when configured,
// so supersession works across replicas; otherwise numbers live in memory.
func openSequenceStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.SequenceStore, func(), error) {
	client, err := db.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("sequence store in memory")
		return sequence.NewMemoryStore(), func() {}, nil
	}

	log.Info("sequence store on redis", zap.String("addr", cfg.Redis.Addr))
	return sequence.NewRedisStore(client, sequence.DefaultTTL), func() { _ = client.Close() }, nil
}
