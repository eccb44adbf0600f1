package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Provider  ProviderConfig
	Optimizer OptimizerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	// URL selects PostgreSQL when set; otherwise the SQLite file at Path is used.
	URL      string
	Path     string
	SeedPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type OptimizerConfig struct {
	MaxPasses int
}

type LogConfig struct {
	Level string
}

// LoadDotEnv loads .env into the process environment. A missing file is reported
// as false and is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("SEED_PATH", "data/seeds/geocodes.json")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MAPS_BASE_URL", "https://maps.googleapis.com")
	v.SetDefault("PROVIDER_TIMEOUT_SECONDS", 10)
	v.SetDefault("OPTIMIZER_MAX_PASSES", 1000)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	return &Config{
		Server: ServerConfig{
			Port:               v.GetString("PORT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:      strings.TrimSpace(v.GetString("DATABASE_URL")),
			Path:     v.GetString("DB_PATH"),
			SeedPath: v.GetString("SEED_PATH"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Provider: ProviderConfig{
			APIKey:  strings.TrimSpace(v.GetString("GOOGLE_MAPS_API_KEY")),
			BaseURL: v.GetString("MAPS_BASE_URL"),
			Timeout: time.Duration(v.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second,
		},
		Optimizer: OptimizerConfig{
			MaxPasses: v.GetInt("OPTIMIZER_MAX_PASSES"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
