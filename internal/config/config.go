package config

import (
	"os"
	"strings"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr string
	// DatabaseURL selects the Postgres store when set; the in-memory
	// catalog is used otherwise.
	DatabaseURL string
	// DatabaseDriver is the database/sql driver name: "pgx" or "postgres".
	DatabaseDriver     string
	JWTSecret          string
	SeedFile           string
	Locale             string
	AllowResetProducts bool
	CORSOrigins        string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:               getenv("CATALOG_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseDriver:     getenv("CATALOG_DB_DRIVER", "pgx"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SeedFile:           os.Getenv("CATALOG_SEED_FILE"),
		Locale:             getenv("CATALOG_LOCALE", "pt-BR"),
		AllowResetProducts: os.Getenv("ALLOW_RESET_PRODUCTS") == "1",
		CORSOrigins:        getenv("CORS_ORIGINS", "*"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
