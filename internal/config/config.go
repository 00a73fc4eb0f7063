package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBPath       string
	BoundaryPath string
	JWTSecret    string

	// PlaceCacheDSN is the optional Postgres place cache; empty disables it
	PlaceCacheDSN string

	// DedupeRadiusMeters is the place-merge proximity threshold
	DedupeRadiusMeters float64

	// AnalyzeRateLimit is the per-IP request budget per minute on the
	// analyze endpoint
	AnalyzeRateLimit int
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/runs.db"
	}

	boundaryPath := os.Getenv("BOUNDARY_PATH")
	if boundaryPath == "" {
		boundaryPath = "./data/countries.geojson"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:               port,
		DBPath:             dbPath,
		BoundaryPath:       boundaryPath,
		JWTSecret:          jwtSecret,
		PlaceCacheDSN:      os.Getenv("PLACE_CACHE_DSN"),
		DedupeRadiusMeters: floatEnv("DEDUPE_RADIUS_METERS", 100),
		AnalyzeRateLimit:   intEnv("ANALYZE_RATE_LIMIT", 10),
	}
}

func floatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
