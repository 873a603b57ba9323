package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	// StrictIngredients rejects malformed recipe ingredient rows instead of
	// silently dropping them.
	StrictIngredients bool
}

func Load() *Config {
	// Missing .env files are fine, configuration may come from the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=brasserie port=5432 sslmode=disable"),
		CORSOrigins:       getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StrictIngredients: getEnv("STRICT_INGREDIENTS", "false") == "true",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
