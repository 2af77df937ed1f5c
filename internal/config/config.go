package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string // "production" enables client-safe error messages

	SupabaseURL     string
	SupabaseAnonKey string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present (local development).
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg
}

// Validate checks the settings the server cannot run without.
func (c Config) Validate() error {
	if c.SupabaseURL == "" {
		return errors.New("config: SUPABASE_URL is required")
	}
	if c.SupabaseAnonKey == "" {
		return errors.New("config: SUPABASE_ANON_KEY is required")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	return nil
}

// IsProduction reports whether error details must be hidden from clients.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
