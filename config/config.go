// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port          string
	DatabaseURL   string
	RedisAddr     string
	CacheTTL      time.Duration
	PageURL       string
	LogLevel      slog.Level
	PostRateLimit float64
	Seed          bool
}

// Load reads the configuration from the environment, after loading any .env
// files given. A missing .env file is not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	c := Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", "sqlite://file::memory:?cache=shared"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		CacheTTL:      time.Minute,
		PageURL:       getenv("PAGE_URL", "http://localhost:8080/home.html"),
		PostRateLimit: 1,
		Seed:          true,
	}

	if err := c.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = d
	}
	if v := os.Getenv("POST_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("POST_RATE_LIMIT: invalid value %q", v)
		}
		c.PostRateLimit = f
	}
	if v := os.Getenv("SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("SEED: %w", err)
		}
		c.Seed = b
	}
	return c, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
