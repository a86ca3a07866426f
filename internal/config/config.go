// Package config loads the application configuration from environment
// variables, with a .env file as a development convenience.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Port        string
	DBPath      string
	TemplateDir string
	SessionTTL  time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; every setting has a development default.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "8080"),
		DBPath:      getenv("DB_PATH", "homeroom.db"),
		TemplateDir: getenv("TEMPLATE_DIR", "web/templates"),
		SessionTTL:  24 * time.Hour,
	}

	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		ttl, err := strconv.Atoi(ttlStr)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %q", ttlStr)
		}
		cfg.SessionTTL = time.Duration(ttl) * time.Hour
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
