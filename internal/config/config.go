package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keeps runtime settings for the API server.
type Config struct {
	HTTPAddr          string
	DatabaseURL       string
	SessionTTL        time.Duration // 0 means tokens never expire
	SessionSweepEvery time.Duration
	PasswordMinLength int
	GinMode           string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "todoapi.db")
	v.SetDefault("SESSION_TTL_HOURS", 0)
	v.SetDefault("SESSION_SWEEP_MINUTES", 60)
	v.SetDefault("PASSWORD_MIN_LENGTH", 8)
	v.SetDefault("GIN_MODE", "release")

	cfg := Config{
		HTTPAddr:          strings.TrimSpace(v.GetString("HTTP_ADDR")),
		DatabaseURL:       strings.TrimSpace(v.GetString("DATABASE_URL")),
		SessionTTL:        time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		SessionSweepEvery: time.Duration(v.GetInt("SESSION_SWEEP_MINUTES")) * time.Minute,
		PasswordMinLength: v.GetInt("PASSWORD_MIN_LENGTH"),
		GinMode:           strings.TrimSpace(v.GetString("GIN_MODE")),
	}

	if cfg.HTTPAddr == "" {
		return cfg, fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.SessionTTL < 0 {
		return cfg, fmt.Errorf("SESSION_TTL_HOURS must not be negative")
	}
	if cfg.PasswordMinLength < 1 {
		return cfg, fmt.Errorf("PASSWORD_MIN_LENGTH must be positive")
	}
	if cfg.SessionSweepEvery <= 0 {
		cfg.SessionSweepEvery = time.Hour
	}

	return cfg, nil
}
