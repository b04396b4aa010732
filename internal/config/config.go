// Package config loads engine configuration from the environment
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	// PublicOrigin is the base URL viewer links are built against.
	PublicOrigin string

	// UPI payee identity embedded in payment QR codes.
	UPIPayeeID   string
	UPIPayeeName string

	BusinessTagline string
	BusinessWebsite string

	// ChatShareDelay separates the receipt download from the chat
	// deep link on the fallback path.
	ChatShareDelay time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:          valueOrDefault(k.String("APP_ENV"), "development"),
		Port:            valueOrDefault(k.String("PORT"), "8080"),
		LogLevel:        valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:       valueOrDefault(k.String("LOG_FORMAT"), "json"),
		PublicOrigin:    valueOrDefault(k.String("PUBLIC_ORIGIN"), "http://localhost:8080"),
		UPIPayeeID:      k.String("UPI_PAYEE_ID"),
		UPIPayeeName:    k.String("UPI_PAYEE_NAME"),
		BusinessTagline: k.String("BUSINESS_TAGLINE"),
		BusinessWebsite: k.String("BUSINESS_WEBSITE"),
		ChatShareDelay:  parseDuration(k.String("CHAT_SHARE_DELAY"), "1500ms"),
	}

	cfg.PublicOrigin = strings.TrimRight(cfg.PublicOrigin, "/")

	if cfg.UPIPayeeID == "" {
		return nil, fmt.Errorf("UPI_PAYEE_ID is required")
	}

	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func parseDuration(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
