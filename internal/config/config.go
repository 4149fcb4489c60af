// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from SCMS_ environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"SCMS_DB_PATH" envDefault:"./data/scms.db"`
	SessionSecret string `env:"SCMS_SESSION_SECRET,required"`
	ServerHost    string `env:"SCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SCMS_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SCMS_ENV" envDefault:"development"`
	LogLevel      string `env:"SCMS_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"SCMS_REDIS_URL"`                         // Optional Redis URL for the shared detail cache
	CachePrefix  string `env:"SCMS_CACHE_PREFIX" envDefault:"scms:"`   // Redis key prefix
	CacheTTL     int    `env:"SCMS_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"SCMS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Public site behavior
	CanonicalRedirects bool `env:"SCMS_CANONICAL_REDIRECTS" envDefault:"true"` // Redirect to canonical page URLs
	PostListLimit      int  `env:"SCMS_POST_LIST_LIMIT" envDefault:"50"`       // Posts kept in the public snapshot

	// AI drafting (OpenAI-compatible endpoint)
	AIAPIKey  string `env:"SCMS_AI_API_KEY"`
	AIBaseURL string `env:"SCMS_AI_BASE_URL"`
	AIModel   string `env:"SCMS_AI_MODEL"`
	AITimeout int    `env:"SCMS_AI_TIMEOUT" envDefault:"60"` // Seconds

	// GeoIP configuration
	GeoIPDBPath string `env:"SCMS_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed        bool   `env:"SCMS_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"SCMS_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"SCMS_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AIEnabled returns true if an AI API key is configured.
func (c Config) AIEnabled() bool {
	return c.AIAPIKey != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// AITimeoutDuration returns AITimeout as a duration.
func (c Config) AITimeoutDuration() time.Duration {
	return time.Duration(c.AITimeout) * time.Second
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SCMS_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SCMS_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.PostListLimit <= 0 {
		return nil, fmt.Errorf("SCMS_POST_LIST_LIMIT must be positive, got %d", cfg.PostListLimit)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SCMS_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
