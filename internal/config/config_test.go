// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/scms.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/scms.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if !cfg.CanonicalRedirects {
		t.Error("CanonicalRedirects = false, want true")
	}
	if cfg.PostListLimit != 50 {
		t.Errorf("PostListLimit = %d, want 50", cfg.PostListLimit)
	}
	if cfg.CachePrefix != "scms:" {
		t.Errorf("CachePrefix = %q, want %q", cfg.CachePrefix, "scms:")
	}
	if cfg.AIEnabled() {
		t.Error("AIEnabled() = true without a key")
	}
	if cfg.DoSeed {
		t.Error("DoSeed = true, want false")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "SCMS_SESSION_SECRET", customSecret)
	setEnv(t, "SCMS_DB_PATH", "/srv/truong.db")
	setEnv(t, "SCMS_SERVER_HOST", "0.0.0.0")
	setEnv(t, "SCMS_SERVER_PORT", "3000")
	setEnv(t, "SCMS_ENV", "production")
	setEnv(t, "SCMS_LOG_LEVEL", "debug")
	setEnv(t, "SCMS_CANONICAL_REDIRECTS", "false")
	setEnv(t, "SCMS_POST_LIST_LIMIT", "120")
	setEnv(t, "SCMS_AI_API_KEY", "key-123")
	setEnv(t, "SCMS_AI_MODEL", "gemini-2.5-pro")
	setEnv(t, "SCMS_DO_SEED", "true")
	setEnv(t, "SCMS_ADMIN_EMAIL", "bgh@thcs.edu.vn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/srv/truong.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.CanonicalRedirects {
		t.Error("CanonicalRedirects = true, want false")
	}
	if cfg.PostListLimit != 120 {
		t.Errorf("PostListLimit = %d, want 120", cfg.PostListLimit)
	}
	if !cfg.AIEnabled() || cfg.AIModel != "gemini-2.5-pro" {
		t.Errorf("AI config = %q/%q", cfg.AIAPIKey, cfg.AIModel)
	}
	if !cfg.DoSeed || cfg.AdminEmail != "bgh@thcs.edu.vn" {
		t.Errorf("seed config = %v/%q", cfg.DoSeed, cfg.AdminEmail)
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail when SCMS_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "SCMS_SESSION_SECRET", tt.secret)

			if _, err := Load(); err == nil {
				t.Fatalf("Load() should fail with %d-byte secret", len(tt.secret))
			}
		})
	}
}

func TestLoad_RejectsWeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestLoad_RejectsNonPositiveListLimit(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SCMS_SESSION_SECRET", testSecret)
	setEnv(t, "SCMS_POST_LIST_LIMIT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail with a zero post list limit")
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (Config{LogLevel: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := Config{CacheTTL: 90, AITimeout: 30}
	if got := cfg.CacheTTLDuration(); got != 90*time.Second {
		t.Errorf("CacheTTLDuration() = %v", got)
	}
	if got := cfg.AITimeoutDuration(); got != 30*time.Second {
		t.Errorf("AITimeoutDuration() = %v", got)
	}
}

func TestConfig_GeoIPEnabled(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		enabled bool
	}{
		{"empty path", "", false},
		{"path set", "/path/to/GeoLite2-Country.mmdb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{GeoIPDBPath: tt.path}
			if got := cfg.GeoIPEnabled(); got != tt.enabled {
				t.Errorf("GeoIPEnabled() = %v, want %v", got, tt.enabled)
			}
		})
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcdefghABCDEFGH1234567890abcdef", true},
		{"abcdefgh12345678!!!!!!!!!!!!!!!!", true},
		{"ABCDEFGH12345678ABCDEFGH12345678", false},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
