// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Config selects and sizes the cache backend.
type Config struct {
	// RedisURL selects Redis when set, e.g. redis://localhost:6379/0
	RedisURL string

	// Prefix namespaces Redis keys.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize caps the memory backend (0 = unlimited).
	MaxSize int

	// FallbackToMemory keeps the site running on the memory backend when
	// Redis is unreachable.
	FallbackToMemory bool
}

// Info describes the backend NewCache chose.
type Info struct {
	Backend     string
	RedisURL    string // password masked
	FellBack    bool
	FallbackErr error
}

// NewCache creates the configured backend. When Redis fails and
// FallbackToMemory is set, a memory cache is returned together with the
// Redis error in Info.
func NewCache(cfg Config) (Cache, Info, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = time.Hour
	}

	if cfg.RedisURL == "" {
		return newMemory(cfg), Info{Backend: "memory"}, nil
	}

	opts := DefaultRedisCacheOptions()
	opts.URL = cfg.RedisURL
	opts.DefaultTTL = cfg.DefaultTTL
	if cfg.Prefix != "" {
		opts.Prefix = cfg.Prefix
	}

	info := Info{Backend: "redis", RedisURL: SanitizeRedisURL(cfg.RedisURL)}
	rc, err := NewRedisCache(opts)
	if err == nil {
		return rc, info, nil
	}
	if !cfg.FallbackToMemory {
		return nil, info, err
	}

	slog.Warn("redis unavailable, using memory cache",
		"url", info.RedisURL, "error", err, "category", "cache")
	return newMemory(cfg), Info{Backend: "memory", RedisURL: info.RedisURL, FellBack: true, FallbackErr: err}, nil
}

func newMemory(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	})
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
