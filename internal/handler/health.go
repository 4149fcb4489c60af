// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/middleware"
)

// Check statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

const healthProbeKey = "health:probe"

// HealthHandler reports whether the database, the content snapshot and the
// cache are usable.
type HealthHandler struct {
	db      *sql.DB
	content *content.Orchestrator
	cache   cache.Cache
	version string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler. c may be nil.
func NewHealthHandler(db *sql.DB, orch *content.Orchestrator, c cache.Cache, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		content: orch,
		cache:   c,
		version: version,
		started: time.Now(),
	}
}

// Check is the result of one probe.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthReport is the body of GET /health. Anonymous callers only get Status.
type HealthReport struct {
	Status  string           `json:"status"`
	Version string           `json:"version,omitempty"`
	Uptime  string           `json:"uptime,omitempty"`
	Checks  map[string]Check `json:"checks,omitempty"`
	Runtime *RuntimeInfo     `json:"runtime,omitempty"`
}

// RuntimeInfo is included for admins with ?verbose=true.
type RuntimeInfo struct {
	GoVersion  string `json:"go_version"`
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc_bytes"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(r.Context()),
		"content":  h.checkContent(),
		"cache":    h.checkCache(r.Context()),
	}
	report := HealthReport{Status: overall(checks)}

	user := middleware.GetUser(r)
	if user != nil && user.CanEdit() {
		report.Version = h.version
		report.Uptime = time.Since(h.started).Round(time.Second).String()
		report.Checks = checks
		if user.IsAdmin() && r.URL.Query().Get("verbose") == "true" {
			report.Runtime = runtimeInfo()
		}
	}

	code := http.StatusOK
	if report.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeHealth(w, code, report)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, HealthReport{Status: "alive"})
}

// Readiness handles GET /health/ready. The site is ready once the database
// answers and a content snapshot has been committed.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	db := h.checkDatabase(r.Context())
	snap := h.checkContent()
	if db.Status == statusHealthy && snap.Status != statusUnhealthy {
		writeHealth(w, http.StatusOK, HealthReport{Status: "ready"})
		return
	}
	writeHealth(w, http.StatusServiceUnavailable, HealthReport{Status: "not_ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: time.Since(start).String()}
	}
	return Check{Status: statusHealthy, Latency: time.Since(start).String()}
}

// checkContent reports the age and size of the committed snapshot.
func (h *HealthHandler) checkContent() Check {
	if h.content == nil {
		return Check{Status: statusUnhealthy, Message: "no content orchestrator"}
	}
	st := h.content.Snapshot()
	if st.LoadedAt.IsZero() {
		return Check{Status: statusUnhealthy, Message: "content not loaded yet"}
	}
	msg := strconv.Itoa(len(st.Posts)) + " posts, loaded " + time.Since(st.LoadedAt).Round(time.Second).String() + " ago"
	return Check{Status: statusHealthy, Message: msg}
}

// checkCache writes and reads back a probe key. A broken cache only
// degrades the site because every cached value can be reloaded.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.cache == nil {
		return Check{Status: statusHealthy, Message: "disabled"}
	}
	start := time.Now()
	if err := h.cache.Set(ctx, healthProbeKey, []byte("ok"), time.Minute); err != nil {
		return Check{Status: statusDegraded, Message: err.Error()}
	}
	if _, err := h.cache.Get(ctx, healthProbeKey); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return Check{Status: statusDegraded, Message: "probe key not readable"}
		}
		return Check{Status: statusDegraded, Message: err.Error()}
	}
	return Check{Status: statusHealthy, Latency: time.Since(start).String()}
}

func overall(checks map[string]Check) string {
	status := statusHealthy
	for _, c := range checks {
		switch c.Status {
		case statusUnhealthy:
			return statusUnhealthy
		case statusDegraded:
			status = statusDegraded
		}
	}
	return status
}

func runtimeInfo() *RuntimeInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &RuntimeInfo{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  m.HeapAlloc,
	}
}

func writeHealth(w http.ResponseWriter, code int, report HealthReport) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}
