// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/model"
)

func decodeReport(t *testing.T, rec *httptest.ResponseRecorder) HealthReport {
	t.Helper()
	var report HealthReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	return report
}

func TestHealth_AnonymousGetsStatusOnly(t *testing.T) {
	env := newTestEnv(t)
	env.content.Refresh(context.Background(), false)
	h := NewHealthHandler(env.db, env.content, cache.NewMemoryCache(cache.MemoryCacheOptions{}), "1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	report := decodeReport(t, rec)
	assert.Equal(t, statusHealthy, report.Status)
	assert.Empty(t, report.Checks)
	assert.Empty(t, report.Version)
}

func TestHealth_EditorSeesChecks(t *testing.T) {
	env := newTestEnv(t)
	env.content.Refresh(context.Background(), false)
	editor := env.createUser(t, model.RoleEditor)
	h := NewHealthHandler(env.db, env.content, nil, "1.0.0")

	rec := httptest.NewRecorder()
	h.Health(rec, asUser(httptest.NewRequest(http.MethodGet, RouteHealth+"?verbose=true", nil), editor))

	report := decodeReport(t, rec)
	assert.Equal(t, "1.0.0", report.Version)
	assert.Contains(t, report.Checks, "database")
	assert.Contains(t, report.Checks, "content")
	assert.Equal(t, "disabled", report.Checks["cache"].Message)
	assert.Nil(t, report.Runtime, "runtime info is for admins only")
}

func TestHealth_ContentNotLoaded(t *testing.T) {
	env := newTestEnv(t)
	h := NewHealthHandler(env.db, env.content, nil, "dev")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, RouteHealth, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, statusUnhealthy, decodeReport(t, rec).Status)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, RouteHealth+"/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	env.content.Refresh(context.Background(), false)
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, RouteHealth+"/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeReport(t, rec).Status)
}

func TestHealth_ClosedCacheDegrades(t *testing.T) {
	env := newTestEnv(t)
	env.content.Refresh(context.Background(), false)
	c := cache.NewMemoryCache(cache.MemoryCacheOptions{})
	require.NoError(t, c.Close())
	h := NewHealthHandler(env.db, env.content, c, "dev")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statusDegraded, decodeReport(t, rec).Status)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, "dev")
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, RouteHealth+"/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", decodeReport(t, rec).Status)
}
