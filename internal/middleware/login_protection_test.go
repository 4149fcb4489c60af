// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestProtection returns login protection with a controllable clock.
func newTestProtection(t *testing.T, maxAttempts int, lockout, window time.Duration) (*LoginProtection, *fakeClock) {
	t.Helper()
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       10,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   lockout,
		AttemptWindow:     window,
	})
	t.Cleanup(lp.Stop)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	lp.now = clock.now
	return lp, clock
}

func TestLoginProtectionConfig_Defaults(t *testing.T) {
	cfg := LoginProtectionConfig{MaxFailedAttempts: 3}.withDefaults()

	if cfg.MaxFailedAttempts != 3 {
		t.Errorf("MaxFailedAttempts = %d, want the explicit 3", cfg.MaxFailedAttempts)
	}
	if cfg.IPRateLimit != 0.5 || cfg.IPBurst != 5 {
		t.Errorf("IP limits = %v/%d, want 0.5/5", cfg.IPRateLimit, cfg.IPBurst)
	}
	if cfg.LockoutDuration != 15*time.Minute || cfg.AttemptWindow != 15*time.Minute {
		t.Errorf("durations = %v / %v", cfg.LockoutDuration, cfg.AttemptWindow)
	}
}

func TestLoginProtection_LocksAfterMaxAttempts(t *testing.T) {
	lp, clock := newTestProtection(t, 3, time.Minute, 10*time.Minute)
	email := "admin@truong.edu.vn"

	for i := 1; i < 3; i++ {
		if _, locked := lp.Fail(email); locked {
			t.Fatalf("locked after %d failures", i)
		}
	}
	if got := lp.Remaining(email); got != 1 {
		t.Errorf("Remaining() = %d, want 1", got)
	}

	d, locked := lp.Fail(email)
	if !locked || d != time.Minute {
		t.Fatalf("Fail() = %v, %v, want 1m, true", d, locked)
	}
	if left, locked := lp.Locked(email); !locked || left != time.Minute {
		t.Errorf("Locked() = %v, %v", left, locked)
	}

	clock.advance(time.Minute + time.Second)
	if _, locked := lp.Locked(email); locked {
		t.Error("account still locked after the lockout expired")
	}
}

func TestLoginProtection_EmailIsCaseInsensitive(t *testing.T) {
	lp, _ := newTestProtection(t, 2, time.Minute, time.Hour)

	lp.Fail("Admin@Truong.edu.vn")
	lp.Fail(" admin@truong.edu.vn ")

	if _, locked := lp.Locked("ADMIN@TRUONG.EDU.VN"); !locked {
		t.Error("differently cased emails should share one lockout")
	}
}

func TestLoginProtection_LockoutDoubles(t *testing.T) {
	lp, clock := newTestProtection(t, 2, time.Minute, time.Hour)
	email := "editor@truong.edu.vn"

	lp.Fail(email)
	first, _ := lp.Fail(email)

	clock.advance(first + time.Second)
	lp.Fail(email)
	second, _ := lp.Fail(email)

	if second != 2*first {
		t.Errorf("second lockout = %v, want %v", second, 2*first)
	}
}

func TestLoginProtection_LockoutCapped(t *testing.T) {
	lp, _ := newTestProtection(t, 2, 10*time.Hour, time.Hour)

	if got := lp.lockoutAfter(0); got != 10*time.Hour {
		t.Errorf("lockoutAfter(0) = %v", got)
	}
	if got := lp.lockoutAfter(5); got != maxLockout {
		t.Errorf("lockoutAfter(5) = %v, want %v", got, maxLockout)
	}
}

func TestLoginProtection_WindowReset(t *testing.T) {
	lp, clock := newTestProtection(t, 3, time.Minute, 5*time.Minute)
	email := "a@b.vn"

	lp.Fail(email)
	lp.Fail(email)

	clock.advance(6 * time.Minute)
	if got := lp.Remaining(email); got != 3 {
		t.Errorf("Remaining() after window = %d, want 3", got)
	}
	if _, locked := lp.Fail(email); locked {
		t.Error("failure after the window reset must not lock")
	}
}

func TestLoginProtection_SucceedClears(t *testing.T) {
	lp, _ := newTestProtection(t, 3, time.Minute, time.Hour)
	email := "a@b.vn"

	lp.Fail(email)
	lp.Fail(email)
	lp.Succeed(email)

	if got := lp.Remaining(email); got != 3 {
		t.Errorf("Remaining() = %d, want 3", got)
	}
}

func TestLoginProtection_Prune(t *testing.T) {
	lp, clock := newTestProtection(t, 3, time.Minute, time.Minute)
	lp.Fail("old@b.vn")

	clock.advance(2 * time.Minute)
	lp.Fail("new@b.vn")
	lp.prune()

	lp.mu.Lock()
	defer lp.mu.Unlock()
	if _, ok := lp.accounts["old@b.vn"]; ok {
		t.Error("stale account not pruned")
	}
	if _, ok := lp.accounts["new@b.vn"]; !ok {
		t.Error("fresh account pruned")
	}
}

func TestLoginProtectionMiddleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1})
	defer lp.Stop()

	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := post(); rec.Code != http.StatusOK {
		t.Errorf("first POST = %d, want 200", rec.Code)
	}
	rec := post()
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After on a throttled login")
	}

	rec = httptest.NewRecorder()
	get := httptest.NewRequest(http.MethodGet, "/login", nil)
	get.RemoteAddr = "203.0.113.9:5000"
	handler.ServeHTTP(rec, get)
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, GET must not be rate limited", rec.Code)
	}
}
