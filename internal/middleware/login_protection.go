// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MsgLoginRateLimited is shown when an IP exceeds the login rate limit.
const MsgLoginRateLimited = "Bạn đăng nhập quá nhiều lần. Vui lòng thử lại sau."

const (
	// maxLockout caps the doubling account lockout.
	maxLockout = 24 * time.Hour

	pruneInterval  = 10 * time.Minute
	maxIPLimiters  = 10000
	loginRetryHint = 2 * time.Second
)

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	IPRateLimit       float64       // Login POSTs per second per IP
	IPBurst           int           // Burst of login POSTs per IP
	MaxFailedAttempts int           // Failures within AttemptWindow that lock the account
	LockoutDuration   time.Duration // First lockout; every further lockout doubles it
	AttemptWindow     time.Duration // Window in which failures are counted
}

// DefaultLoginProtectionConfig returns the production settings.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// withDefaults fills zero fields from DefaultLoginProtectionConfig.
func (c LoginProtectionConfig) withDefaults() LoginProtectionConfig {
	def := DefaultLoginProtectionConfig()
	if c.IPRateLimit <= 0 {
		c.IPRateLimit = def.IPRateLimit
	}
	if c.IPBurst <= 0 {
		c.IPBurst = def.IPBurst
	}
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if c.LockoutDuration <= 0 {
		c.LockoutDuration = def.LockoutDuration
	}
	if c.AttemptWindow <= 0 {
		c.AttemptWindow = def.AttemptWindow
	}
	return c
}

// accountState is the failure history of one login email.
type accountState struct {
	failures    int
	windowStart time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtection throttles login POSTs per IP and locks accounts after
// repeated failed passwords.
type LoginProtection struct {
	cfg LoginProtectionConfig
	ips *limiterCache[string]

	mu       sync.Mutex
	accounts map[string]*accountState

	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoginProtection creates a LoginProtection and starts its pruning
// goroutine. Call Stop to end it.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	cfg = cfg.withDefaults()
	lp := &LoginProtection{
		cfg:      cfg,
		ips:      newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		accounts: make(map[string]*accountState),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go lp.pruneLoop()
	return lp
}

// Stop ends the pruning goroutine.
func (lp *LoginProtection) Stop() {
	lp.stopOnce.Do(func() { close(lp.stop) })
}

func accountKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AllowIP reports whether ip may attempt another login now.
func (lp *LoginProtection) AllowIP(ip string) bool {
	return lp.ips.get(ip).Allow()
}

// Locked returns the time left on the lockout of email, and whether the
// account is locked at all.
func (lp *LoginProtection) Locked(email string) (time.Duration, bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[accountKey(email)]
	if !ok {
		return 0, false
	}
	if left := st.lockedUntil.Sub(lp.now()); left > 0 {
		return left, true
	}
	return 0, false
}

// Fail records a wrong password for email. When the failure locks the
// account it returns the lockout length and true.
func (lp *LoginProtection) Fail(email string) (time.Duration, bool) {
	key := accountKey(email)
	now := lp.now()

	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[key]
	if !ok {
		st = &accountState{windowStart: now}
		lp.accounts[key] = st
	}
	if now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
		st.failures = 0
		st.windowStart = now
	}
	st.failures++

	if st.failures < lp.cfg.MaxFailedAttempts {
		slog.Debug("failed login counted", "email", key, "failures", st.failures)
		return 0, false
	}

	d := lp.lockoutAfter(st.lockouts)
	st.lockedUntil = now.Add(d)
	st.lockouts++
	st.failures = 0

	slog.Warn("account locked after failed logins",
		"email", key,
		"lockouts", st.lockouts,
		"duration", d,
		"category", "auth")
	return d, true
}

// lockoutAfter returns the lockout following n earlier lockouts.
func (lp *LoginProtection) lockoutAfter(n int) time.Duration {
	d := lp.cfg.LockoutDuration
	for range n {
		d *= 2
		if d >= maxLockout {
			return maxLockout
		}
	}
	return d
}

// Succeed forgets the failure history of email.
func (lp *LoginProtection) Succeed(email string) {
	lp.mu.Lock()
	delete(lp.accounts, accountKey(email))
	lp.mu.Unlock()
}

// Remaining returns how many wrong passwords email may still submit before
// the account locks.
func (lp *LoginProtection) Remaining(email string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	st, ok := lp.accounts[accountKey(email)]
	if !ok || lp.now().Sub(st.windowStart) > lp.cfg.AttemptWindow {
		return lp.cfg.MaxFailedAttempts
	}
	return max(lp.cfg.MaxFailedAttempts-st.failures, 0)
}

func (lp *LoginProtection) pruneLoop() {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			lp.prune()
		case <-lp.stop:
			return
		}
	}
}

// prune drops accounts whose lockout and failure window have both passed.
func (lp *LoginProtection) prune() {
	if lp.ips.clearIfExceeds(maxIPLimiters) {
		slog.Info("login IP limiters reset", "limit", maxIPLimiters)
	}

	now := lp.now()
	lp.mu.Lock()
	defer lp.mu.Unlock()
	for key, st := range lp.accounts {
		if !now.Before(st.lockedUntil) && now.Sub(st.windowStart) > lp.cfg.AttemptWindow {
			delete(lp.accounts, key)
		}
	}
}

// Middleware throttles login POSTs per client IP. Other methods pass.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !lp.AllowIP(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip, "category", "security")
				w.Header().Set("Retry-After", strconv.Itoa(int(loginRetryHint.Seconds())))
				http.Error(w, MsgLoginRateLimited, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
