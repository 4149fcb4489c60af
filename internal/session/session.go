// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session owns the cookie session store and the sign-in state of
// admin users.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

const (
	keyUserID    = "user_id"
	keyFlash     = "flash"
	keyFlashType = "flash_type"

	cleanupInterval = 5 * time.Minute

	// Lifetime is the absolute session lifetime.
	Lifetime = 24 * time.Hour
	// IdleTimeout expires sessions without activity.
	IdleTimeout = 2 * time.Hour
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Message string
	Type    string
}

// Manager wraps the scs session manager backed by SQLite. Sign-in state
// changes only through SignIn and SignOut.
type Manager struct {
	sm    *scs.SessionManager
	store *sqlite3store.SQLite3Store
}

// New creates a manager storing sessions in db. secure marks the cookie
// Secure and switches to the __Host- cookie prefix.
func New(db *sql.DB, secure bool) *Manager {
	st := sqlite3store.NewWithCleanupInterval(db, cleanupInterval)

	sm := scs.New()
	sm.Store = st
	sm.Lifetime = Lifetime
	sm.IdleTimeout = IdleTimeout
	sm.Cookie.Name = "scms_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	if secure {
		sm.Cookie.Name = "__Host-scms_session"
	}

	return &Manager{sm: sm, store: st}
}

// Close stops the expired-session cleanup goroutine.
func (m *Manager) Close() {
	m.store.StopCleanup()
}

// LoadAndSave loads and commits the session around next.
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// SignIn renews the session token and stores userID.
func (m *Manager) SignIn(ctx context.Context, userID int64) error {
	if err := m.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	m.sm.Put(ctx, keyUserID, userID)
	return nil
}

// SignOut destroys the session.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}

// UserID returns the signed-in user id, or 0.
func (m *Manager) UserID(ctx context.Context) int64 {
	return m.sm.GetInt64(ctx, keyUserID)
}

// SetFlash stores a flash message for the next page.
func (m *Manager) SetFlash(ctx context.Context, message, flashType string) {
	m.sm.Put(ctx, keyFlash, message)
	m.sm.Put(ctx, keyFlashType, flashType)
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(ctx context.Context) (Flash, bool) {
	msg := m.sm.PopString(ctx, keyFlash)
	if msg == "" {
		return Flash{}, false
	}
	f := Flash{Message: msg, Type: m.sm.PopString(ctx, keyFlashType)}
	if f.Type == "" {
		f.Type = FlashInfo
	}
	return f, true
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.sm.Cookie.Name
}
