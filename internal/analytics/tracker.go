// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package analytics records public page visits and serves the counters of
// the stats block.
package analytics

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/scms-go/internal/geoip"
	"github.com/olegiv/scms-go/internal/store"
)

const (
	// VisitorCookie holds the anonymous visitor id.
	VisitorCookie = "scms_visitor"

	visitorCookieMaxAge = 365 * 24 * 60 * 60
	sessionWindow       = 30 * time.Minute
	insertTimeout       = 5 * time.Second
)

var skippedPrefixes = []string{
	"/static/",
	"/admin",
	"/login",
	"/logout",
	"/health",
	"/favicon.",
	"/robots.txt",
	"/.well-known/",
}

// Tracker is middleware recording page views of the public site.
type Tracker struct {
	queries *store.Queries
	geo     *geoip.Resolver
	logger  *slog.Logger
	secure  bool
	now     func() time.Time

	pending sync.WaitGroup
}

// NewTracker creates a tracker. geo may be nil. secureCookie marks the
// visitor cookie Secure.
func NewTracker(db *sql.DB, geo *geoip.Resolver, secureCookie bool, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		queries: store.New(db),
		geo:     geo,
		logger:  logger,
		secure:  secureCookie,
		now:     time.Now,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.status = http.StatusOK
		rw.wroteHeader = true
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware records successful GET page views asynchronously.
func (t *Tracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ShouldTrack(r) {
			next.ServeHTTP(w, r)
			return
		}

		client := ParseClient(r.UserAgent())
		if client.DeviceType == DeviceBot {
			next.ServeHTTP(w, r)
			return
		}

		visitorID := t.visitorID(w, r)
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		if rw.status != http.StatusOK {
			return
		}

		now := t.now().UTC()
		visit := store.CreateVisitParams{
			VisitorID:   visitorID,
			SessionHash: SessionHash(visitorID, now),
			Path:        pagePath(r),
			Browser:     client.Browser,
			Os:          client.OS,
			DeviceType:  client.DeviceType,
			CountryCode: t.geo.Country(clientIP(r)),
			CreatedAt:   now.Format(store.VisitTimeLayout),
		}

		t.pending.Add(1)
		go func() {
			defer t.pending.Done()
			t.record(visit)
		}()
	})
}

func (t *Tracker) record(visit store.CreateVisitParams) {
	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()
	if err := t.queries.CreateVisit(ctx, visit); err != nil {
		t.logger.Error("failed to record visit", "path", visit.Path, "error", err)
	}
}

// Wait blocks until pending inserts have finished.
func (t *Tracker) Wait() {
	t.pending.Wait()
}

// visitorID returns the id from the visitor cookie, issuing a new one when
// the cookie is missing or malformed.
func (t *Tracker) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   visitorCookieMaxAge,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ShouldTrack reports whether r is a public page view.
func ShouldTrack(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	path := r.URL.Path
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	// The admin console is also reachable as ?page=admin-*.
	return !strings.HasPrefix(r.URL.Query().Get("page"), "admin")
}

// SessionHash groups the visits of one visitor within a 30-minute window.
func SessionHash(visitorID string, at time.Time) string {
	bucket := at.UTC().Truncate(sessionWindow).Unix()
	sum := sha256.Sum256([]byte(visitorID + ":" + strconv.FormatInt(bucket, 10)))
	return hex.EncodeToString(sum[:16])
}

// pagePath is the logical page of r, e.g. "/?page=news-detail&id=3".
func pagePath(r *http.Request) string {
	q := r.URL.Query()
	page := q.Get("page")
	if page == "" {
		return r.URL.Path
	}
	p := "/?page=" + page
	if id := q.Get("id"); id != "" {
		p += "&id=" + id
	}
	return p
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already replaced with the proxy-reported address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
