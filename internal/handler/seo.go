// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/seo"
)

// SEOHandler serves robots.txt and sitemap.xml from the public snapshot.
type SEOHandler struct {
	content *content.Orchestrator
	noIndex bool
}

// NewSEOHandler creates a new SEOHandler. With noIndex set every crawler
// is turned away.
func NewSEOHandler(c *content.Orchestrator, noIndex bool) *SEOHandler {
	return &SEOHandler{content: c, noIndex: noIndex}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     siteURL(r),
		DisallowAll: h.noIndex,
	})))
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := seo.BuildSitemap(siteURL(r), h.content.Snapshot())
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(data)
}

// siteURL returns the scheme and host the request was addressed to.
func siteURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
