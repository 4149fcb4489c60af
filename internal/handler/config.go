// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/util"
)

// iframeSrcRegex extracts the src attribute of a pasted iframe snippet.
var iframeSrcRegex = regexp.MustCompile(`(?i)<iframe[^>]*\ssrc\s*=\s*["']([^"']+)["']`)

// ConfigHandler handles the site settings screen.
type ConfigHandler struct {
	base
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(d Deps) *ConfigHandler {
	return &ConfigHandler{base: newBase(d)}
}

// Form handles GET /admin/settings. Before the first save the form shows
// the built-in defaults.
func (h *ConfigHandler) Form(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Repo.GetSiteConfig(r.Context())
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			logAndInternalError(w, "failed to load site config", "error", err)
			return
		}
		cfg = model.DefaultSiteConfig()
	}
	h.render(w, r, http.StatusOK, "admin/settings", h.adminData(r, router.PageAdminSettings, "Cấu hình", cfg))
}

// Update handles POST /admin/settings.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.Sessions, redirectAdminSettings) {
		return
	}
	cfg := siteConfigFromForm(r)

	if err := h.Repo.SaveSiteConfig(r.Context(), cfg); err != nil {
		h.renderForm(w, r, "admin/settings", h.adminData(r, router.PageAdminSettings, "Cấu hình", cfg), err)
		return
	}

	h.Logger.Info("site config updated", "updated_by", middleware.GetUserID(r))
	h.changed(r, model.EventCategoryConfig, "Site configuration updated", map[string]any{"name": cfg.Name})
	flashSuccess(w, r, h.Sessions, redirectAdminSettings, msgSaved)
}

func siteConfigFromForm(r *http.Request) model.SiteConfig {
	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return model.SiteConfig{
		Name:              field("name"),
		Slogan:            field("slogan"),
		LogoURL:           field("logo_url"),
		BannerURL:         field("banner_url"),
		Address:           field("address"),
		Phone:             field("phone"),
		Email:             field("email"),
		Hotline:           field("hotline"),
		Website:           field("website"),
		Fanpage:           field("fanpage"),
		MapEmbed:          mapEmbedURL(field("map_embed")),
		FooterText:        field("footer_text"),
		PrimaryColor:      field("primary_color"),
		MetaTitle:         field("meta_title"),
		MetaDescription:   field("meta_description"),
		HomeNewsCount:     util.ParseIntDefault(field("home_news_count"), model.FallbackHomeNewsCount),
		HomeShowProgram:   util.ParseCheckbox(r.FormValue("home_show_program")),
		ShowWelcomeBanner: util.ParseCheckbox(r.FormValue("show_welcome_banner")),
	}
}

// mapEmbedURL accepts either a map URL or a pasted iframe snippet and
// returns the URL. Anything else is dropped.
func mapEmbedURL(s string) string {
	if m := iframeSrcRegex.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	if !strings.HasPrefix(s, "https://") {
		return ""
	}
	return s
}
