// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package router maps public URLs to logical pages and back.
//
// The public site is addressed as /?page=<name>&id=<id>, with two special
// cases: the home page is "/" and the login page is "/admin".
package router

import (
	"net/url"
	"regexp"
	"strings"
)

// Page names a logical page of the site.
type Page string

// Public pages.
const (
	PageHome       Page = "home"
	PageIntro      Page = "intro"
	PageNews       Page = "news"
	PageNewsDetail Page = "news-detail"
	PageDocuments  Page = "documents"
	PageStaff      Page = "staff"
	PageGallery    Page = "gallery"
	PageResources  Page = "resources"
	PageContact    Page = "contact"
	PageLogin      Page = "login"
)

// Console pages.
const (
	PageAdminDashboard  Page = "admin-dashboard"
	PageAdminNews       Page = "admin-news"
	PageAdminCategories Page = "admin-categories"
	PageAdminIntro      Page = "admin-intro"
	PageAdminBlocks     Page = "admin-blocks"
	PageAdminDocs       Page = "admin-docs"
	PageAdminGallery    Page = "admin-gallery"
	PageAdminStaff      Page = "admin-staff"
	PageAdminVideos     Page = "admin-videos"
	PageAdminUsers      Page = "admin-users"
	PageAdminMenu       Page = "admin-menu"
	PageAdminSettings   Page = "admin-settings"
	PageAdminEvents     Page = "admin-events"
)

// adminPrefix marks console pages in the page namespace.
const adminPrefix = "admin"

// AdminPath is the URL path of the console; it doubles as the login URL.
const AdminPath = "/admin"

var pageNameRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

var publicPages = map[Page]bool{
	PageHome:       true,
	PageIntro:      true,
	PageNews:       true,
	PageNewsDetail: true,
	PageDocuments:  true,
	PageStaff:      true,
	PageGallery:    true,
	PageResources:  true,
	PageContact:    true,
}

// consoleRoutes maps console pages to the console handler paths.
var consoleRoutes = map[Page]string{
	PageAdminDashboard:  AdminPath,
	PageAdminNews:       AdminPath + "/news",
	PageAdminCategories: AdminPath + "/categories",
	PageAdminIntro:      AdminPath + "/intro",
	PageAdminBlocks:     AdminPath + "/blocks",
	PageAdminDocs:       AdminPath + "/documents",
	PageAdminGallery:    AdminPath + "/gallery",
	PageAdminStaff:      AdminPath + "/staff",
	PageAdminVideos:     AdminPath + "/videos",
	PageAdminUsers:      AdminPath + "/users",
	PageAdminMenu:       AdminPath + "/menu",
	PageAdminSettings:   AdminPath + "/settings",
	PageAdminEvents:     AdminPath + "/events",
}

var adminOnlyPages = map[Page]bool{
	PageAdminUsers:    true,
	PageAdminMenu:     true,
	PageAdminSettings: true,
	PageAdminEvents:   true,
}

// Location is a logical position in the site.
type Location struct {
	Page Page
	ID   string
}

// IsPublicPage reports whether p is rendered by the public site.
func IsPublicPage(p Page) bool {
	return publicPages[p]
}

func (p Page) String() string {
	return string(p)
}

// IsAdmin reports whether p belongs to the console.
func (p Page) IsAdmin() bool {
	return strings.HasPrefix(string(p), adminPrefix)
}

// IsAdminOnly reports whether p requires the ADMIN role.
func (p Page) IsAdminOnly() bool {
	return adminOnlyPages[p]
}

// ConsoleRoute returns the console handler path of an admin page.
func (p Page) ConsoleRoute() (string, bool) {
	route, ok := consoleRoutes[p]
	return route, ok
}

// Parse maps a request URL to a location. It never fails: anything it
// cannot make sense of is the home page.
func Parse(u *url.URL) Location {
	if u == nil {
		return Location{Page: PageHome}
	}

	path := strings.TrimRight(u.Path, "/")
	if path == AdminPath || strings.HasPrefix(path, AdminPath+"/") {
		return Location{Page: PageLogin}
	}

	q := u.Query()
	name := strings.TrimSpace(q.Get("page"))
	switch {
	case name == "":
		return Location{Page: PageHome}
	case name == adminPrefix:
		return Location{Page: PageLogin}
	case !pageNameRegex.MatchString(name):
		return Location{Page: PageHome}
	}
	return Location{Page: Page(name), ID: q.Get("id")}
}

// URL returns the canonical URL of the location.
func (l Location) URL() string {
	switch l.Page {
	case PageHome, "":
		return "/"
	case PageLogin:
		return AdminPath
	}

	s := "/?page=" + url.QueryEscape(string(l.Page))
	if l.ID != "" {
		s += "&id=" + url.QueryEscape(l.ID)
	}
	return s
}
