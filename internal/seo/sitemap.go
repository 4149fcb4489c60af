// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds robots.txt and the sitemap of the public site.
package seo

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects locations of the public site.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// Add appends loc. A zero lastMod is omitted.
func (b *SitemapBuilder) Add(loc router.Location, lastMod time.Time, freq ChangeFreq, priority string) {
	u := SitemapURL{
		Loc:        b.siteURL + loc.URL(),
		ChangeFreq: freq,
		Priority:   priority,
	}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// staticPages are listed in every sitemap.
var staticPages = []router.Page{
	router.PageIntro,
	router.PageNews,
	router.PageDocuments,
	router.PageStaff,
	router.PageGallery,
	router.PageResources,
	router.PageContact,
}

// BuildSitemap lists the public pages of st: the fixed pages, news
// categories, published posts, document categories and gallery albums.
func BuildSitemap(siteURL string, st *content.State) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.Add(router.Location{Page: router.PageHome}, st.LoadedAt, ChangeFreqDaily, "1.0")
	for _, p := range staticPages {
		b.Add(router.Location{Page: p}, time.Time{}, ChangeFreqWeekly, "0.8")
	}
	for _, c := range st.PostCategories {
		b.Add(router.Location{Page: router.PageNews, ID: c.Slug}, time.Time{}, ChangeFreqDaily, "0.6")
	}
	for _, p := range st.Posts {
		if !p.IsPublished() {
			continue
		}
		b.Add(router.Location{Page: router.PageNewsDetail, ID: strconv.FormatInt(p.ID, 10)}, postModified(p), ChangeFreqMonthly, "0.7")
	}
	for _, c := range st.DocumentCategories {
		b.Add(router.Location{Page: router.PageDocuments, ID: c.Slug}, time.Time{}, ChangeFreqWeekly, "0.5")
	}
	for _, a := range st.GalleryAlbums {
		b.Add(router.Location{Page: router.PageGallery, ID: strconv.FormatInt(a.ID, 10)}, time.Time{}, ChangeFreqMonthly, "0.4")
	}
	return b.Build()
}

func postModified(p model.Post) time.Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}
