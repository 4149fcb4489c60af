// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"bytes"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// embedSrcRegex limits iframes to the embed hosts used on school sites:
// YouTube videos, Facebook page plugins and Google Maps.
var embedSrcRegex = regexp.MustCompile(`^https://(www\.)?(youtube\.com/embed/|youtube-nocookie\.com/embed/|facebook\.com/plugins/|google\.com/maps/embed)`)

var (
	htmlSanitizer  = newHTMLPolicy()
	stripSanitizer = bluemonday.StripTagsPolicy()
	markdown       = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
)

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td", "figure", "figcaption")
	p.AllowAttrs("style").OnElements("p", "span", "div", "td", "th", "img")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "span", "div", "img", "table")
	p.AllowAttrs("src").Matching(embedSrcRegex).OnElements("iframe")
	p.AllowAttrs("width", "height", "frameborder", "allowfullscreen", "loading", "title").OnElements("iframe")
	return p
}

// SanitizeHTML removes scripts, event handlers and foreign iframes from
// admin-authored markup.
func SanitizeHTML(s string) string {
	return htmlSanitizer.Sanitize(s)
}

// StripHTML returns the text content of s.
func StripHTML(s string) string {
	return stripSanitizer.Sanitize(s)
}

// MarkdownToHTML converts markdown to sanitized HTML.
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return SanitizeHTML(buf.String()), nil
}
