// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"regexp"
	"strings"
)

// youtubeIDRegex matches a bare YouTube video id.
var youtubeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsSafeLink reports whether raw is a local path or an absolute http(s) URL.
// Protocol-relative and script URLs are rejected.
func IsSafeLink(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//") && !strings.HasPrefix(raw, "/\\")
	}
	if strings.HasPrefix(raw, "?") {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// YouTubeID extracts the video id from a YouTube URL or returns raw when it
// is already a bare id. The second result is false when nothing matches.
func YouTubeID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if youtubeIDRegex.MatchString(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}

	if youtubeIDRegex.MatchString(id) {
		return id, true
	}
	return "", false
}
