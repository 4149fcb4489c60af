// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/util"
)

// Weekdays holds Vietnamese weekday names indexed by time.Weekday.
var Weekdays = [...]string{
	"Chủ nhật", "Thứ hai", "Thứ ba", "Thứ tư", "Thứ năm", "Thứ sáu", "Thứ bảy",
}

// DateLayout is the display format of dates.
const DateLayout = "02/01/2006"

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"hasPrefix": strings.HasPrefix,
		"join":      strings.Join,
		"truncate":  Truncate,
		"excerpt": func(html string, length int) string {
			return Truncate(util.StripHTML(html), length)
		},

		"sanitize": func(s string) template.HTML {
			return template.HTML(util.SanitizeHTML(s))
		},
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},
		"safeCSS": func(s string) template.CSS {
			return template.CSS(s)
		},

		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},

		"formatDate":        FormatDate,
		"formatDateTime":    FormatDateTime,
		"formatContentDate": FormatContentDate,
		"formatWeekday":     FormatWeekday,
		"formatNumber":      FormatNumber,
		"unixMilli": func(t time.Time) int64 {
			return t.UnixMilli()
		},

		"pageURL": func(page string, id ...any) string {
			loc := router.Location{Page: router.Page(page)}
			if len(id) > 0 {
				loc.ID = toString(id[0])
			}
			return loc.URL()
		},
		"menuURL": MenuURL,
		"youtubeEmbed": func(id string) string {
			return "https://www.youtube-nocookie.com/embed/" + id
		},
		"youtubeThumb": func(id string) string {
			return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
		},
		"isAdmin": func(u *model.User) bool {
			return u != nil && u.IsAdmin()
		},

		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}

// MenuURL returns the link of a menu entry. A path that is a link is used
// as is, anything else names a public page.
func MenuURL(path string) string {
	if util.IsSafeLink(path) {
		return path
	}
	return router.Location{Page: router.Page(path)}.URL()
}

// Truncate shortens s to at most length runes, adding an ellipsis.
func Truncate(s string, length int) string {
	s = strings.TrimSpace(s)
	if length <= 0 || utf8.RuneCountInString(s) <= length {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:length])) + "..."
}

// FormatDate formats t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime formats t as "15:04 dd/mm/yyyy".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04 " + DateLayout)
}

// FormatContentDate formats a stored content date. Unparseable values are
// shown as stored.
func FormatContentDate(s string) string {
	if t, ok := model.ParseContentDate(s); ok {
		return t.Format(DateLayout)
	}
	return s
}

// FormatWeekday formats t as "Thứ hai, 02/03/2026".
func FormatWeekday(t time.Time) string {
	return Weekdays[t.Weekday()] + ", " + t.Format(DateLayout)
}

// FormatNumber groups thousands with dots.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}
