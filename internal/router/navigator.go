package router

import (
	"net/url"
	"strings"
)

// Navigator decides which location to render for a request and whether the
// browser should be sent to the canonical URL first.
type Navigator struct {
	// CanUseHistoryAPI enables canonical URL rewrites. When false every
	// page renders in place at whatever URL it was requested with.
	CanUseHistoryAPI bool
}

// Decision is the outcome of Navigate.
type Decision struct {
	// Location is the logical page to render.
	Location Location
	// RedirectURL is the canonical URL to rewrite to, or "" to render in place.
	RedirectURL string
}

// Navigate resolves loc for a viewer. Console pages require a signed-in
// user and fall back to the login page; a signed-in user asking for the
// login page lands on the dashboard.
//
// Only the path and the page and id parameters take part in the canonical
// check. Other parameters, such as the news page number, never trigger a
// rewrite and are carried over when one happens for the same page.
func (n Navigator) Navigate(current *url.URL, loc Location, authenticated bool) Decision {
	requested := loc
	switch {
	case loc.Page.IsAdmin() && !authenticated:
		loc = Location{Page: PageLogin}
	case loc.Page == PageLogin && authenticated:
		loc = Location{Page: PageAdminDashboard}
	}

	d := Decision{Location: loc}
	if !n.CanUseHistoryAPI || current == nil {
		return d
	}
	if loc == requested && spellsOut(current, loc) {
		return d
	}

	d.RedirectURL = loc.URL()
	if loc == requested {
		d.RedirectURL = withExtraParams(d.RedirectURL, current.Query())
	}
	return d
}

// spellsOut reports whether u addresses loc exactly as loc.URL() does,
// ignoring parameter order and unrelated parameters.
func spellsOut(u *url.URL, loc Location) bool {
	want, err := url.Parse(loc.URL())
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if path != want.EscapedPath() {
		return false
	}

	got, canonical := u.Query(), want.Query()
	for _, key := range []string{"page", "id"} {
		if len(got[key]) != len(canonical[key]) || got.Get(key) != canonical.Get(key) {
			return false
		}
	}
	return true
}

// withExtraParams appends every parameter of q except page and id to target.
func withExtraParams(target string, q url.Values) string {
	extra := make(url.Values, len(q))
	for k, v := range q {
		if k != "page" && k != "id" {
			extra[k] = v
		}
	}
	if len(extra) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + extra.Encode()
}
