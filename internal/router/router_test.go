package router

import (
	"net/url"
	"testing"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"/", Location{Page: PageHome}},
		{"/admin", Location{Page: PageLogin}},
		{"/admin/", Location{Page: PageLogin}},
		{"/admin/news", Location{Page: PageLogin}},
		{"/?page=admin", Location{Page: PageLogin}},
		{"/?page=news", Location{Page: PageNews}},
		{"/?page=news-detail&id=42", Location{Page: PageNewsDetail, ID: "42"}},
		{"/?page=documents&id=plan", Location{Page: PageDocuments, ID: "plan"}},
		{"/?page=admin-news", Location{Page: PageAdminNews}},
		{"/?page=News", Location{Page: PageHome}},
		{"/?page=<script>", Location{Page: PageHome}},
		{"/?page=", Location{Page: PageHome}},
		{"/?id=5", Location{Page: PageHome}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Parse(mustURL(t, tt.raw)); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse_Nil(t *testing.T) {
	if got := Parse(nil); got.Page != PageHome {
		t.Errorf("Parse(nil) = %+v, want home", got)
	}
}

func TestLocationURL(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{Page: PageHome}, "/"},
		{Location{Page: PageHome, ID: "3"}, "/"},
		{Location{Page: PageLogin}, "/admin"},
		{Location{Page: PageNews}, "/?page=news"},
		{Location{Page: PageNewsDetail, ID: "17"}, "/?page=news-detail&id=17"},
		{Location{Page: PageGallery, ID: "a b"}, "/?page=gallery&id=a+b"},
	}
	for _, tt := range tests {
		if got := tt.loc.URL(); got != tt.want {
			t.Errorf("%+v.URL() = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	locations := []Location{
		{Page: PageHome},
		{Page: PageLogin},
		{Page: PageIntro},
		{Page: PageNews, ID: PageNews.String()},
		{Page: PageNewsDetail, ID: "123"},
		{Page: PageDocuments, ID: "official"},
		{Page: PageGallery, ID: "7"},
		{Page: PageResources},
		{Page: PageContact},
		{Page: PageStaff},
		{Page: PageAdminBlocks},
		{Page: "custom-page-2", ID: "x&y=z"},
	}
	for _, loc := range locations {
		got := Parse(mustURL(t, loc.URL()))
		if got != loc {
			t.Errorf("Parse(%q) = %+v, want %+v", loc.URL(), got, loc)
		}
	}
}

func TestPagePredicates(t *testing.T) {
	if !PageAdminNews.IsAdmin() || PageNews.IsAdmin() {
		t.Error("IsAdmin misclassifies pages")
	}
	for _, p := range []Page{PageAdminUsers, PageAdminMenu, PageAdminSettings} {
		if !p.IsAdminOnly() {
			t.Errorf("%s should be admin only", p)
		}
	}
	if PageAdminNews.IsAdminOnly() {
		t.Error("admin-news should be open to editors")
	}
	if route, ok := PageAdminDocs.ConsoleRoute(); !ok || route != "/admin/documents" {
		t.Errorf("ConsoleRoute(admin-docs) = %q, %v", route, ok)
	}
	if _, ok := PageNews.ConsoleRoute(); ok {
		t.Error("public pages have no console route")
	}
	if !IsPublicPage(PageContact) || IsPublicPage(PageLogin) || IsPublicPage("nope") {
		t.Error("IsPublicPage misclassifies pages")
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name          string
		canonical     bool
		current       string
		loc           Location
		authenticated bool
		wantPage      Page
		wantRedirect  string
	}{
		{"admin page without user", true, "/?page=admin-news", Location{Page: PageAdminNews}, false, PageLogin, "/admin"},
		{"admin page without user, rewrites off", false, "/?page=admin-news", Location{Page: PageAdminNews}, false, PageLogin, ""},
		{"login while signed in", true, "/admin", Location{Page: PageLogin}, true, PageAdminDashboard, "/?page=admin-dashboard"},
		{"canonical url stays", true, "/?page=news-detail&id=4", Location{Page: PageNewsDetail, ID: "4"}, false, PageNewsDetail, ""},
		{"reordered query stays", true, "/?id=4&page=news-detail", Location{Page: PageNewsDetail, ID: "4"}, false, PageNewsDetail, ""},
		{"news page number stays", true, "/?page=news&p=2", Location{Page: PageNews}, false, PageNews, ""},
		{"unrelated params stay", true, "/?page=news&id=tin-truong&utm_source=zalo", Location{Page: PageNews, ID: "tin-truong"}, false, PageNews, ""},
		{"empty id rewritten", true, "/?page=news&id=&p=2", Location{Page: PageNews}, false, PageNews, "/?page=news&p=2"},
		{"alias keeps extra params", true, "/?page=home&p=3", Location{Page: PageHome}, false, PageHome, "/?p=3"},
		{"login redirect drops extra params", true, "/?page=admin-news&p=2", Location{Page: PageAdminNews}, false, PageLogin, "/admin"},
		{"trailing slash on admin", true, "/admin/", Location{Page: PageLogin}, false, PageLogin, "/admin"},
		{"reordered query in place", false, "/?id=4&page=news-detail", Location{Page: PageNewsDetail, ID: "4"}, false, PageNewsDetail, ""},
		{"home alias", true, "/?page=home", Location{Page: PageHome}, false, PageHome, "/"},
		{"home", true, "/", Location{Page: PageHome}, false, PageHome, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Navigator{CanUseHistoryAPI: tt.canonical}
			d := n.Navigate(mustURL(t, tt.current), tt.loc, tt.authenticated)
			if d.Location.Page != tt.wantPage {
				t.Errorf("Location.Page = %q, want %q", d.Location.Page, tt.wantPage)
			}
			if d.RedirectURL != tt.wantRedirect {
				t.Errorf("RedirectURL = %q, want %q", d.RedirectURL, tt.wantRedirect)
			}
		})
	}
}
