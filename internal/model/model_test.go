package model

import (
	"testing"
)

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role string
		want bool
	}{
		{name: "admin role", role: RoleAdmin, want: true},
		{name: "editor role", role: RoleEditor, want: false},
		{name: "guest role", role: RoleGuest, want: false},
		{name: "empty role", role: "", want: false},
		{name: "lowercase admin", role: "admin", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserCanEdit(t *testing.T) {
	for role, want := range map[string]bool{RoleAdmin: true, RoleEditor: true, RoleGuest: false, "": false} {
		u := &User{Role: role}
		if got := u.CanEdit(); got != want {
			t.Errorf("CanEdit(%q) = %v, want %v", role, got, want)
		}
	}
}

func TestPatchLegacyConfig(t *testing.T) {
	cfg := SiteConfig{Name: LegacySchoolName, Slogan: "old", Address: "old", Phone: "0123"}
	if !PatchLegacyConfig(&cfg) {
		t.Fatal("PatchLegacyConfig() = false, want true")
	}
	if cfg.Name != FallbackSchoolName || cfg.Slogan != FallbackSchoolSlogan || cfg.Address != FallbackSchoolAddress {
		t.Errorf("patched config = %+v", cfg)
	}
	if cfg.Phone != "0123" {
		t.Errorf("Phone = %q, unrelated fields must be kept", cfg.Phone)
	}

	other := SiteConfig{Name: "Trường khác"}
	if PatchLegacyConfig(&other) {
		t.Error("PatchLegacyConfig() changed a non-legacy config")
	}
	if PatchLegacyConfig(nil) {
		t.Error("PatchLegacyConfig(nil) = true")
	}
}

func TestDefaultSiteConfig(t *testing.T) {
	cfg := DefaultSiteConfig()
	if cfg.Name != FallbackSchoolName {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.HomeNewsCount != FallbackHomeNewsCount {
		t.Errorf("HomeNewsCount = %d, want %d", cfg.HomeNewsCount, FallbackHomeNewsCount)
	}
	if cfg.ShowWelcomeBanner || cfg.HomeShowProgram {
		t.Error("feature toggles should default to off")
	}
}

func TestParseContentDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		year int
	}{
		{"2024-03-01", true, 2024},
		{"2024-03-01T10:00:00Z", true, 2024},
		{"2024-03-01 10:00:00", true, 2024},
		{"01/03/2024", true, 2024},
		{"", false, 0},
		{"hôm qua", false, 0},
		{"2024-13-45", false, 0},
	}
	for _, tt := range tests {
		got, ok := ParseContentDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseContentDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got.Year() != tt.year {
			t.Errorf("ParseContentDate(%q) year = %d, want %d", tt.in, got.Year(), tt.year)
		}
	}
}

func TestPostHasBody(t *testing.T) {
	if (Post{}).HasBody() {
		t.Error("empty post reported a body")
	}
	if (Post{Content: "   "}).HasBody() {
		t.Error("whitespace body reported as loaded")
	}
	if !(Post{Content: "<p>x</p>"}).HasBody() {
		t.Error("post with content reported no body")
	}
}
