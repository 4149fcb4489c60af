package geoip

import (
	"path/filepath"
	"testing"
)

func TestCountry_LocalAddresses(t *testing.T) {
	var r *Resolver
	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", CodeLocal},
		{"::1", CodeLocal},
		{"10.1.2.3", CodeLocal},
		{"192.168.1.10", CodeLocal},
		{"172.20.0.5", CodeLocal},
		{"fe80::1", CodeLocal},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.Country(tt.ip); got != tt.want {
			t.Errorf("Country(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	r, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error = %v", err)
	}
	if r.Enabled() {
		t.Error("resolver without database reports enabled")
	}
	if got := r.Country("1.1.1.1"); got != "" {
		t.Errorf("Country() = %q, want empty", got)
	}
	if err := r.Reload(); err != nil {
		t.Errorf("Reload() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "GeoLite2-Country.mmdb"))
	if err == nil {
		t.Fatal("Open() with missing file returned no error")
	}
	if r == nil || r.Enabled() {
		t.Error("Open() must return a disabled resolver on error")
	}
}

func TestNilResolver(t *testing.T) {
	var r *Resolver
	if r.Enabled() {
		t.Error("nil resolver enabled")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCountryName(t *testing.T) {
	if got := CountryName("VN"); got != "Việt Nam" {
		t.Errorf("CountryName(VN) = %q", got)
	}
	if got := CountryName("ZZ"); got != "ZZ" {
		t.Errorf("CountryName(ZZ) = %q", got)
	}
}
