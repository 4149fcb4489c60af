// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves visitor IP addresses to ISO country codes with a
// MaxMind GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// CodeLocal marks private and loopback addresses.
const CodeLocal = "LOCAL"

var privateNets = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"100.64.0.0/10",
	"fc00::/7",
	"fe80::/10",
)

func mustParseCIDRs(blocks ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(blocks))
	for _, b := range blocks {
		_, n, err := net.ParseCIDR(b)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Resolver looks up countries. The zero value and a nil *Resolver resolve
// only local addresses.
type Resolver struct {
	mu      sync.RWMutex
	path    string
	modTime time.Time
	db      *maxminddb.Reader
}

// Open loads the database at path. An empty path yields a resolver
// without a database.
func Open(path string) (*Resolver, error) {
	r := &Resolver{path: path}
	if path == "" {
		return r, nil
	}
	if err := r.Reload(); err != nil {
		return r, err
	}
	return r, nil
}

// Reload reopens the database when the file changed on disk.
func (r *Resolver) Reload() error {
	if r == nil || r.path == "" {
		return nil
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("geoip database %s: %w", r.path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil && info.ModTime().Equal(r.modTime) {
		return nil
	}

	db, err := maxminddb.Open(r.path)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}
	if r.db != nil {
		_ = r.db.Close()
	}
	r.db = db
	r.modTime = info.ModTime()
	return nil
}

// Enabled reports whether a database is loaded.
func (r *Resolver) Enabled() bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db != nil
}

// Country returns the ISO code of ip, CodeLocal for private addresses and
// "" when unknown.
func (r *Resolver) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivate(parsed) {
		return CodeLocal
	}
	if r == nil {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.db == nil {
		return ""
	}

	var rec countryRecord
	if err := r.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func isPrivate(ip net.IP) bool {
	for _, n := range privateNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

var countryNames = map[string]string{
	CodeLocal: "Mạng nội bộ",
	"VN":      "Việt Nam",
	"LA":      "Lào",
	"KH":      "Campuchia",
	"TH":      "Thái Lan",
	"CN":      "Trung Quốc",
	"JP":      "Nhật Bản",
	"KR":      "Hàn Quốc",
	"SG":      "Singapore",
	"US":      "Hoa Kỳ",
	"FR":      "Pháp",
	"DE":      "Đức",
	"GB":      "Vương quốc Anh",
	"AU":      "Úc",
}

// CountryName returns the Vietnamese name of code, or code itself.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}
