// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// LegacySchoolName is the placeholder name shipped by early installs.
// A stored configuration still carrying it is replaced by the fallback values.
const LegacySchoolName = "Trường THPT Mẫu"

// Fallback branding used when no configuration row can be read.
const (
	FallbackSchoolName    = "TRƯỜNG PTDTBT TH VÀ THCS SUỐI LƯ"
	FallbackSchoolSlogan  = "Dạy tốt - Học tốt - Rèn luyện tốt"
	FallbackSchoolAddress = "Xã Suối Lư, Huyện Điện Biên Đông, Tỉnh Điện Biên"
	FallbackPrimaryColor  = "#1e3a8a"
	FallbackHomeNewsCount = 6
)

// SiteConfig is the singleton site configuration.
type SiteConfig struct {
	Name              string `json:"name"`
	Slogan            string `json:"slogan"`
	LogoURL           string `json:"logo_url"`
	BannerURL         string `json:"banner_url"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	Hotline           string `json:"hotline"`
	Website           string `json:"website"`
	Fanpage           string `json:"fanpage"`
	MapEmbed          string `json:"map_embed"`
	FooterText        string `json:"footer_text"`
	PrimaryColor      string `json:"primary_color"`
	MetaTitle         string `json:"meta_title"`
	MetaDescription   string `json:"meta_description"`
	HomeNewsCount     int    `json:"home_news_count"`
	HomeShowProgram   bool   `json:"home_show_program"`
	ShowWelcomeBanner bool   `json:"show_welcome_banner"`
}

// DefaultSiteConfig returns the hard-coded configuration used when the
// stored row is absent or unreadable.
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		Name:              FallbackSchoolName,
		Slogan:            FallbackSchoolSlogan,
		Address:           FallbackSchoolAddress,
		PrimaryColor:      FallbackPrimaryColor,
		MetaTitle:         FallbackSchoolName,
		HomeNewsCount:     FallbackHomeNewsCount,
		HomeShowProgram:   false,
		ShowWelcomeBanner: false,
	}
}

// PatchLegacyConfig replaces the legacy placeholder branding with the
// fallback values. It returns true when the configuration was changed.
func PatchLegacyConfig(cfg *SiteConfig) bool {
	if cfg == nil || cfg.Name != LegacySchoolName {
		return false
	}
	cfg.Name = FallbackSchoolName
	cfg.Slogan = FallbackSchoolSlogan
	cfg.Address = FallbackSchoolAddress
	return true
}
