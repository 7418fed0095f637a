// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CompanyInfo is the singleton company profile.
type CompanyInfo struct {
	Name        Text      `json:"name"`
	Tagline     Text      `json:"tagline"`
	Description Text      `json:"description"`
	Phone       Text      `json:"phone"`
	Email       Text      `json:"email"`
	Address     Text      `json:"address"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Platform is a social network with a fixed slot on the site.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
)

// Platforms lists every platform in display order.
var Platforms = []Platform{
	PlatformFacebook, PlatformInstagram, PlatformLinkedIn, PlatformYouTube,
	PlatformWhatsApp, PlatformTwitter, PlatformTikTok,
}

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// SocialLink is keyed by platform; one row per platform.
type SocialLink struct {
	Platform  Platform `json:"platform"`
	URL       string   `json:"url"`
	IsVisible bool     `json:"is_visible"`
}
