// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxHeroSlides caps the number of hero slides.
const MaxHeroSlides = 3

// HeroSlide is one slide of the homepage hero carousel.
type HeroSlide struct {
	ID        uuid.UUID `json:"id"`
	Title     Text      `json:"title"`
	Subtitle  Text      `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	VideoURL  string    `json:"video_url,omitempty"`
	CTAText   Text      `json:"cta_text"`
	CTALink   string    `json:"cta_link"`
	IsVisible bool      `json:"is_visible"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// Partner is a logo shown in the partners strip.
type Partner struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	LogoURL    string    `json:"logo_url"`
	WebsiteURL string    `json:"website_url,omitempty"`
	IsVisible  bool      `json:"is_visible"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// SectionKey tags a homepage section config.
type SectionKey string

const (
	SectionHero     SectionKey = "hero"
	SectionServices SectionKey = "services"
	SectionStories  SectionKey = "stories"
	SectionAbout    SectionKey = "about"
	SectionLayout   SectionKey = "layout"
)

// HeroSection configures the hero carousel.
type HeroSection struct {
	AutoplaySeconds int  `json:"autoplay_seconds"`
	ShowArrows      bool `json:"show_arrows"`
}

// ServicesSection configures the services grid.
type ServicesSection struct {
	Heading           Text `json:"heading"`
	Subheading        Text `json:"subheading"`
	ShowComingSoon    bool `json:"show_coming_soon"`
	ShowFeaturedItems bool `json:"show_featured_products"`
}

// StoriesSection configures the latest-stories strip.
type StoriesSection struct {
	Heading Text `json:"heading"`
	Limit   int  `json:"limit"`
}

// AboutSection configures the about blurb.
type AboutSection struct {
	Heading  Text   `json:"heading"`
	Body     Text   `json:"body"`
	ImageURL string `json:"image_url"`
}

// LayoutSection orders and toggles the homepage sections.
type LayoutSection struct {
	Order  []SectionKey `json:"order"`
	Hidden []SectionKey `json:"hidden"`
}

// HomepageSection is a tagged union over the known section configs.
// Exactly the field matching Key is set.
type HomepageSection struct {
	Key       SectionKey       `json:"key"`
	Hero      *HeroSection     `json:"hero,omitempty"`
	Services  *ServicesSection `json:"services,omitempty"`
	Stories   *StoriesSection  `json:"stories,omitempty"`
	About     *AboutSection    `json:"about,omitempty"`
	Layout    *LayoutSection   `json:"layout,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DefaultSections returns the configuration used when nothing is stored.
func DefaultSections() []HomepageSection {
	return []HomepageSection{
		{Key: SectionHero, Hero: &HeroSection{AutoplaySeconds: 6, ShowArrows: true}},
		{Key: SectionServices, Services: &ServicesSection{
			Heading:        T("Our Services", "השירותים שלנו"),
			ShowComingSoon: true,
		}},
		{Key: SectionStories, Stories: &StoriesSection{Heading: T("Latest Stories", "סיפורים אחרונים"), Limit: 3}},
		{Key: SectionAbout, About: &AboutSection{Heading: T("About Us", "אודותינו")}},
		{Key: SectionLayout, Layout: &LayoutSection{
			Order: []SectionKey{SectionHero, SectionServices, SectionStories, SectionAbout},
		}},
	}
}

// Validate checks that exactly the payload named by Key is present and
// that its contents are sane.
func (s *HomepageSection) Validate() error {
	set := 0
	for _, present := range []bool{s.Hero != nil, s.Services != nil, s.Stories != nil, s.About != nil, s.Layout != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("section %q must carry exactly one payload, got %d", s.Key, set)
	}

	switch s.Key {
	case SectionHero:
		if s.Hero == nil {
			return fmt.Errorf("hero section payload missing")
		}
		if s.Hero.AutoplaySeconds < 0 || s.Hero.AutoplaySeconds > 60 {
			return fmt.Errorf("hero autoplay must be between 0 and 60 seconds")
		}
	case SectionServices:
		if s.Services == nil {
			return fmt.Errorf("services section payload missing")
		}
	case SectionStories:
		if s.Stories == nil {
			return fmt.Errorf("stories section payload missing")
		}
		if s.Stories.Limit < 0 || s.Stories.Limit > 24 {
			return fmt.Errorf("stories limit must be between 0 and 24")
		}
	case SectionAbout:
		if s.About == nil {
			return fmt.Errorf("about section payload missing")
		}
	case SectionLayout:
		if s.Layout == nil {
			return fmt.Errorf("layout section payload missing")
		}
		seen := map[SectionKey]bool{}
		for _, k := range append(append([]SectionKey{}, s.Layout.Order...), s.Layout.Hidden...) {
			if !k.contentSection() {
				return fmt.Errorf("layout references unknown section %q", k)
			}
		}
		for _, k := range s.Layout.Order {
			if seen[k] {
				return fmt.Errorf("layout lists section %q twice", k)
			}
			seen[k] = true
		}
	default:
		return fmt.Errorf("unknown homepage section %q", s.Key)
	}
	return nil
}

func (k SectionKey) contentSection() bool {
	switch k {
	case SectionHero, SectionServices, SectionStories, SectionAbout:
		return true
	}
	return false
}

// Payload returns the JSON blob stored for the section.
func (s *HomepageSection) Payload() ([]byte, error) {
	switch s.Key {
	case SectionHero:
		return json.Marshal(s.Hero)
	case SectionServices:
		return json.Marshal(s.Services)
	case SectionStories:
		return json.Marshal(s.Stories)
	case SectionAbout:
		return json.Marshal(s.About)
	case SectionLayout:
		return json.Marshal(s.Layout)
	}
	return nil, fmt.Errorf("unknown homepage section %q", s.Key)
}

// ParseSection decodes a stored blob into the typed section for key.
// Unknown keys and malformed payloads are rejected, never passed through.
func ParseSection(key string, payload []byte) (*HomepageSection, error) {
	s := &HomepageSection{Key: SectionKey(strings.TrimSpace(key))}
	var target any
	switch s.Key {
	case SectionHero:
		s.Hero = &HeroSection{}
		target = s.Hero
	case SectionServices:
		s.Services = &ServicesSection{}
		target = s.Services
	case SectionStories:
		s.Stories = &StoriesSection{}
		target = s.Stories
	case SectionAbout:
		s.About = &AboutSection{}
		target = s.About
	case SectionLayout:
		s.Layout = &LayoutSection{}
		target = s.Layout
	default:
		return nil, fmt.Errorf("unknown homepage section %q", key)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return nil, fmt.Errorf("decode %s section: %w", key, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
