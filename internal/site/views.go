// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"time"

	"github.com/google/uuid"

	"factorysite/internal/i18n"
	"factorysite/internal/markdown"
	"factorysite/internal/models"
)

// NodeView is a localized service, subservice or category.
type NodeView struct {
	ID           uuid.UUID         `json:"id"`
	Kind         models.Kind       `json:"kind"`
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ImageURL     string            `json:"image_url"`
	HeroImageURL string            `json:"hero_image_url,omitempty"`
	AccentColor  string            `json:"accent_color,omitempty"`
	Visibility   models.Visibility `json:"visibility_status"`
	ComingSoon   bool              `json:"coming_soon"`
}

func nodeView(kind models.Kind, n *models.Node, lang i18n.Lang) NodeView {
	return NodeView{
		ID:           n.ID,
		Kind:         kind,
		Slug:         n.Slug,
		Title:        n.Title.In(lang),
		Description:  n.Description.In(lang),
		ImageURL:     n.ImageURL,
		HeroImageURL: n.HeroImageURL,
		AccentColor:  n.AccentColor,
		Visibility:   n.Visibility,
		ComingSoon:   n.Visibility == models.VisibilityComingSoon,
	}
}

// SpecView is a localized specification row.
type SpecView struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// ProductView is a localized product.
type ProductView struct {
	ID             uuid.UUID  `json:"id"`
	CategoryID     uuid.UUID  `json:"category_id"`
	Slug           string     `json:"slug"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	GalleryImages  []string   `json:"gallery_images"`
	VideoURL       string     `json:"video_url,omitempty"`
	Features       []string   `json:"features"`
	Specifications []SpecView `json:"specifications"`
	Has3DView      bool       `json:"has_3d_view"`
	InStock        bool       `json:"in_stock"`
	IsFeatured     bool       `json:"is_featured"`
}

func productView(p *models.Product, lang i18n.Lang) ProductView {
	specs := make([]SpecView, len(p.Specifications))
	for i, s := range p.Specifications {
		specs[i] = SpecView{Label: s.Label.In(lang), Value: s.Value, Unit: s.Unit}
	}
	gallery := append([]string{}, p.GalleryImages...)
	return ProductView{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Slug:           p.Slug,
		Title:          p.Title.In(lang),
		Subtitle:       p.Subtitle.In(lang),
		Description:    p.Description.In(lang),
		ImageURL:       p.ImageURL,
		GalleryImages:  gallery,
		VideoURL:       p.VideoURL,
		Features:       p.Features.In(lang),
		Specifications: specs,
		Has3DView:      p.Has3DView,
		InStock:        p.Visibility != models.VisibilityNotInStock,
		IsFeatured:     p.IsFeatured,
	}
}

// NavItem is a service with its subservices, one level deep.
type NavItem struct {
	NodeView
	Children []NodeView `json:"children"`
}

// Crumb is one ancestor in a breadcrumb.
type Crumb struct {
	Kind  models.Kind `json:"kind"`
	Slug  string      `json:"slug"`
	Title string      `json:"title"`
}

// ProductPage is a product with its ancestor chain.
type ProductPage struct {
	Product    ProductView `json:"product"`
	Breadcrumb []Crumb     `json:"breadcrumb"`
	Service    NodeView    `json:"service"`
	Subservice NodeView    `json:"subservice"`
	Category   NodeView    `json:"category"`
}

// ServicePage is a service with its listed subservices.
type ServicePage struct {
	Service     NodeView   `json:"service"`
	Subservices []NodeView `json:"subservices"`
}

// CategoryGroup is a category with its public products.
type CategoryGroup struct {
	Category NodeView      `json:"category"`
	Products []ProductView `json:"products"`
}

// SubservicePage is a subservice with its categories and products.
type SubservicePage struct {
	Service    NodeView        `json:"service"`
	Subservice NodeView        `json:"subservice"`
	Categories []CategoryGroup `json:"categories"`
}

// StoryView is a localized story. ContentHTML is only filled for the
// single-story page.
type StoryView struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	TypeName    string    `json:"type_name"`
	ImageURL    string    `json:"image_url"`
	Excerpt     string    `json:"excerpt"`
	ContentHTML string    `json:"content_html,omitempty"`
}

const excerptRunes = 200

func storyView(s *models.Story, typeNames map[string]models.Text, lang i18n.Lang) StoryView {
	excerpt := s.Excerpt.In(lang)
	if excerpt == "" {
		excerpt = markdown.Excerpt(s.Content.In(lang), excerptRunes)
	}
	typeName := s.Type
	if name, ok := typeNames[s.Type]; ok && name.In(lang) != "" {
		typeName = name.In(lang)
	}
	return StoryView{
		ID:       s.ID,
		Slug:     s.Slug,
		Title:    s.Title.In(lang),
		Date:     s.Date,
		Type:     s.Type,
		TypeName: typeName,
		ImageURL: s.ImageURL,
		Excerpt:  excerpt,
	}
}

// StoryTypeView is a localized story type label.
type StoryTypeView struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// HeroSlideView is a localized hero slide.
type HeroSlideView struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	ImageURL string    `json:"image_url"`
	VideoURL string    `json:"video_url,omitempty"`
	CTAText  string    `json:"cta_text"`
	CTALink  string    `json:"cta_link"`
}

// PartnerView is a partner logo.
type PartnerView struct {
	Name       string `json:"name"`
	LogoURL    string `json:"logo_url"`
	WebsiteURL string `json:"website_url,omitempty"`
}

// CompanyView is the localized company profile with visible social links.
type CompanyView struct {
	Name        string              `json:"name"`
	Tagline     string              `json:"tagline"`
	Description string              `json:"description"`
	Phone       string              `json:"phone"`
	Email       string              `json:"email"`
	Address     string              `json:"address"`
	SocialLinks []models.SocialLink `json:"social_links"`
}
