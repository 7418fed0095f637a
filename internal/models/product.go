// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxGalleryImages caps Product.GalleryImages.
const MaxGalleryImages = 5

// Specification is one row of a product's technical data sheet.
type Specification struct {
	Label Text   `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Product is a leaf of the catalog, owned by a Category.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	CategoryID     uuid.UUID       `json:"category_id"`
	Slug           string          `json:"slug"`
	Title          Text            `json:"title"`
	Subtitle       Text            `json:"subtitle"`
	Description    Text            `json:"description"`
	ImageURL       string          `json:"image_url"`
	GalleryImages  []string        `json:"gallery_images"`
	VideoURL       string          `json:"video_url"`
	Features       TextList        `json:"features"`
	Specifications []Specification `json:"specifications"`
	Has3DView      bool            `json:"has_3d_view"`
	Visibility     Visibility      `json:"visibility_status"`
	IsFeatured     bool            `json:"is_featured"`
	SortOrder      int             `json:"sort_order"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Field implements i18n.Fields.
func (p *Product) Field(name string) string {
	return textFields(name, map[string]Text{
		"title":       p.Title,
		"subtitle":    p.Subtitle,
		"description": p.Description,
	})
}

// IsPublic reports whether the product may appear on the public site.
// Out-of-stock products are listed with a badge.
func (p *Product) IsPublic() bool {
	return p.Visibility == VisibilityVisible || p.Visibility == VisibilityNotInStock
}

// Clone returns a deep copy; slices are never shared with the original.
func (p *Product) Clone() *Product {
	c := *p
	c.GalleryImages = cloneStrings(p.GalleryImages)
	c.Features = p.Features.Clone()
	if p.Specifications != nil {
		c.Specifications = make([]Specification, len(p.Specifications))
		copy(c.Specifications, p.Specifications)
	}
	return &c
}
