// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the entities that map to database tables and the
// core types shared by the public read path and the admin write path.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a sortable entity collection. It doubles as the table key for
// reordering and cascade previews.
type Kind string

const (
	KindService     Kind = "service"
	KindSubservice  Kind = "subservice"
	KindCategory    Kind = "category"
	KindProduct     Kind = "product"
	KindHeroSlide   Kind = "hero_slide"
	KindPartner     Kind = "partner"
	KindOptionType  Kind = "option_type"
	KindOptionValue Kind = "option_value"
)

// Visibility controls whether and how an entity appears on the public site.
type Visibility string

const (
	VisibilityVisible    Visibility = "visible"
	VisibilityHidden     Visibility = "hidden"
	VisibilityComingSoon Visibility = "coming_soon"
	VisibilityNotInStock Visibility = "not_in_stock"
)

// ValidNodeVisibility reports whether v is allowed on services,
// subservices and categories.
func ValidNodeVisibility(v Visibility) bool {
	return v == VisibilityVisible || v == VisibilityHidden || v == VisibilityComingSoon
}

// ValidProductVisibility reports whether v is allowed on products.
func ValidProductVisibility(v Visibility) bool {
	return v == VisibilityVisible || v == VisibilityHidden || v == VisibilityNotInStock
}

// Node holds the fields shared by the three hierarchy levels above
// products. Services, subservices and categories embed it.
type Node struct {
	ID           uuid.UUID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        Text       `json:"title"`
	Description  Text       `json:"description"`
	ImageURL     string     `json:"image_url"`
	HeroImageURL string     `json:"hero_image_url"`
	AccentColor  string     `json:"accent_color"`
	Visibility   Visibility `json:"visibility_status"`
	SortOrder    int        `json:"sort_order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Field implements i18n.Fields.
func (n *Node) Field(name string) string {
	return textFields(name, map[string]Text{"title": n.Title, "description": n.Description})
}

// Service is the top of the catalog hierarchy.
type Service struct {
	Node
}

// Subservice belongs to a Service.
type Subservice struct {
	Node
	ServiceID uuid.UUID `json:"service_id"`
}

// Category (a "product category") belongs to a Subservice.
type Category struct {
	Node
	SubserviceID uuid.UUID `json:"subservice_id"`
}
