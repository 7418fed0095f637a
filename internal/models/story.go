// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is a news or portfolio entry. Content is Markdown.
type Story struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Title     Text      `json:"title"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	ImageURL  string    `json:"image_url"`
	Excerpt   Text      `json:"excerpt"`
	Content   Text      `json:"content"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Field implements i18n.Fields.
func (s *Story) Field(name string) string {
	return textFields(name, map[string]Text{
		"title":   s.Title,
		"excerpt": s.Excerpt,
		"content": s.Content,
	})
}

// StoryType is the renameable registry entry behind Story.Type. Stories
// store the slug; the display name comes from here.
type StoryType struct {
	Slug string `json:"slug"`
	Name Text   `json:"name"`
}
