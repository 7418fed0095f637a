// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// StoryPatch updates a story. Nil fields are left unchanged.
type StoryPatch struct {
	Slug      *string      `json:"slug"`
	Title     *models.Text `json:"title"`
	Date      *time.Time   `json:"date"`
	Type      *string      `json:"type"`
	ImageURL  *string      `json:"image_url"`
	Excerpt   *models.Text `json:"excerpt"`
	Content   *models.Text `json:"content"`
	IsVisible *bool        `json:"is_visible"`
}

func (m *Manager) normalizeStory(ctx context.Context, s *models.Story) error {
	s.Title = s.Title.Trimmed()
	s.Excerpt = s.Excerpt.Trimmed()
	s.Type = strings.TrimSpace(s.Type)
	if err := requireEnglish("title", s.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("excerpt", s.Excerpt, maxExcerptLen); err != nil {
		return err
	}
	if err := maxText("content", s.Content, maxContentLen); err != nil {
		return err
	}
	slugValue, err := resolveSlug(s.Slug, s.Title)
	if err != nil {
		return err
	}
	s.Slug = slugValue
	if s.Date.IsZero() {
		return apperr.Invalid("date", "date is required")
	}
	if err := checkURL("image_url", s.ImageURL); err != nil {
		return err
	}
	if s.Type == "" {
		return apperr.Invalid("type", "story type is required")
	}
	types, err := m.repo.ListStoryTypes(ctx)
	if err != nil {
		return fmt.Errorf("list story types: %w", err)
	}
	for _, t := range types {
		if t.Slug == s.Type {
			return nil
		}
	}
	return apperr.Invalid("type", "unknown story type %q", s.Type)
}

// CreateStory validates and stores a story.
func (m *Manager) CreateStory(ctx context.Context, s *models.Story) error {
	if err := m.normalizeStory(ctx, s); err != nil {
		return err
	}
	if err := m.repo.CreateStory(ctx, s); err != nil {
		return fmt.Errorf("create story: %w", err)
	}
	return nil
}

// UpdateStory merges patch into the story.
func (m *Manager) UpdateStory(ctx context.Context, id uuid.UUID, patch StoryPatch) (*models.Story, error) {
	s, err := m.repo.FindStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Slug != nil {
		s.Slug = *patch.Slug
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Date != nil {
		s.Date = *patch.Date
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.ImageURL != nil {
		s.ImageURL = *patch.ImageURL
	}
	if patch.Excerpt != nil {
		s.Excerpt = *patch.Excerpt
	}
	if patch.Content != nil {
		s.Content = *patch.Content
	}
	if patch.IsVisible != nil {
		s.IsVisible = *patch.IsVisible
	}
	if err := m.normalizeStory(ctx, s); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateStory(ctx, s); err != nil {
		return nil, fmt.Errorf("update story: %w", err)
	}
	return s, nil
}

// DeleteStory removes a story.
func (m *Manager) DeleteStory(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.DeleteStory(ctx, id); err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// UpsertStoryType creates or renames a story type. Stories reference the
// slug, so a rename only changes the label.
func (m *Manager) UpsertStoryType(ctx context.Context, t *models.StoryType) error {
	t.Name = t.Name.Trimmed()
	if err := requireEnglish("name", t.Name, maxTitleLen); err != nil {
		return err
	}
	s, err := resolveSlug(t.Slug, t.Name)
	if err != nil {
		return err
	}
	t.Slug = s
	if err := m.repo.SaveStoryType(ctx, t); err != nil {
		return fmt.Errorf("save story type: %w", err)
	}
	return nil
}

// RenameStoryType changes the label of an existing story type.
func (m *Manager) RenameStoryType(ctx context.Context, slug string, name models.Text) (*models.StoryType, error) {
	types, err := m.repo.ListStoryTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list story types: %w", err)
	}
	for _, t := range types {
		if t.Slug == slug {
			t.Name = name
			if err := m.UpsertStoryType(ctx, &t); err != nil {
				return nil, err
			}
			return &t, nil
		}
	}
	return nil, apperr.NotFound("story type", slug)
}

// DeleteStoryType removes a story type no story uses.
func (m *Manager) DeleteStoryType(ctx context.Context, slug string) error {
	stories, err := m.repo.ListStories(ctx)
	if err != nil {
		return fmt.Errorf("list stories: %w", err)
	}
	used := 0
	for _, s := range stories {
		if s.Type == slug {
			used++
		}
	}
	if used > 0 {
		return &apperr.ConflictError{
			Entity:  "story type",
			Field:   "slug",
			Value:   slug,
			Message: fmt.Sprintf("story type %q is used by %d stories", slug, used),
		}
	}
	if err := m.repo.DeleteStoryType(ctx, slug); err != nil {
		return fmt.Errorf("delete story type: %w", err)
	}
	return nil
}

// HeroSlidePatch updates a hero slide. Nil fields are left unchanged.
type HeroSlidePatch struct {
	Title     *models.Text `json:"title"`
	Subtitle  *models.Text `json:"subtitle"`
	ImageURL  *string      `json:"image_url"`
	VideoURL  *string      `json:"video_url"`
	CTAText   *models.Text `json:"cta_text"`
	CTALink   *string      `json:"cta_link"`
	IsVisible *bool        `json:"is_visible"`
}

func normalizeHeroSlide(s *models.HeroSlide) error {
	s.Title = s.Title.Trimmed()
	s.Subtitle = s.Subtitle.Trimmed()
	s.CTAText = s.CTAText.Trimmed()
	if err := requireEnglish("title", s.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("subtitle", s.Subtitle, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("cta_text", s.CTAText, maxTitleLen); err != nil {
		return err
	}
	return checkURLs(map[string]string{"image_url": s.ImageURL, "video_url": s.VideoURL, "cta_link": s.CTALink})
}

// CreateHeroSlide appends a slide. A fourth slide is rejected before any
// write.
func (m *Manager) CreateHeroSlide(ctx context.Context, s *models.HeroSlide) error {
	if err := normalizeHeroSlide(s); err != nil {
		return err
	}
	count, err := m.nextSortOrder(ctx, models.KindHeroSlide, uuid.Nil)
	if err != nil {
		return err
	}
	if count >= models.MaxHeroSlides {
		return apperr.Invalid("hero_slides", "at most %d hero slides are allowed", models.MaxHeroSlides)
	}
	s.SortOrder = count
	if err := m.repo.CreateHeroSlide(ctx, s); err != nil {
		return fmt.Errorf("create hero slide: %w", err)
	}
	return nil
}

// UpdateHeroSlide merges patch into the slide.
func (m *Manager) UpdateHeroSlide(ctx context.Context, id uuid.UUID, patch HeroSlidePatch) (*models.HeroSlide, error) {
	s, err := m.repo.FindHeroSlide(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		s.Subtitle = *patch.Subtitle
	}
	if patch.ImageURL != nil {
		s.ImageURL = *patch.ImageURL
	}
	if patch.VideoURL != nil {
		s.VideoURL = *patch.VideoURL
	}
	if patch.CTAText != nil {
		s.CTAText = *patch.CTAText
	}
	if patch.CTALink != nil {
		s.CTALink = *patch.CTALink
	}
	if patch.IsVisible != nil {
		s.IsVisible = *patch.IsVisible
	}
	if err := normalizeHeroSlide(s); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateHeroSlide(ctx, s); err != nil {
		return nil, fmt.Errorf("update hero slide: %w", err)
	}
	return s, nil
}

// DeleteHeroSlide removes a slide and renumbers the rest.
func (m *Manager) DeleteHeroSlide(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.DeleteHeroSlide(ctx, id); err != nil {
		return fmt.Errorf("delete hero slide: %w", err)
	}
	return m.renumber(ctx, models.KindHeroSlide, uuid.Nil)
}

// PartnerPatch updates a partner. Nil fields are left unchanged.
type PartnerPatch struct {
	Name       *string `json:"name"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
	IsVisible  *bool   `json:"is_visible"`
}

func normalizePartner(p *models.Partner) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return apperr.Invalid("name", "name is required")
	}
	if len(p.Name) > maxTitleLen {
		return apperr.Invalid("name", "is too long (max %d characters)", maxTitleLen)
	}
	return checkURLs(map[string]string{"logo_url": p.LogoURL, "website_url": p.WebsiteURL})
}

// CreatePartner appends a partner.
func (m *Manager) CreatePartner(ctx context.Context, p *models.Partner) error {
	if err := normalizePartner(p); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindPartner, uuid.Nil)
	if err != nil {
		return err
	}
	p.SortOrder = order
	if err := m.repo.CreatePartner(ctx, p); err != nil {
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

// UpdatePartner merges patch into the partner.
func (m *Manager) UpdatePartner(ctx context.Context, id uuid.UUID, patch PartnerPatch) (*models.Partner, error) {
	p, err := m.repo.FindPartner(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.LogoURL != nil {
		p.LogoURL = *patch.LogoURL
	}
	if patch.WebsiteURL != nil {
		p.WebsiteURL = *patch.WebsiteURL
	}
	if patch.IsVisible != nil {
		p.IsVisible = *patch.IsVisible
	}
	if err := normalizePartner(p); err != nil {
		return nil, err
	}
	if err := m.repo.UpdatePartner(ctx, p); err != nil {
		return nil, fmt.Errorf("update partner: %w", err)
	}
	return p, nil
}

// DeletePartner removes a partner and renumbers the rest.
func (m *Manager) DeletePartner(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.DeletePartner(ctx, id); err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return m.renumber(ctx, models.KindPartner, uuid.Nil)
}
