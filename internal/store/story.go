// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/models"
)

const storyColumns = `id, slug, title_en, title_he, date, type, image_url,
	excerpt_en, excerpt_he, content_en, content_he, is_visible, created_at, updated_at`

func scanStory(row scanner) (*models.Story, error) {
	var s models.Story
	err := row.Scan(
		&s.ID, &s.Slug, &s.Title.EN, &s.Title.HE, &s.Date, &s.Type, &s.ImageURL,
		&s.Excerpt.EN, &s.Excerpt.HE, &s.Content.EN, &s.Content.HE, &s.IsVisible,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStories returns every story, newest date first.
func (p *Postgres) ListStories(ctx context.Context) ([]models.Story, error) {
	return queryList(ctx, p, "list stories", scanStory,
		`SELECT `+storyColumns+` FROM stories ORDER BY date DESC, created_at DESC`)
}

func (p *Postgres) FindStory(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	s, err := scanStory(p.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find story", "story", id.String())
	}
	return s, nil
}

func (p *Postgres) FindStoryBySlug(ctx context.Context, slug string) (*models.Story, error) {
	s, err := scanStory(p.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE slug = $1`, slug))
	if err != nil {
		return nil, notFound(err, "find story by slug", "story", slug)
	}
	return s, nil
}

func (p *Postgres) CreateStory(ctx context.Context, s *models.Story) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO stories (id, slug, title_en, title_he, date, type, image_url,
		                     excerpt_en, excerpt_he, content_en, content_he, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		s.ID, s.Slug, s.Title.EN, s.Title.HE, s.Date, s.Type, s.ImageURL,
		s.Excerpt.EN, s.Excerpt.HE, s.Content.EN, s.Content.HE, s.IsVisible,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translate(err, "create story", "story", s.Slug)
	}
	return nil
}

func (p *Postgres) UpdateStory(ctx context.Context, s *models.Story) error {
	err := p.db.QueryRowContext(ctx, `
		UPDATE stories SET
			slug = $2, title_en = $3, title_he = $4, date = $5, type = $6, image_url = $7,
			excerpt_en = $8, excerpt_he = $9, content_en = $10, content_he = $11,
			is_visible = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		s.ID, s.Slug, s.Title.EN, s.Title.HE, s.Date, s.Type, s.ImageURL,
		s.Excerpt.EN, s.Excerpt.HE, s.Content.EN, s.Content.HE, s.IsVisible,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return updateErr(err, "update story", "story", s.ID, s.Slug)
	}
	return nil
}

func (p *Postgres) DeleteStory(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	return affected(res, "story", id.String())
}

func (p *Postgres) ListStoryTypes(ctx context.Context) ([]models.StoryType, error) {
	return queryList(ctx, p, "list story types", func(row scanner) (*models.StoryType, error) {
		var t models.StoryType
		if err := row.Scan(&t.Slug, &t.Name.EN, &t.Name.HE); err != nil {
			return nil, err
		}
		return &t, nil
	}, `SELECT slug, name_en, name_he FROM story_types ORDER BY slug`)
}

// SaveStoryType upserts by slug.
func (p *Postgres) SaveStoryType(ctx context.Context, t *models.StoryType) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO story_types (slug, name_en, name_he) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name_en = EXCLUDED.name_en, name_he = EXCLUDED.name_he`,
		t.Slug, t.Name.EN, t.Name.HE)
	if err != nil {
		return fmt.Errorf("save story type: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteStoryType(ctx context.Context, slug string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM story_types WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete story type: %w", err)
	}
	return affected(res, "story type", slug)
}

