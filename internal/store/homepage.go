// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"factorysite/internal/models"
)

const heroSlideColumns = `id, title_en, title_he, subtitle_en, subtitle_he, image_url, video_url,
	cta_text_en, cta_text_he, cta_link, is_visible, sort_order, created_at`

func scanHeroSlide(row scanner) (*models.HeroSlide, error) {
	var s models.HeroSlide
	err := row.Scan(&s.ID, &s.Title.EN, &s.Title.HE, &s.Subtitle.EN, &s.Subtitle.HE,
		&s.ImageURL, &s.VideoURL, &s.CTAText.EN, &s.CTAText.HE, &s.CTALink,
		&s.IsVisible, &s.SortOrder, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	return queryList(ctx, p, "list hero slides", scanHeroSlide,
		`SELECT `+heroSlideColumns+` FROM hero_slides ORDER BY sort_order, created_at, id`)
}

func (p *Postgres) FindHeroSlide(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	s, err := scanHeroSlide(p.db.QueryRowContext(ctx, `SELECT `+heroSlideColumns+` FROM hero_slides WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find hero slide", "hero slide", id.String())
	}
	return s, nil
}

func (p *Postgres) CreateHeroSlide(ctx context.Context, s *models.HeroSlide) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO hero_slides (id, title_en, title_he, subtitle_en, subtitle_he, image_url, video_url,
		                         cta_text_en, cta_text_he, cta_link, is_visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		s.ID, s.Title.EN, s.Title.HE, s.Subtitle.EN, s.Subtitle.HE, s.ImageURL, s.VideoURL,
		s.CTAText.EN, s.CTAText.HE, s.CTALink, s.IsVisible, s.SortOrder,
	).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("create hero slide: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateHeroSlide(ctx context.Context, s *models.HeroSlide) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE hero_slides SET
			title_en = $2, title_he = $3, subtitle_en = $4, subtitle_he = $5, image_url = $6,
			video_url = $7, cta_text_en = $8, cta_text_he = $9, cta_link = $10,
			is_visible = $11, sort_order = $12
		WHERE id = $1`,
		s.ID, s.Title.EN, s.Title.HE, s.Subtitle.EN, s.Subtitle.HE, s.ImageURL, s.VideoURL,
		s.CTAText.EN, s.CTAText.HE, s.CTALink, s.IsVisible, s.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("update hero slide: %w", err)
	}
	return affected(res, "hero slide", s.ID.String())
}

func (p *Postgres) DeleteHeroSlide(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hero slide: %w", err)
	}
	return affected(res, "hero slide", id.String())
}

const partnerColumns = `id, name, logo_url, website_url, is_visible, sort_order, created_at`

func scanPartner(row scanner) (*models.Partner, error) {
	var pt models.Partner
	if err := row.Scan(&pt.ID, &pt.Name, &pt.LogoURL, &pt.WebsiteURL, &pt.IsVisible, &pt.SortOrder, &pt.CreatedAt); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (p *Postgres) ListPartners(ctx context.Context) ([]models.Partner, error) {
	return queryList(ctx, p, "list partners", scanPartner,
		`SELECT `+partnerColumns+` FROM partners ORDER BY sort_order, created_at, id`)
}

func (p *Postgres) FindPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	pt, err := scanPartner(p.db.QueryRowContext(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find partner", "partner", id.String())
	}
	return pt, nil
}

func (p *Postgres) CreatePartner(ctx context.Context, pt *models.Partner) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO partners (id, name, logo_url, website_url, is_visible, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		pt.ID, pt.Name, pt.LogoURL, pt.WebsiteURL, pt.IsVisible, pt.SortOrder,
	).Scan(&pt.CreatedAt)
	if err != nil {
		return fmt.Errorf("create partner: %w", err)
	}
	return nil
}

func (p *Postgres) UpdatePartner(ctx context.Context, pt *models.Partner) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE partners SET name = $2, logo_url = $3, website_url = $4, is_visible = $5, sort_order = $6
		WHERE id = $1`,
		pt.ID, pt.Name, pt.LogoURL, pt.WebsiteURL, pt.IsVisible, pt.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return affected(res, "partner", pt.ID.String())
}

func (p *Postgres) DeletePartner(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return affected(res, "partner", id.String())
}

// ListHomepageSections decodes every stored section. A row that no longer
// parses is logged and skipped so one bad blob cannot take the homepage
// down.
func (p *Postgres) ListHomepageSections(ctx context.Context) ([]models.HomepageSection, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT section, payload, updated_at FROM homepage_settings
		ORDER BY array_position(ARRAY['hero','services','stories','about','layout']::text[], section::text)`)
	if err != nil {
		return nil, fmt.Errorf("list homepage sections: %w", err)
	}
	defer rows.Close()

	var sections []models.HomepageSection
	for rows.Next() {
		var (
			key     string
			payload []byte
			s       models.HomepageSection
		)
		if err := rows.Scan(&key, &payload, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan homepage section: %w", err)
		}
		parsed, err := models.ParseSection(key, payload)
		if err != nil {
			slog.Warn("skipping invalid homepage section", "section", key, "error", err)
			continue
		}
		parsed.UpdatedAt = s.UpdatedAt
		sections = append(sections, *parsed)
	}
	return sections, rows.Err()
}

func (p *Postgres) SaveHomepageSection(ctx context.Context, s *models.HomepageSection) error {
	payload, err := s.Payload()
	if err != nil {
		return fmt.Errorf("encode homepage section: %w", err)
	}
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO homepage_settings (section, payload, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (section) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
		RETURNING updated_at`,
		string(s.Key), string(payload),
	).Scan(&s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save homepage section: %w", err)
	}
	return nil
}
