// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"factorysite/internal/models"
)

func (p *Postgres) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	var c models.CompanyInfo
	err := p.db.QueryRowContext(ctx, `
		SELECT name_en, name_he, tagline_en, tagline_he, description_en, description_he,
		       phone_en, phone_he, email_en, email_he, address_en, address_he, updated_at
		FROM company_info WHERE id = 1`,
	).Scan(
		&c.Name.EN, &c.Name.HE, &c.Tagline.EN, &c.Tagline.HE, &c.Description.EN, &c.Description.HE,
		&c.Phone.EN, &c.Phone.HE, &c.Email.EN, &c.Email.HE, &c.Address.EN, &c.Address.HE, &c.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err, "get company info", "company info", "singleton")
	}
	return &c, nil
}

// SaveCompanyInfo upserts the singleton row.
func (p *Postgres) SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO company_info (id, name_en, name_he, tagline_en, tagline_he, description_en, description_he,
		                          phone_en, phone_he, email_en, email_he, address_en, address_he, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name_en = EXCLUDED.name_en, name_he = EXCLUDED.name_he,
			tagline_en = EXCLUDED.tagline_en, tagline_he = EXCLUDED.tagline_he,
			description_en = EXCLUDED.description_en, description_he = EXCLUDED.description_he,
			phone_en = EXCLUDED.phone_en, phone_he = EXCLUDED.phone_he,
			email_en = EXCLUDED.email_en, email_he = EXCLUDED.email_he,
			address_en = EXCLUDED.address_en, address_he = EXCLUDED.address_he,
			updated_at = NOW()
		RETURNING updated_at`,
		c.Name.EN, c.Name.HE, c.Tagline.EN, c.Tagline.HE, c.Description.EN, c.Description.HE,
		c.Phone.EN, c.Phone.HE, c.Email.EN, c.Email.HE, c.Address.EN, c.Address.HE,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save company info: %w", err)
	}
	return nil
}

// ListSocialLinks returns the stored links in platform display order.
func (p *Postgres) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	links, err := queryList(ctx, p, "list social links", func(row scanner) (*models.SocialLink, error) {
		var l models.SocialLink
		if err := row.Scan(&l.Platform, &l.URL, &l.IsVisible); err != nil {
			return nil, err
		}
		return &l, nil
	}, `SELECT platform, url, is_visible FROM social_links`)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[models.Platform]models.SocialLink, len(links))
	for _, l := range links {
		byPlatform[l.Platform] = l
	}
	var ordered []models.SocialLink
	for _, pl := range models.Platforms {
		if l, ok := byPlatform[pl]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (p *Postgres) SaveSocialLink(ctx context.Context, l *models.SocialLink) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO social_links (platform, url, is_visible) VALUES ($1, $2, $3)
		ON CONFLICT (platform) DO UPDATE SET url = EXCLUDED.url, is_visible = EXCLUDED.is_visible`,
		string(l.Platform), l.URL, l.IsVisible)
	if err != nil {
		return fmt.Errorf("save social link: %w", err)
	}
	return nil
}
