// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"
	"strings"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// CompanyPatch updates the company profile. Nil fields are left unchanged.
type CompanyPatch struct {
	Name        *models.Text `json:"name"`
	Tagline     *models.Text `json:"tagline"`
	Description *models.Text `json:"description"`
	Phone       *models.Text `json:"phone"`
	Email       *models.Text `json:"email"`
	Address     *models.Text `json:"address"`
}

// UpdateCompanyInfo merges patch into the company profile, creating it on
// first save.
func (m *Manager) UpdateCompanyInfo(ctx context.Context, patch CompanyPatch) (*models.CompanyInfo, error) {
	c, err := m.repo.GetCompanyInfo(ctx)
	if apperr.IsNotFound(err) {
		c, err = &models.CompanyInfo{}, nil
	}
	if err != nil {
		return nil, err
	}
	for _, f := range []struct {
		dst *models.Text
		src *models.Text
	}{
		{&c.Name, patch.Name}, {&c.Tagline, patch.Tagline}, {&c.Description, patch.Description},
		{&c.Phone, patch.Phone}, {&c.Email, patch.Email}, {&c.Address, patch.Address},
	} {
		if f.src != nil {
			*f.dst = f.src.Trimmed()
		}
	}
	if err := requireEnglish("name", c.Name, maxTitleLen); err != nil {
		return nil, err
	}
	if err := maxText("description", c.Description, maxDescriptionLen); err != nil {
		return nil, err
	}
	if err := m.repo.SaveCompanyInfo(ctx, c); err != nil {
		return nil, fmt.Errorf("save company info: %w", err)
	}
	return c, nil
}

// UpsertSocialLink stores the link for its platform.
func (m *Manager) UpsertSocialLink(ctx context.Context, l *models.SocialLink) error {
	l.Platform = models.Platform(strings.ToLower(strings.TrimSpace(string(l.Platform))))
	if !l.Platform.Valid() {
		return apperr.Invalid("platform", "unknown platform %q", l.Platform)
	}
	l.URL = strings.TrimSpace(l.URL)
	if l.IsVisible && l.URL == "" {
		return apperr.Invalid("url", "a visible link needs a URL")
	}
	if err := checkURL("url", l.URL); err != nil {
		return err
	}
	if err := m.repo.SaveSocialLink(ctx, l); err != nil {
		return fmt.Errorf("save social link: %w", err)
	}
	return nil
}

// SaveHomepageSection validates and stores one homepage section config.
func (m *Manager) SaveHomepageSection(ctx context.Context, s *models.HomepageSection) error {
	if err := s.Validate(); err != nil {
		return apperr.Invalid(string(s.Key), "%v", err)
	}
	if err := m.repo.SaveHomepageSection(ctx, s); err != nil {
		return fmt.Errorf("save homepage section: %w", err)
	}
	return nil
}
