// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// NodePatch updates the fields shared by services, subservices and
// categories. Nil fields are left unchanged.
type NodePatch struct {
	Slug         *string            `json:"slug"`
	Title        *models.Text       `json:"title"`
	Description  *models.Text       `json:"description"`
	ImageURL     *string            `json:"image_url"`
	HeroImageURL *string            `json:"hero_image_url"`
	AccentColor  *string            `json:"accent_color"`
	Visibility   *models.Visibility `json:"visibility_status"`
}

func (p *NodePatch) apply(n *models.Node) {
	if p.Slug != nil {
		n.Slug = *p.Slug
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.ImageURL != nil {
		n.ImageURL = *p.ImageURL
	}
	if p.HeroImageURL != nil {
		n.HeroImageURL = *p.HeroImageURL
	}
	if p.AccentColor != nil {
		n.AccentColor = *p.AccentColor
	}
	if p.Visibility != nil {
		n.Visibility = *p.Visibility
	}
}

// normalizeNode trims, fills defaults and validates a hierarchy node.
func normalizeNode(n *models.Node) error {
	n.Title = n.Title.Trimmed()
	n.Description = n.Description.Trimmed()
	if err := requireEnglish("title", n.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("description", n.Description, maxDescriptionLen); err != nil {
		return err
	}
	s, err := resolveSlug(n.Slug, n.Title)
	if err != nil {
		return err
	}
	n.Slug = s
	if n.Visibility == "" {
		n.Visibility = models.VisibilityVisible
	}
	if !models.ValidNodeVisibility(n.Visibility) {
		return apperr.Invalid("visibility_status", "unknown visibility %q", n.Visibility)
	}
	if err := checkColor("accent_color", n.AccentColor); err != nil {
		return err
	}
	return checkURLs(map[string]string{"image_url": n.ImageURL, "hero_image_url": n.HeroImageURL})
}

// CreateService validates s and appends it to the service list.
func (m *Manager) CreateService(ctx context.Context, s *models.Service) error {
	if err := normalizeNode(&s.Node); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindService, uuid.Nil)
	if err != nil {
		return err
	}
	s.SortOrder = order
	if err := m.repo.CreateService(ctx, s); err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

// UpdateService merges patch into the service.
func (m *Manager) UpdateService(ctx context.Context, id uuid.UUID, patch NodePatch) (*models.Service, error) {
	s, err := m.repo.FindService(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.apply(&s.Node)
	if err := normalizeNode(&s.Node); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateService(ctx, s); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return s, nil
}

// SubservicePatch is a NodePatch that may also move the subservice.
type SubservicePatch struct {
	NodePatch
	ServiceID *uuid.UUID `json:"service_id"`
}

// CreateSubservice validates s and appends it under its service.
func (m *Manager) CreateSubservice(ctx context.Context, s *models.Subservice) error {
	if err := normalizeNode(&s.Node); err != nil {
		return err
	}
	if err := m.requireParent(ctx, models.KindService, s.ServiceID); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindSubservice, s.ServiceID)
	if err != nil {
		return err
	}
	s.SortOrder = order
	if err := m.repo.CreateSubservice(ctx, s); err != nil {
		return fmt.Errorf("create subservice: %w", err)
	}
	return nil
}

// UpdateSubservice merges patch into the subservice. Moving it to another
// service appends it there and closes the gap it leaves behind.
func (m *Manager) UpdateSubservice(ctx context.Context, id uuid.UUID, patch SubservicePatch) (*models.Subservice, error) {
	s, err := m.repo.FindSubservice(ctx, id)
	if err != nil {
		return nil, err
	}
	oldParent := s.ServiceID
	patch.apply(&s.Node)
	if err := normalizeNode(&s.Node); err != nil {
		return nil, err
	}
	moved := patch.ServiceID != nil && *patch.ServiceID != oldParent
	if moved {
		if err := m.requireParent(ctx, models.KindService, *patch.ServiceID); err != nil {
			return nil, err
		}
		s.ServiceID = *patch.ServiceID
		if s.SortOrder, err = m.nextSortOrder(ctx, models.KindSubservice, s.ServiceID); err != nil {
			return nil, err
		}
	}
	if err := m.repo.UpdateSubservice(ctx, s); err != nil {
		return nil, fmt.Errorf("update subservice: %w", err)
	}
	if moved {
		if err := m.renumber(ctx, models.KindSubservice, oldParent); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// CategoryPatch is a NodePatch that may also move the category.
type CategoryPatch struct {
	NodePatch
	SubserviceID *uuid.UUID `json:"subservice_id"`
}

// CreateCategory validates c and appends it under its subservice.
func (m *Manager) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := normalizeNode(&c.Node); err != nil {
		return err
	}
	if err := m.requireParent(ctx, models.KindSubservice, c.SubserviceID); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindCategory, c.SubserviceID)
	if err != nil {
		return err
	}
	c.SortOrder = order
	if err := m.repo.CreateCategory(ctx, c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// UpdateCategory merges patch into the category. Moving it to another
// subservice appends it there and closes the gap it leaves behind.
func (m *Manager) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	c, err := m.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	oldParent := c.SubserviceID
	patch.apply(&c.Node)
	if err := normalizeNode(&c.Node); err != nil {
		return nil, err
	}
	moved := patch.SubserviceID != nil && *patch.SubserviceID != oldParent
	if moved {
		if err := m.requireParent(ctx, models.KindSubservice, *patch.SubserviceID); err != nil {
			return nil, err
		}
		c.SubserviceID = *patch.SubserviceID
		if c.SortOrder, err = m.nextSortOrder(ctx, models.KindCategory, c.SubserviceID); err != nil {
			return nil, err
		}
	}
	if err := m.repo.UpdateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if moved {
		if err := m.renumber(ctx, models.KindCategory, oldParent); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// requireParent reports a missing or unknown parent as a validation error.
func (m *Manager) requireParent(ctx context.Context, kind models.Kind, id uuid.UUID) error {
	field := string(kind) + "_id"
	if id == uuid.Nil {
		return apperr.Invalid(field, "%s is required", kind)
	}
	var err error
	switch kind {
	case models.KindService:
		_, err = m.repo.FindService(ctx, id)
	case models.KindSubservice:
		_, err = m.repo.FindSubservice(ctx, id)
	case models.KindCategory:
		_, err = m.repo.FindCategory(ctx, id)
	case models.KindOptionType:
		_, err = m.repo.FindOptionType(ctx, id)
	case models.KindProduct:
		_, err = m.repo.FindProduct(ctx, id)
	}
	if apperr.IsNotFound(err) {
		return apperr.Invalid(field, "%s %s does not exist", kind, id)
	}
	return err
}
