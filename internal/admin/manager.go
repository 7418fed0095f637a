// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package admin is the validated write path behind the admin API.
//
// Every mutation validates its input before touching the store, so a
// rejected call leaves the store unchanged. The Manager keeps no cache;
// callers re-read through the site package after a write.
package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
	"factorysite/internal/store"
)

// Manager performs admin mutations against a repository.
type Manager struct {
	repo store.Repository
}

// NewManager creates a Manager.
func NewManager(repo store.Repository) *Manager {
	return &Manager{repo: repo}
}

// siblings returns the ids of one sibling group in display order. parent
// is ignored for kinds without a parent.
func (m *Manager) siblings(ctx context.Context, kind models.Kind, parent uuid.UUID) ([]uuid.UUID, error) {
	switch kind {
	case models.KindService:
		rows, err := m.repo.ListServices(ctx)
		return nodeIDs(rows, err, func(s *models.Service) uuid.UUID { return s.ID })
	case models.KindSubservice:
		if parent == uuid.Nil {
			return nil, apperr.Invalid("parent_id", "service is required")
		}
		rows, err := m.repo.ListSubservices(ctx, parent)
		return nodeIDs(rows, err, func(s *models.Subservice) uuid.UUID { return s.ID })
	case models.KindCategory:
		if parent == uuid.Nil {
			return nil, apperr.Invalid("parent_id", "subservice is required")
		}
		rows, err := m.repo.ListCategories(ctx, parent)
		return nodeIDs(rows, err, func(c *models.Category) uuid.UUID { return c.ID })
	case models.KindProduct:
		if parent == uuid.Nil {
			return nil, apperr.Invalid("parent_id", "category is required")
		}
		rows, err := m.repo.ListProducts(ctx, parent)
		return nodeIDs(rows, err, func(p *models.Product) uuid.UUID { return p.ID })
	case models.KindHeroSlide:
		rows, err := m.repo.ListHeroSlides(ctx)
		return nodeIDs(rows, err, func(s *models.HeroSlide) uuid.UUID { return s.ID })
	case models.KindPartner:
		rows, err := m.repo.ListPartners(ctx)
		return nodeIDs(rows, err, func(p *models.Partner) uuid.UUID { return p.ID })
	case models.KindOptionType:
		rows, err := m.repo.ListOptionTypes(ctx)
		return nodeIDs(rows, err, func(t *models.OptionType) uuid.UUID { return t.ID })
	case models.KindOptionValue:
		if parent == uuid.Nil {
			return nil, apperr.Invalid("parent_id", "option type is required")
		}
		t, err := m.repo.FindOptionType(ctx, parent)
		if err != nil {
			return nil, err
		}
		return nodeIDs(t.Values, nil, func(v *models.OptionValue) uuid.UUID { return v.ID })
	}
	return nil, apperr.Invalid("kind", "%q cannot be reordered", kind)
}

func nodeIDs[T any](rows []T, err error, id func(*T) uuid.UUID) ([]uuid.UUID, error) {
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = id(&rows[i])
	}
	return ids, nil
}

// nextSortOrder is the append position of a sibling group.
func (m *Manager) nextSortOrder(ctx context.Context, kind models.Kind, parent uuid.UUID) (int, error) {
	ids, err := m.siblings(ctx, kind, parent)
	if err != nil {
		return 0, fmt.Errorf("count %s siblings: %w", kind, err)
	}
	return len(ids), nil
}

// renumber rewrites a sibling group to 0..n-1 in its current order.
func (m *Manager) renumber(ctx context.Context, kind models.Kind, parent uuid.UUID) error {
	ids, err := m.siblings(ctx, kind, parent)
	if err != nil {
		return fmt.Errorf("renumber %s: %w", kind, err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := m.repo.Reorder(ctx, kind, ids); err != nil {
		return fmt.Errorf("renumber %s: %w", kind, err)
	}
	return nil
}
