// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// DeletePreview lists what a hierarchy delete would remove. Token must be
// echoed back to ConfirmDelete.
type DeletePreview struct {
	Kind        models.Kind `json:"kind"`
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Subservices int         `json:"subservices"`
	Categories  int         `json:"categories"`
	Products    int         `json:"products"`
	Token       string      `json:"token"`
}

// HasDescendants reports whether the delete cascades.
func (p *DeletePreview) HasDescendants() bool {
	return p.Subservices+p.Categories+p.Products > 0
}

// cascade is the loaded subtree of one node.
type cascade struct {
	title       string
	parent      uuid.UUID
	subservices []uuid.UUID
	categories  []uuid.UUID
	products    []uuid.UUID
}

func (m *Manager) loadCascade(ctx context.Context, kind models.Kind, id uuid.UUID) (*cascade, error) {
	c := &cascade{}
	var subs, cats []uuid.UUID
	switch kind {
	case models.KindService:
		s, err := m.repo.FindService(ctx, id)
		if err != nil {
			return nil, err
		}
		c.title = s.Title.EN
		rows, err := m.repo.ListSubservices(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list subservices: %w", err)
		}
		for _, r := range rows {
			subs = append(subs, r.ID)
		}
	case models.KindSubservice:
		s, err := m.repo.FindSubservice(ctx, id)
		if err != nil {
			return nil, err
		}
		c.title, c.parent = s.Title.EN, s.ServiceID
		rows, err := m.repo.ListCategories(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, r := range rows {
			cats = append(cats, r.ID)
		}
	case models.KindCategory:
		cat, err := m.repo.FindCategory(ctx, id)
		if err != nil {
			return nil, err
		}
		c.title, c.parent = cat.Title.EN, cat.SubserviceID
		if err := m.collectProducts(ctx, c, id); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, apperr.Invalid("kind", "%q is not a hierarchy level", kind)
	}

	c.subservices = subs
	for _, sub := range subs {
		rows, err := m.repo.ListCategories(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, r := range rows {
			cats = append(cats, r.ID)
		}
	}
	c.categories = cats
	for _, cat := range cats {
		if err := m.collectProducts(ctx, c, cat); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (m *Manager) collectProducts(ctx context.Context, c *cascade, categoryID uuid.UUID) error {
	rows, err := m.repo.ListProducts(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	for _, r := range rows {
		c.products = append(c.products, r.ID)
	}
	return nil
}

// token digests the node and its exact descendant set.
func (c *cascade) token(kind models.Kind, id uuid.UUID) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s:%s", kind, id)
	for _, group := range [][]uuid.UUID{c.subservices, c.categories, c.products} {
		sorted := slices.Clone(group)
		slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
		h.Write([]byte{'|'})
		for _, d := range sorted {
			h.Write(d[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}

// PreviewDelete reports the descendants a delete of a service, subservice
// or category would remove.
func (m *Manager) PreviewDelete(ctx context.Context, kind models.Kind, id uuid.UUID) (*DeletePreview, error) {
	c, err := m.loadCascade(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &DeletePreview{
		Kind:        kind,
		ID:          id,
		Title:       c.title,
		Subservices: len(c.subservices),
		Categories:  len(c.categories),
		Products:    len(c.products),
		Token:       c.token(kind, id),
	}, nil
}

// ConfirmDelete removes the node and its descendants. token must match the
// current preview; a subtree that changed since the preview is rejected
// with a ConflictError and nothing is deleted.
func (m *Manager) ConfirmDelete(ctx context.Context, kind models.Kind, id uuid.UUID, token string) error {
	c, err := m.loadCascade(ctx, kind, id)
	if err != nil {
		return err
	}
	if token == "" || token != c.token(kind, id) {
		return &apperr.ConflictError{
			Entity:  string(kind),
			Message: fmt.Sprintf("%s %q changed since the delete was previewed", kind, c.title),
		}
	}

	switch kind {
	case models.KindService:
		err = m.repo.DeleteService(ctx, id)
	case models.KindSubservice:
		err = m.repo.DeleteSubservice(ctx, id)
	case models.KindCategory:
		err = m.repo.DeleteCategory(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	return m.renumber(ctx, kind, c.parent)
}
