// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
	"factorysite/internal/slug"
)

// ProductPatch updates a product. Nil fields are left unchanged; a
// non-nil CategoryID different from the current one moves the product.
type ProductPatch struct {
	CategoryID     *uuid.UUID              `json:"category_id"`
	Slug           *string                 `json:"slug"`
	Title          *models.Text            `json:"title"`
	Subtitle       *models.Text            `json:"subtitle"`
	Description    *models.Text            `json:"description"`
	ImageURL       *string                 `json:"image_url"`
	GalleryImages  *[]string               `json:"gallery_images"`
	VideoURL       *string                 `json:"video_url"`
	Features       *models.TextList        `json:"features"`
	Specifications *[]models.Specification `json:"specifications"`
	Has3DView      *bool                   `json:"has_3d_view"`
	Visibility     *models.Visibility      `json:"visibility_status"`
	IsFeatured     *bool                   `json:"is_featured"`
}

func (p *ProductPatch) apply(pr *models.Product) {
	if p.Slug != nil {
		pr.Slug = *p.Slug
	}
	if p.Title != nil {
		pr.Title = *p.Title
	}
	if p.Subtitle != nil {
		pr.Subtitle = *p.Subtitle
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.ImageURL != nil {
		pr.ImageURL = *p.ImageURL
	}
	if p.GalleryImages != nil {
		pr.GalleryImages = append([]string{}, (*p.GalleryImages)...)
	}
	if p.VideoURL != nil {
		pr.VideoURL = *p.VideoURL
	}
	if p.Features != nil {
		pr.Features = p.Features.Clone()
	}
	if p.Specifications != nil {
		pr.Specifications = append([]models.Specification{}, (*p.Specifications)...)
	}
	if p.Has3DView != nil {
		pr.Has3DView = *p.Has3DView
	}
	if p.Visibility != nil {
		pr.Visibility = *p.Visibility
	}
	if p.IsFeatured != nil {
		pr.IsFeatured = *p.IsFeatured
	}
}

func normalizeProduct(p *models.Product) error {
	p.Title = p.Title.Trimmed()
	p.Subtitle = p.Subtitle.Trimmed()
	p.Description = p.Description.Trimmed()
	if err := requireEnglish("title", p.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("subtitle", p.Subtitle, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("description", p.Description, maxDescriptionLen); err != nil {
		return err
	}
	s, err := resolveSlug(p.Slug, p.Title)
	if err != nil {
		return err
	}
	p.Slug = s

	if p.Visibility == "" {
		p.Visibility = models.VisibilityVisible
	}
	if !models.ValidProductVisibility(p.Visibility) {
		return apperr.Invalid("visibility_status", "unknown visibility %q", p.Visibility)
	}

	gallery := p.GalleryImages[:0:0]
	for _, g := range p.GalleryImages {
		if g = strings.TrimSpace(g); g != "" {
			gallery = append(gallery, g)
		}
	}
	p.GalleryImages = gallery
	if len(p.GalleryImages) > models.MaxGalleryImages {
		return apperr.Invalid("gallery_images", "at most %d gallery images are allowed", models.MaxGalleryImages)
	}
	for i, g := range p.GalleryImages {
		if err := checkURL(fmt.Sprintf("gallery_images[%d]", i), g); err != nil {
			return err
		}
	}
	if err := checkURLs(map[string]string{"image_url": p.ImageURL, "video_url": p.VideoURL}); err != nil {
		return err
	}

	if len(p.Features.EN) > maxFeatures {
		return apperr.Invalid("features", "at most %d features are allowed", maxFeatures)
	}
	if len(p.Features.HE) > len(p.Features.EN) {
		return apperr.Invalid("features_he", "has more items than features_en")
	}
	for i, f := range p.Features.EN {
		if strings.TrimSpace(f) == "" {
			return apperr.Invalid(fmt.Sprintf("features_en[%d]", i), "English value is required")
		}
	}

	if len(p.Specifications) > maxSpecifications {
		return apperr.Invalid("specifications", "at most %d specifications are allowed", maxSpecifications)
	}
	for i := range p.Specifications {
		spec := &p.Specifications[i]
		spec.Label = spec.Label.Trimmed()
		spec.Value = strings.TrimSpace(spec.Value)
		spec.Unit = strings.TrimSpace(spec.Unit)
		if !spec.Label.HasEnglish() {
			return apperr.Invalid(fmt.Sprintf("specifications[%d].label", i), "English value is required")
		}
	}
	return nil
}

// CreateProduct validates p and appends it to its category.
func (m *Manager) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := normalizeProduct(p); err != nil {
		return err
	}
	if err := m.requireParent(ctx, models.KindCategory, p.CategoryID); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindProduct, p.CategoryID)
	if err != nil {
		return err
	}
	p.SortOrder = order
	if err := m.repo.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct merges patch into the product.
func (m *Manager) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	p, err := m.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	oldParent := p.CategoryID
	patch.apply(p)
	if err := normalizeProduct(p); err != nil {
		return nil, err
	}
	moved := patch.CategoryID != nil && *patch.CategoryID != oldParent
	if moved {
		if err := m.requireParent(ctx, models.KindCategory, *patch.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = *patch.CategoryID
		if p.SortOrder, err = m.nextSortOrder(ctx, models.KindProduct, p.CategoryID); err != nil {
			return nil, err
		}
	}
	if err := m.repo.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if moved {
		if err := m.renumber(ctx, models.KindProduct, oldParent); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// DeleteProduct removes a product and closes the gap in its category.
// Products have no descendants, so no confirmation is needed.
func (m *Manager) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	p, err := m.repo.FindProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return m.renumber(ctx, models.KindProduct, p.CategoryID)
}

// DuplicateProduct deep-copies a product under a free "-copy" slug,
// appends it to the same category and hides it. The option enablement of
// the source is copied as well.
func (m *Manager) DuplicateProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	src, err := m.repo.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	var lookupErr error
	taken := func(candidate string) bool {
		_, err := m.repo.FindProductBySlug(ctx, candidate)
		if err != nil && !apperr.IsNotFound(err) {
			lookupErr = err
			return false
		}
		return err == nil
	}
	newSlug := slug.Copy(src.Slug, taken)
	if lookupErr != nil {
		return nil, fmt.Errorf("duplicate product: %w", lookupErr)
	}
	if utf8.RuneCountInString(newSlug) > maxSlugLen {
		return nil, apperr.Invalid("slug", "copy slug %q is too long (max %d characters)", newSlug, maxSlugLen)
	}

	dup := src.Clone()
	dup.ID = uuid.Nil
	dup.Slug = newSlug
	dup.Visibility = models.VisibilityHidden
	if dup.SortOrder, err = m.nextSortOrder(ctx, models.KindProduct, dup.CategoryID); err != nil {
		return nil, err
	}
	if err := m.repo.CreateProduct(ctx, dup); err != nil {
		return nil, fmt.Errorf("duplicate product: %w", err)
	}

	opts, err := m.repo.ListProductOptions(ctx, src.ID)
	if err != nil {
		return nil, fmt.Errorf("duplicate product options: %w", err)
	}
	if len(opts) > 0 {
		copied := make([]models.ProductOption, len(opts))
		for i, o := range opts {
			o.ProductID = dup.ID
			o.EnabledValueIDs = append([]uuid.UUID(nil), o.EnabledValueIDs...)
			copied[i] = o
		}
		if err := m.repo.SetProductOptions(ctx, dup.ID, copied); err != nil {
			return nil, fmt.Errorf("duplicate product options: %w", err)
		}
	}
	return dup, nil
}
