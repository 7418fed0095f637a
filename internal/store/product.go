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

const productColumns = `id, category_id, slug, title_en, title_he, subtitle_en, subtitle_he,
	description_en, description_he, image_url, gallery_images, video_url,
	features_en, features_he, specifications, has_3d_view, visibility_status,
	is_featured, sort_order, created_at, updated_at`

func scanProduct(row scanner) (*models.Product, error) {
	var (
		p                          models.Product
		gallery, featEN, featHE, s []byte
	)
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Slug, &p.Title.EN, &p.Title.HE, &p.Subtitle.EN, &p.Subtitle.HE,
		&p.Description.EN, &p.Description.HE, &p.ImageURL, &gallery, &p.VideoURL,
		&featEN, &featHE, &s, &p.Has3DView, &p.Visibility,
		&p.IsFeatured, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{gallery, &p.GalleryImages},
		{featEN, &p.Features.EN},
		{featHE, &p.Features.HE},
		{s, &p.Specifications},
	} {
		if err := decodeJSON(col.raw, col.dst); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// productArgs returns every column after id and category_id up to
// sort_order, in productColumns order.
func productArgs(p *models.Product) ([]any, error) {
	gallery, err := jsonArg(p.GalleryImages)
	if err != nil {
		return nil, err
	}
	featEN, err := jsonArg(p.Features.EN)
	if err != nil {
		return nil, err
	}
	featHE, err := jsonArg(p.Features.HE)
	if err != nil {
		return nil, err
	}
	specs, err := jsonArg(p.Specifications)
	if err != nil {
		return nil, err
	}
	return []any{
		p.Slug, p.Title.EN, p.Title.HE, p.Subtitle.EN, p.Subtitle.HE,
		p.Description.EN, p.Description.HE, p.ImageURL, gallery, p.VideoURL,
		featEN, featHE, specs, p.Has3DView, string(p.Visibility),
		p.IsFeatured, p.SortOrder,
	}, nil
}

func (p *Postgres) ListProducts(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	if categoryID == uuid.Nil {
		return queryList(ctx, p, "list products", scanProduct,
			`SELECT `+productColumns+` FROM products`+nodeOrder)
	}
	return queryList(ctx, p, "list products", scanProduct,
		`SELECT `+productColumns+` FROM products WHERE category_id = $1`+nodeOrder, categoryID)
}

func (p *Postgres) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := scanProduct(p.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find product", "product", id.String())
	}
	return prod, nil
}

func (p *Postgres) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	prod, err := scanProduct(p.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
	if err != nil {
		return nil, notFound(err, "find product by slug", "product", slug)
	}
	return prod, nil
}

func (p *Postgres) CreateProduct(ctx context.Context, prod *models.Product) error {
	args, err := productArgs(prod)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if prod.ID == uuid.Nil {
		prod.ID = uuid.New()
	}
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO products (id, category_id, slug, title_en, title_he, subtitle_en, subtitle_he,
		                      description_en, description_he, image_url, gallery_images, video_url,
		                      features_en, features_he, specifications, has_3d_view, visibility_status,
		                      is_featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`,
		append([]any{prod.ID, prod.CategoryID}, args...)...,
	).Scan(&prod.CreatedAt, &prod.UpdatedAt)
	if err != nil {
		return translate(err, "create product", "product", prod.Slug)
	}
	return nil
}

func (p *Postgres) UpdateProduct(ctx context.Context, prod *models.Product) error {
	args, err := productArgs(prod)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	err = p.db.QueryRowContext(ctx, `
		UPDATE products SET
			category_id = $2, slug = $3, title_en = $4, title_he = $5, subtitle_en = $6,
			subtitle_he = $7, description_en = $8, description_he = $9, image_url = $10,
			gallery_images = $11, video_url = $12, features_en = $13, features_he = $14,
			specifications = $15, has_3d_view = $16, visibility_status = $17,
			is_featured = $18, sort_order = $19, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		append([]any{prod.ID, prod.CategoryID}, args...)...,
	).Scan(&prod.UpdatedAt)
	if err != nil {
		return updateErr(err, "update product", "product", prod.ID, prod.Slug)
	}
	return nil
}

func (p *Postgres) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return affected(res, "product", id.String())
}
