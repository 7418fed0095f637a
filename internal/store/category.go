// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// Services, subservices and categories share one column layout; only the
// table and the parent column differ.

const nodeColumns = `id, slug, title_en, title_he, description_en, description_he,
	image_url, hero_image_url, accent_color, visibility_status, sort_order,
	created_at, updated_at`

const nodeOrder = ` ORDER BY sort_order, created_at, id`

func nodeDest(n *models.Node) []any {
	return []any{
		&n.ID, &n.Slug, &n.Title.EN, &n.Title.HE, &n.Description.EN, &n.Description.HE,
		&n.ImageURL, &n.HeroImageURL, &n.AccentColor, &n.Visibility, &n.SortOrder,
		&n.CreatedAt, &n.UpdatedAt,
	}
}

// nodeArgs returns the insert/update values after id, in nodeColumns order.
func nodeArgs(n *models.Node) []any {
	return []any{
		n.Slug, n.Title.EN, n.Title.HE, n.Description.EN, n.Description.HE,
		n.ImageURL, n.HeroImageURL, n.AccentColor, string(n.Visibility), n.SortOrder,
	}
}

func scanService(row scanner) (*models.Service, error) {
	var s models.Service
	if err := row.Scan(nodeDest(&s.Node)...); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSubservice(row scanner) (*models.Subservice, error) {
	var s models.Subservice
	if err := row.Scan(append([]any{&s.ServiceID}, nodeDest(&s.Node)...)...); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(append([]any{&c.SubserviceID}, nodeDest(&c.Node)...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// queryList runs query and scans every row with scan.
func queryList[T any](ctx context.Context, p *Postgres, op string, scan func(scanner) (*T, error), query string, args ...any) ([]T, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (p *Postgres) ListServices(ctx context.Context) ([]models.Service, error) {
	return queryList(ctx, p, "list services", scanService,
		`SELECT `+nodeColumns+` FROM services`+nodeOrder)
}

func (p *Postgres) FindService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	s, err := scanService(p.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find service", "service", id.String())
	}
	return s, nil
}

func (p *Postgres) FindServiceBySlug(ctx context.Context, slug string) (*models.Service, error) {
	s, err := scanService(p.db.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM services WHERE slug = $1`, slug))
	if err != nil {
		return nil, notFound(err, "find service by slug", "service", slug)
	}
	return s, nil
}

func (p *Postgres) CreateService(ctx context.Context, s *models.Service) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO services (id, slug, title_en, title_he, description_en, description_he,
		                      image_url, hero_image_url, accent_color, visibility_status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		append([]any{s.ID}, nodeArgs(&s.Node)...)...,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translate(err, "create service", "service", s.Slug)
	}
	return nil
}

func (p *Postgres) UpdateService(ctx context.Context, s *models.Service) error {
	err := p.db.QueryRowContext(ctx, `
		UPDATE services SET
			slug = $2, title_en = $3, title_he = $4, description_en = $5, description_he = $6,
			image_url = $7, hero_image_url = $8, accent_color = $9, visibility_status = $10,
			sort_order = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		append([]any{s.ID}, nodeArgs(&s.Node)...)...,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return updateErr(err, "update service", "service", s.ID, s.Slug)
	}
	return nil
}

// DeleteService relies on ON DELETE CASCADE for the descendants.
func (p *Postgres) DeleteService(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return affected(res, "service", id.String())
}

func (p *Postgres) ListSubservices(ctx context.Context, serviceID uuid.UUID) ([]models.Subservice, error) {
	if serviceID == uuid.Nil {
		return queryList(ctx, p, "list subservices", scanSubservice,
			`SELECT service_id, `+nodeColumns+` FROM subservices`+nodeOrder)
	}
	return queryList(ctx, p, "list subservices", scanSubservice,
		`SELECT service_id, `+nodeColumns+` FROM subservices WHERE service_id = $1`+nodeOrder, serviceID)
}

func (p *Postgres) FindSubservice(ctx context.Context, id uuid.UUID) (*models.Subservice, error) {
	s, err := scanSubservice(p.db.QueryRowContext(ctx,
		`SELECT service_id, `+nodeColumns+` FROM subservices WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find subservice", "subservice", id.String())
	}
	return s, nil
}

// FindSubserviceBySlug returns the earliest created match; subservice slugs
// are only unique per service.
func (p *Postgres) FindSubserviceBySlug(ctx context.Context, slug string) (*models.Subservice, error) {
	s, err := scanSubservice(p.db.QueryRowContext(ctx,
		`SELECT service_id, `+nodeColumns+` FROM subservices WHERE slug = $1 ORDER BY created_at, id LIMIT 1`, slug))
	if err != nil {
		return nil, notFound(err, "find subservice by slug", "subservice", slug)
	}
	return s, nil
}

func (p *Postgres) CreateSubservice(ctx context.Context, s *models.Subservice) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO subservices (id, service_id, slug, title_en, title_he, description_en, description_he,
		                         image_url, hero_image_url, accent_color, visibility_status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		append([]any{s.ID, s.ServiceID}, nodeArgs(&s.Node)...)...,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return translate(err, "create subservice", "subservice", s.Slug)
	}
	return nil
}

func (p *Postgres) UpdateSubservice(ctx context.Context, s *models.Subservice) error {
	err := p.db.QueryRowContext(ctx, `
		UPDATE subservices SET
			service_id = $2, slug = $3, title_en = $4, title_he = $5, description_en = $6,
			description_he = $7, image_url = $8, hero_image_url = $9, accent_color = $10,
			visibility_status = $11, sort_order = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		append([]any{s.ID, s.ServiceID}, nodeArgs(&s.Node)...)...,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return updateErr(err, "update subservice", "subservice", s.ID, s.Slug)
	}
	return nil
}

func (p *Postgres) DeleteSubservice(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM subservices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subservice: %w", err)
	}
	return affected(res, "subservice", id.String())
}

func (p *Postgres) ListCategories(ctx context.Context, subserviceID uuid.UUID) ([]models.Category, error) {
	if subserviceID == uuid.Nil {
		return queryList(ctx, p, "list categories", scanCategory,
			`SELECT subservice_id, `+nodeColumns+` FROM categories`+nodeOrder)
	}
	return queryList(ctx, p, "list categories", scanCategory,
		`SELECT subservice_id, `+nodeColumns+` FROM categories WHERE subservice_id = $1`+nodeOrder, subserviceID)
}

func (p *Postgres) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := scanCategory(p.db.QueryRowContext(ctx,
		`SELECT subservice_id, `+nodeColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find category", "category", id.String())
	}
	return c, nil
}

func (p *Postgres) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c, err := scanCategory(p.db.QueryRowContext(ctx,
		`SELECT subservice_id, `+nodeColumns+` FROM categories WHERE slug = $1 ORDER BY created_at, id LIMIT 1`, slug))
	if err != nil {
		return nil, notFound(err, "find category by slug", "category", slug)
	}
	return c, nil
}

func (p *Postgres) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, subservice_id, slug, title_en, title_he, description_en, description_he,
		                        image_url, hero_image_url, accent_color, visibility_status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`,
		append([]any{c.ID, c.SubserviceID}, nodeArgs(&c.Node)...)...,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translate(err, "create category", "category", c.Slug)
	}
	return nil
}

func (p *Postgres) UpdateCategory(ctx context.Context, c *models.Category) error {
	err := p.db.QueryRowContext(ctx, `
		UPDATE categories SET
			subservice_id = $2, slug = $3, title_en = $4, title_he = $5, description_en = $6,
			description_he = $7, image_url = $8, hero_image_url = $9, accent_color = $10,
			visibility_status = $11, sort_order = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		append([]any{c.ID, c.SubserviceID}, nodeArgs(&c.Node)...)...,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return updateErr(err, "update category", "category", c.ID, c.Slug)
	}
	return nil
}

func (p *Postgres) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return affected(res, "category", id.String())
}

var reorderTables = map[models.Kind]string{
	models.KindService:     "services",
	models.KindSubservice:  "subservices",
	models.KindCategory:    "categories",
	models.KindProduct:     "products",
	models.KindHeroSlide:   "hero_slides",
	models.KindPartner:     "partners",
	models.KindOptionType:  "config_option_types",
	models.KindOptionValue: "config_option_values",
}

// Reorder writes sort_order = index for every id in a single transaction.
// An unknown id rolls the whole batch back.
func (p *Postgres) Reorder(ctx context.Context, kind models.Kind, ids []uuid.UUID) error {
	table, ok := reorderTables[kind]
	if !ok {
		return apperr.Invalid("kind", "%q cannot be reordered", kind)
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE `+table+` SET sort_order = $1 WHERE id = $2`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	for order, id := range ids {
		res, err := stmt.ExecContext(ctx, order, id)
		if err != nil {
			return fmt.Errorf("reorder %s %s: %w", kind, id, err)
		}
		if err := affected(res, string(kind), id.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}
