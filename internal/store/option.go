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

const optionTypeColumns = `id, slug, name_en, name_he, input_type, unit, is_active, sort_order, created_at, updated_at`

const optionValueColumns = `id, option_type_id, slug, label_en, label_he, value, color_hex, image_url,
	price_modifier, is_active, sort_order, created_at`

func scanOptionType(row scanner) (*models.OptionType, error) {
	var t models.OptionType
	err := row.Scan(&t.ID, &t.Slug, &t.Name.EN, &t.Name.HE, &t.InputType, &t.Unit,
		&t.IsActive, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanOptionValue(row scanner) (*models.OptionValue, error) {
	var v models.OptionValue
	err := row.Scan(&v.ID, &v.OptionTypeID, &v.Slug, &v.Label.EN, &v.Label.HE, &v.Value,
		&v.ColorHex, &v.ImageURL, &v.PriceModifier, &v.IsActive, &v.SortOrder, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListOptionTypes loads types and values in two queries and stitches them.
func (p *Postgres) ListOptionTypes(ctx context.Context) ([]models.OptionType, error) {
	types, err := queryList(ctx, p, "list option types", scanOptionType,
		`SELECT `+optionTypeColumns+` FROM config_option_types`+nodeOrder)
	if err != nil {
		return nil, err
	}
	values, err := queryList(ctx, p, "list option values", scanOptionValue,
		`SELECT `+optionValueColumns+` FROM config_option_values`+nodeOrder)
	if err != nil {
		return nil, err
	}

	byType := make(map[uuid.UUID][]models.OptionValue, len(types))
	for _, v := range values {
		byType[v.OptionTypeID] = append(byType[v.OptionTypeID], v)
	}
	for i := range types {
		types[i].Values = byType[types[i].ID]
	}
	return types, nil
}

func (p *Postgres) FindOptionType(ctx context.Context, id uuid.UUID) (*models.OptionType, error) {
	t, err := scanOptionType(p.db.QueryRowContext(ctx,
		`SELECT `+optionTypeColumns+` FROM config_option_types WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find option type", "option type", id.String())
	}
	t.Values, err = queryList(ctx, p, "list option values", scanOptionValue,
		`SELECT `+optionValueColumns+` FROM config_option_values WHERE option_type_id = $1`+nodeOrder, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Postgres) CreateOptionType(ctx context.Context, t *models.OptionType) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO config_option_types (id, slug, name_en, name_he, input_type, unit, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		t.ID, t.Slug, t.Name.EN, t.Name.HE, string(t.InputType), t.Unit, t.IsActive, t.SortOrder,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return translate(err, "create option type", "option type", t.Slug)
	}
	return nil
}

func (p *Postgres) UpdateOptionType(ctx context.Context, t *models.OptionType) error {
	err := p.db.QueryRowContext(ctx, `
		UPDATE config_option_types SET
			slug = $2, name_en = $3, name_he = $4, input_type = $5, unit = $6,
			is_active = $7, sort_order = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID, t.Slug, t.Name.EN, t.Name.HE, string(t.InputType), t.Unit, t.IsActive, t.SortOrder,
	).Scan(&t.UpdatedAt)
	if err != nil {
		return updateErr(err, "update option type", "option type", t.ID, t.Slug)
	}
	return nil
}

func (p *Postgres) DeleteOptionType(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM config_option_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete option type: %w", err)
	}
	return affected(res, "option type", id.String())
}

func (p *Postgres) FindOptionValue(ctx context.Context, id uuid.UUID) (*models.OptionValue, error) {
	v, err := scanOptionValue(p.db.QueryRowContext(ctx,
		`SELECT `+optionValueColumns+` FROM config_option_values WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "find option value", "option value", id.String())
	}
	return v, nil
}

func (p *Postgres) CreateOptionValue(ctx context.Context, v *models.OptionValue) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO config_option_values (id, option_type_id, slug, label_en, label_he, value,
		                                  color_hex, image_url, price_modifier, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		v.ID, v.OptionTypeID, v.Slug, v.Label.EN, v.Label.HE, v.Value,
		v.ColorHex, v.ImageURL, v.PriceModifier, v.IsActive, v.SortOrder,
	).Scan(&v.CreatedAt)
	if err != nil {
		return translate(err, "create option value", "option value", v.Slug)
	}
	return nil
}

func (p *Postgres) UpdateOptionValue(ctx context.Context, v *models.OptionValue) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE config_option_values SET
			slug = $2, label_en = $3, label_he = $4, value = $5, color_hex = $6,
			image_url = $7, price_modifier = $8, is_active = $9, sort_order = $10
		WHERE id = $1`,
		v.ID, v.Slug, v.Label.EN, v.Label.HE, v.Value, v.ColorHex,
		v.ImageURL, v.PriceModifier, v.IsActive, v.SortOrder,
	)
	if err != nil {
		return translate(err, "update option value", "option value", v.Slug)
	}
	return affected(res, "option value", v.ID.String())
}

// DeleteOptionValue also drops the id from every enablement list.
func (p *Postgres) DeleteOptionValue(ctx context.Context, id uuid.UUID) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM config_option_values WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete option value: %w", err)
	}
	if err := affected(res, "option value", id.String()); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE product_config_options
		SET enabled_value_ids = enabled_value_ids - $1::text
		WHERE enabled_value_ids ? $1::text`, id.String())
	if err != nil {
		return fmt.Errorf("prune enabled values: %w", err)
	}
	return tx.Commit()
}

func scanProductOption(row scanner) (*models.ProductOption, error) {
	var (
		po  models.ProductOption
		raw []byte
	)
	if err := row.Scan(&po.ProductID, &po.OptionTypeID, &raw, &po.IsRequired, &po.SortOrder); err != nil {
		return nil, err
	}
	if err := decodeJSON(raw, &po.EnabledValueIDs); err != nil {
		return nil, err
	}
	return &po, nil
}

func (p *Postgres) ListProductOptions(ctx context.Context, productID uuid.UUID) ([]models.ProductOption, error) {
	return queryList(ctx, p, "list product options", scanProductOption, `
		SELECT product_id, option_type_id, enabled_value_ids, is_required, sort_order
		FROM product_config_options
		WHERE product_id = $1
		ORDER BY sort_order, option_type_id`, productID)
}

// SetProductOptions replaces every enablement row of the product in one
// transaction.
func (p *Postgres) SetProductOptions(ctx context.Context, productID uuid.UUID, opts []models.ProductOption) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return apperr.NotFound("product", productID.String())
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_config_options WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear product options: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_config_options (product_id, option_type_id, enabled_value_ids, is_required, sort_order)
		VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("prepare product options: %w", err)
	}
	defer stmt.Close()

	for _, po := range opts {
		enabled, err := jsonArg(po.EnabledValueIDs)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, productID, po.OptionTypeID, enabled, po.IsRequired, po.SortOrder); err != nil {
			return translate(err, "insert product option", "product option", po.OptionTypeID.String())
		}
	}
	return tx.Commit()
}
