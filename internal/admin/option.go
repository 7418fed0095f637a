// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package admin

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// OptionTypePatch updates an option type. Nil fields are left unchanged.
type OptionTypePatch struct {
	Slug      *string           `json:"slug"`
	Name      *models.Text      `json:"name"`
	InputType *models.InputType `json:"input_type"`
	Unit      *string           `json:"unit"`
	IsActive  *bool             `json:"is_active"`
}

func normalizeOptionType(t *models.OptionType) error {
	t.Name = t.Name.Trimmed()
	t.Unit = strings.TrimSpace(t.Unit)
	if err := requireEnglish("name", t.Name, maxTitleLen); err != nil {
		return err
	}
	s, err := resolveSlug(t.Slug, t.Name)
	if err != nil {
		return err
	}
	t.Slug = s
	if t.InputType == "" {
		t.InputType = models.InputButtonGroup
	}
	if !t.InputType.Valid() {
		return apperr.Invalid("input_type", "unknown input type %q", t.InputType)
	}
	return nil
}

// CreateOptionType validates t and appends it to the option types.
func (m *Manager) CreateOptionType(ctx context.Context, t *models.OptionType) error {
	if err := normalizeOptionType(t); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindOptionType, uuid.Nil)
	if err != nil {
		return err
	}
	t.SortOrder = order
	if err := m.repo.CreateOptionType(ctx, t); err != nil {
		return fmt.Errorf("create option type: %w", err)
	}
	return nil
}

// UpdateOptionType merges patch into the option type.
func (m *Manager) UpdateOptionType(ctx context.Context, id uuid.UUID, patch OptionTypePatch) (*models.OptionType, error) {
	t, err := m.repo.FindOptionType(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Slug != nil {
		t.Slug = *patch.Slug
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.InputType != nil {
		t.InputType = *patch.InputType
	}
	if patch.Unit != nil {
		t.Unit = *patch.Unit
	}
	if patch.IsActive != nil {
		t.IsActive = *patch.IsActive
	}
	if err := normalizeOptionType(t); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateOptionType(ctx, t); err != nil {
		return nil, fmt.Errorf("update option type: %w", err)
	}
	return t, nil
}

// DeleteOptionType removes the type, its values and every product
// enablement that references it.
func (m *Manager) DeleteOptionType(ctx context.Context, id uuid.UUID) error {
	if err := m.repo.DeleteOptionType(ctx, id); err != nil {
		return fmt.Errorf("delete option type: %w", err)
	}
	return m.renumber(ctx, models.KindOptionType, uuid.Nil)
}

// OptionValuePatch updates an option value. Nil fields are left unchanged.
type OptionValuePatch struct {
	Slug          *string          `json:"slug"`
	Label         *models.Text     `json:"label"`
	Value         *string          `json:"value"`
	ColorHex      *string          `json:"color_hex"`
	ImageURL      *string          `json:"image_url"`
	PriceModifier *decimal.Decimal `json:"price_modifier"`
	IsActive      *bool            `json:"is_active"`
}

func normalizeOptionValue(v *models.OptionValue) error {
	v.Label = v.Label.Trimmed()
	v.Value = strings.TrimSpace(v.Value)
	if err := requireEnglish("label", v.Label, maxTitleLen); err != nil {
		return err
	}
	s, err := resolveSlug(v.Slug, v.Label)
	if err != nil {
		return err
	}
	v.Slug = s
	if v.Value == "" {
		v.Value = v.Slug
	}
	if err := checkColor("color_hex", v.ColorHex); err != nil {
		return err
	}
	if err := checkURL("image_url", v.ImageURL); err != nil {
		return err
	}
	if v.PriceModifier.Exponent() < -2 {
		return apperr.Invalid("price_modifier", "at most two decimal places are allowed")
	}
	return nil
}

// CreateOptionValue validates v and appends it to its option type.
func (m *Manager) CreateOptionValue(ctx context.Context, v *models.OptionValue) error {
	if err := normalizeOptionValue(v); err != nil {
		return err
	}
	if err := m.requireParent(ctx, models.KindOptionType, v.OptionTypeID); err != nil {
		return err
	}
	order, err := m.nextSortOrder(ctx, models.KindOptionValue, v.OptionTypeID)
	if err != nil {
		return err
	}
	v.SortOrder = order
	if err := m.repo.CreateOptionValue(ctx, v); err != nil {
		return fmt.Errorf("create option value: %w", err)
	}
	return nil
}

// UpdateOptionValue merges patch into the option value.
func (m *Manager) UpdateOptionValue(ctx context.Context, id uuid.UUID, patch OptionValuePatch) (*models.OptionValue, error) {
	v, err := m.repo.FindOptionValue(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Slug != nil {
		v.Slug = *patch.Slug
	}
	if patch.Label != nil {
		v.Label = *patch.Label
	}
	if patch.Value != nil {
		v.Value = *patch.Value
	}
	if patch.ColorHex != nil {
		v.ColorHex = *patch.ColorHex
	}
	if patch.ImageURL != nil {
		v.ImageURL = *patch.ImageURL
	}
	if patch.PriceModifier != nil {
		v.PriceModifier = *patch.PriceModifier
	}
	if patch.IsActive != nil {
		v.IsActive = *patch.IsActive
	}
	if err := normalizeOptionValue(v); err != nil {
		return nil, err
	}
	if err := m.repo.UpdateOptionValue(ctx, v); err != nil {
		return nil, fmt.Errorf("update option value: %w", err)
	}
	return v, nil
}

// DeleteOptionValue removes the value and drops it from every product
// enablement list.
func (m *Manager) DeleteOptionValue(ctx context.Context, id uuid.UUID) error {
	v, err := m.repo.FindOptionValue(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.DeleteOptionValue(ctx, id); err != nil {
		return fmt.Errorf("delete option value: %w", err)
	}
	return m.renumber(ctx, models.KindOptionValue, v.OptionTypeID)
}

// SetProductConfiguration replaces the option types offered on a product.
// Rows are stored in the given order; enabled values must belong to their
// type and a type may appear once.
func (m *Manager) SetProductConfiguration(ctx context.Context, productID uuid.UUID, rows []models.ProductOption) error {
	if err := m.requireParent(ctx, models.KindProduct, productID); err != nil {
		return err
	}
	types, err := m.repo.ListOptionTypes(ctx)
	if err != nil {
		return fmt.Errorf("list option types: %w", err)
	}
	byID := make(map[uuid.UUID]*models.OptionType, len(types))
	for i := range types {
		byID[types[i].ID] = &types[i]
	}

	seen := make(map[uuid.UUID]bool, len(rows))
	out := make([]models.ProductOption, len(rows))
	for i, row := range rows {
		field := fmt.Sprintf("options[%d]", i)
		t, ok := byID[row.OptionTypeID]
		if !ok {
			return apperr.Invalid(field, "option type %s does not exist", row.OptionTypeID)
		}
		if seen[row.OptionTypeID] {
			return apperr.Invalid(field, "option type %q is listed twice", t.Slug)
		}
		seen[row.OptionTypeID] = true

		enabled := make([]uuid.UUID, 0, len(row.EnabledValueIDs))
		for _, vid := range row.EnabledValueIDs {
			if !hasValue(t, vid) {
				return apperr.Invalid(field, "value %s does not belong to %q", vid, t.Slug)
			}
			if !slices.Contains(enabled, vid) {
				enabled = append(enabled, vid)
			}
		}
		out[i] = models.ProductOption{
			ProductID:       productID,
			OptionTypeID:    row.OptionTypeID,
			EnabledValueIDs: enabled,
			IsRequired:      row.IsRequired,
			SortOrder:       i,
		}
	}
	if err := m.repo.SetProductOptions(ctx, productID, out); err != nil {
		return fmt.Errorf("set product configuration: %w", err)
	}
	return nil
}

func hasValue(t *models.OptionType, id uuid.UUID) bool {
	for _, v := range t.Values {
		if v.ID == id {
			return true
		}
	}
	return false
}
