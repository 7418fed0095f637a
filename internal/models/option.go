// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InputType selects the widget the configurator renders for an option type.
type InputType string

const (
	InputButtonGroup   InputType = "button_group"
	InputColorPicker   InputType = "color_picker"
	InputDropdown      InputType = "dropdown"
	InputCheckboxGroup InputType = "checkbox_group"
)

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	switch t {
	case InputButtonGroup, InputColorPicker, InputDropdown, InputCheckboxGroup:
		return true
	}
	return false
}

// MultiSelect reports whether several values may be chosen at once.
func (t InputType) MultiSelect() bool {
	return t == InputCheckboxGroup
}

// OptionType is a global, reusable configuration dimension such as
// "Module Width". Values holds its ordered choices.
type OptionType struct {
	ID        uuid.UUID     `json:"id"`
	Slug      string        `json:"slug"`
	Name      Text          `json:"name"`
	InputType InputType     `json:"input_type"`
	Unit      string        `json:"unit,omitempty"`
	IsActive  bool          `json:"is_active"`
	SortOrder int           `json:"sort_order"`
	Values    []OptionValue `json:"values"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OptionValue is one selectable choice of an OptionType.
type OptionValue struct {
	ID            uuid.UUID       `json:"id"`
	OptionTypeID  uuid.UUID       `json:"option_type_id"`
	Slug          string          `json:"slug"`
	Label         Text            `json:"label"`
	Value         string          `json:"value"`
	ColorHex      string          `json:"color_hex,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	IsActive      bool            `json:"is_active"`
	SortOrder     int             `json:"sort_order"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductOption enables an OptionType on one product. An empty
// EnabledValueIDs offers every active value of the type.
type ProductOption struct {
	ProductID       uuid.UUID   `json:"product_id"`
	OptionTypeID    uuid.UUID   `json:"option_type_id"`
	EnabledValueIDs []uuid.UUID `json:"enabled_value_ids"`
	IsRequired      bool        `json:"is_required"`
	SortOrder       int         `json:"sort_order"`
}

// Offers reports whether the enablement row lets valueID through.
func (po *ProductOption) Offers(valueID uuid.UUID) bool {
	if len(po.EnabledValueIDs) == 0 {
		return true
	}
	for _, id := range po.EnabledValueIDs {
		if id == valueID {
			return true
		}
	}
	return false
}
