// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package configurator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factorysite/internal/i18n"
	"factorysite/internal/models"
)

// GroupView is the localized, display-ready form of an OptionGroup.
type GroupView struct {
	Slug      string           `json:"slug"`
	Name      string           `json:"name"`
	InputType models.InputType `json:"input_type"`
	Unit      string           `json:"unit,omitempty"`
	Required  bool             `json:"required"`
	Values    []ValueView      `json:"values"`
}

// ValueView is one selectable value.
type ValueView struct {
	ID            uuid.UUID       `json:"id"`
	Slug          string          `json:"slug"`
	Label         string          `json:"label"`
	Value         string          `json:"value"`
	ColorHex      string          `json:"color_hex,omitempty"`
	ImageURL      string          `json:"image_url,omitempty"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
}

// Localize resolves every label of groups into lang.
func Localize(groups []OptionGroup, lang i18n.Lang) []GroupView {
	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		gv := GroupView{
			Slug:      g.Type.Slug,
			Name:      g.Type.Name.In(lang),
			InputType: g.Type.InputType,
			Unit:      g.Type.Unit,
			Required:  g.Required,
			Values:    make([]ValueView, 0, len(g.Type.Values)),
		}
		for _, v := range g.Type.Values {
			gv.Values = append(gv.Values, ValueView{
				ID:            v.ID,
				Slug:          v.Slug,
				Label:         v.Label.In(lang),
				Value:         v.Value,
				ColorHex:      v.ColorHex,
				ImageURL:      v.ImageURL,
				PriceModifier: v.PriceModifier,
			})
		}
		views = append(views, gv)
	}
	return views
}
