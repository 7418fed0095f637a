// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package configurator assembles the option tree shown on a product page
// and validates a visitor's selection against it.
//
// A product offers an option type only when it has an enablement row for
// it. An enablement row with no value ids offers every active value of the
// type. Inactive types and values are never offered.
package configurator

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factorysite/internal/apperr"
	"factorysite/internal/i18n"
	"factorysite/internal/models"
)

// OptionSource is the slice of the repository the resolver reads.
type OptionSource interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListOptionTypes(ctx context.Context) ([]models.OptionType, error)
	ListProductOptions(ctx context.Context, productID uuid.UUID) ([]models.ProductOption, error)
}

// OptionGroup is one offered option type. Type.Values holds only the
// values the product offers, in sort order.
type OptionGroup struct {
	Type     models.OptionType
	Required bool
}

// Resolver builds configurators from an OptionSource.
type Resolver struct {
	src OptionSource
}

// New returns a Resolver reading from src.
func New(src OptionSource) *Resolver {
	return &Resolver{src: src}
}

// ProductConfiguration returns the offered option groups of a product,
// ordered by the type's sort_order. A product without enablement rows has
// an empty configurator.
func (r *Resolver) ProductConfiguration(ctx context.Context, productID uuid.UUID) ([]OptionGroup, error) {
	if _, err := r.src.FindProduct(ctx, productID); err != nil {
		return nil, err
	}
	enabled, err := r.src.ListProductOptions(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product options: %w", err)
	}
	if len(enabled) == 0 {
		return nil, nil
	}
	types, err := r.src.ListOptionTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load option types: %w", err)
	}
	return Assemble(types, enabled), nil
}

// Assemble joins global option types with a product's enablement rows.
func Assemble(types []models.OptionType, enabled []models.ProductOption) []OptionGroup {
	byType := make(map[uuid.UUID]models.ProductOption, len(enabled))
	for _, po := range enabled {
		byType[po.OptionTypeID] = po
	}

	type ranked struct {
		group       OptionGroup
		typeOrder   int
		enableOrder int
	}
	var out []ranked
	for _, t := range types {
		po, ok := byType[t.ID]
		if !ok || !t.IsActive {
			continue
		}
		var values []models.OptionValue
		for _, v := range t.Values {
			if v.IsActive && po.Offers(v.ID) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		slices.SortStableFunc(values, func(a, b models.OptionValue) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
		t.Values = values
		out = append(out, ranked{OptionGroup{Type: t, Required: po.IsRequired}, t.SortOrder, po.SortOrder})
	}

	slices.SortStableFunc(out, func(a, b ranked) int {
		if c := cmp.Compare(a.typeOrder, b.typeOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.enableOrder, b.enableOrder)
	})
	groups := make([]OptionGroup, len(out))
	for i, r := range out {
		groups[i] = r.group
	}
	return groups
}

// Selection maps an option type slug to the chosen value slugs.
type Selection map[string][]string

// Line is one validated choice, localized.
type Line struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Summary is the outcome of a valid selection.
type Summary struct {
	Lines      []Line          `json:"lines"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// String renders the summary as a single line for a quote message.
func (s *Summary) String() string {
	parts := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		parts[i] = l.Name + ": " + strings.Join(l.Values, ", ")
	}
	out := strings.Join(parts, "; ")
	if !s.PriceDelta.IsZero() {
		out += " (+" + s.PriceDelta.StringFixed(2) + ")"
	}
	return out
}

// Validate checks sel against groups. Omitted types are allowed unless the
// group is required; unknown types or values are rejected.
func Validate(groups []OptionGroup, sel Selection, lang i18n.Lang) (*Summary, error) {
	bySlug := make(map[string]*OptionGroup, len(groups))
	for i := range groups {
		bySlug[groups[i].Type.Slug] = &groups[i]
	}
	for slug := range sel {
		if _, ok := bySlug[slug]; !ok {
			return nil, apperr.Invalid(slug, "option %q is not offered for this product", slug)
		}
	}

	sum := &Summary{PriceDelta: decimal.Zero}
	for _, g := range groups {
		chosen := dedupe(sel[g.Type.Slug])
		if len(chosen) == 0 {
			if g.Required {
				return nil, apperr.Invalid(g.Type.Slug, "%s is required", g.Type.Name.In(lang))
			}
			continue
		}
		if len(chosen) > 1 && !g.Type.InputType.MultiSelect() {
			return nil, apperr.Invalid(g.Type.Slug, "%s accepts a single value", g.Type.Name.In(lang))
		}

		line := Line{Type: g.Type.Slug, Name: g.Type.Name.In(lang)}
		for _, valueSlug := range chosen {
			v := findValue(g.Type.Values, valueSlug)
			if v == nil {
				return nil, apperr.Invalid(g.Type.Slug, "value %q is not available for %s", valueSlug, g.Type.Name.In(lang))
			}
			line.Values = append(line.Values, v.Label.In(lang))
			sum.PriceDelta = sum.PriceDelta.Add(v.PriceModifier)
		}
		sum.Lines = append(sum.Lines, line)
	}
	return sum, nil
}

// Validate loads the product's configurator and validates sel against it.
func (r *Resolver) Validate(ctx context.Context, productID uuid.UUID, sel Selection, lang i18n.Lang) (*Summary, error) {
	groups, err := r.ProductConfiguration(ctx, productID)
	if err != nil {
		return nil, err
	}
	return Validate(groups, sel, lang)
}

func findValue(values []models.OptionValue, slug string) *models.OptionValue {
	for i := range values {
		if values[i].Slug == slug {
			return &values[i]
		}
	}
	return nil
}

func dedupe(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
