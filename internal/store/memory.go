// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

var _ Repository = (*Memory)(nil)

// Memory is an in-process Repository. Rows are kept in insertion order so
// that sorting by sort_order alone breaks ties by creation order. Every
// value handed out is a copy.
type Memory struct {
	mu sync.RWMutex

	services       []models.Service
	subservices    []models.Subservice
	categories     []models.Category
	products       []models.Product
	optionTypes    []models.OptionType
	optionValues   []models.OptionValue
	productOptions []models.ProductOption
	stories        []models.Story
	storyTypes     []models.StoryType
	heroSlides     []models.HeroSlide
	partners       []models.Partner
	company        *models.CompanyInfo
	socialLinks    []models.SocialLink
	sections       map[models.SectionKey]models.HomepageSection
	contacts       []models.ContactSubmission
	quotes         []models.QuoteSubmission

	now func() time.Time
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		sections: make(map[models.SectionKey]models.HomepageSection),
		now:      time.Now,
	}
}

func (m *Memory) stampNode(n *models.Node) {
	now := m.now()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
}

func indexOf[T any](items []T, match func(*T) bool) int {
	for i := range items {
		if match(&items[i]) {
			return i
		}
	}
	return -1
}

func sortByOrder[T any](items []T, order func(*T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(order(&a), order(&b))
	})
}

func applyOrder[T any](items []T, ids []uuid.UUID, id func(*T) uuid.UUID, set func(*T, int), entity string) error {
	positions := make([]int, len(ids))
	for i, want := range ids {
		idx := indexOf(items, func(t *T) bool { return id(t) == want })
		if idx < 0 {
			return apperr.NotFound(entity, want.String())
		}
		positions[i] = idx
	}
	for order, idx := range positions {
		set(&items[idx], order)
	}
	return nil
}

// --- Services ---

func (m *Memory) ListServices(_ context.Context) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.services)
	sortByOrder(out, func(s *models.Service) int { return s.SortOrder })
	return out, nil
}

func (m *Memory) FindService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.services, func(s *models.Service) bool { return s.ID == id }); i >= 0 {
		s := m.services[i]
		return &s, nil
	}
	return nil, apperr.NotFound("service", id.String())
}

func (m *Memory) FindServiceBySlug(_ context.Context, slug string) (*models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.services, func(s *models.Service) bool { return s.Slug == slug }); i >= 0 {
		s := m.services[i]
		return &s, nil
	}
	return nil, apperr.NotFound("service", slug)
}

func (m *Memory) CreateService(_ context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.services, func(o *models.Service) bool { return o.Slug == s.Slug }) >= 0 {
		return apperr.Conflict("service", "slug", s.Slug)
	}
	m.stampNode(&s.Node)
	m.services = append(m.services, *s)
	return nil
}

func (m *Memory) UpdateService(_ context.Context, s *models.Service) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.services, func(o *models.Service) bool { return o.ID == s.ID })
	if i < 0 {
		return apperr.NotFound("service", s.ID.String())
	}
	if indexOf(m.services, func(o *models.Service) bool { return o.Slug == s.Slug && o.ID != s.ID }) >= 0 {
		return apperr.Conflict("service", "slug", s.Slug)
	}
	m.stampNode(&s.Node)
	m.services[i] = *s
	return nil
}

func (m *Memory) DeleteService(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.services, func(o *models.Service) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("service", id.String())
	}
	m.services = slices.Delete(m.services, i, i+1)
	for _, sub := range slices.Clone(m.subservices) {
		if sub.ServiceID == id {
			m.deleteSubserviceLocked(sub.ID)
		}
	}
	return nil
}

// --- Subservices ---

func (m *Memory) ListSubservices(_ context.Context, serviceID uuid.UUID) ([]models.Subservice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Subservice
	for _, s := range m.subservices {
		if serviceID == uuid.Nil || s.ServiceID == serviceID {
			out = append(out, s)
		}
	}
	sortByOrder(out, func(s *models.Subservice) int { return s.SortOrder })
	return out, nil
}

func (m *Memory) FindSubservice(_ context.Context, id uuid.UUID) (*models.Subservice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.subservices, func(s *models.Subservice) bool { return s.ID == id }); i >= 0 {
		s := m.subservices[i]
		return &s, nil
	}
	return nil, apperr.NotFound("subservice", id.String())
}

func (m *Memory) FindSubserviceBySlug(_ context.Context, slug string) (*models.Subservice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.subservices, func(s *models.Subservice) bool { return s.Slug == slug }); i >= 0 {
		s := m.subservices[i]
		return &s, nil
	}
	return nil, apperr.NotFound("subservice", slug)
}

func (m *Memory) CreateSubservice(_ context.Context, s *models.Subservice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.services, func(o *models.Service) bool { return o.ID == s.ServiceID }) < 0 {
		return apperr.Invalid("service_id", "service does not exist")
	}
	if indexOf(m.subservices, func(o *models.Subservice) bool { return o.ServiceID == s.ServiceID && o.Slug == s.Slug }) >= 0 {
		return apperr.Conflict("subservice", "slug", s.Slug)
	}
	m.stampNode(&s.Node)
	m.subservices = append(m.subservices, *s)
	return nil
}

func (m *Memory) UpdateSubservice(_ context.Context, s *models.Subservice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.subservices, func(o *models.Subservice) bool { return o.ID == s.ID })
	if i < 0 {
		return apperr.NotFound("subservice", s.ID.String())
	}
	if indexOf(m.services, func(o *models.Service) bool { return o.ID == s.ServiceID }) < 0 {
		return apperr.Invalid("service_id", "service does not exist")
	}
	if indexOf(m.subservices, func(o *models.Subservice) bool {
		return o.ServiceID == s.ServiceID && o.Slug == s.Slug && o.ID != s.ID
	}) >= 0 {
		return apperr.Conflict("subservice", "slug", s.Slug)
	}
	m.stampNode(&s.Node)
	m.subservices[i] = *s
	return nil
}

func (m *Memory) DeleteSubservice(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.deleteSubserviceLocked(id) {
		return apperr.NotFound("subservice", id.String())
	}
	return nil
}

func (m *Memory) deleteSubserviceLocked(id uuid.UUID) bool {
	i := indexOf(m.subservices, func(o *models.Subservice) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	m.subservices = slices.Delete(m.subservices, i, i+1)
	for _, c := range slices.Clone(m.categories) {
		if c.SubserviceID == id {
			m.deleteCategoryLocked(c.ID)
		}
	}
	return true
}

// --- Categories ---

func (m *Memory) ListCategories(_ context.Context, subserviceID uuid.UUID) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Category
	for _, c := range m.categories {
		if subserviceID == uuid.Nil || c.SubserviceID == subserviceID {
			out = append(out, c)
		}
	}
	sortByOrder(out, func(c *models.Category) int { return c.SortOrder })
	return out, nil
}

func (m *Memory) FindCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.categories, func(c *models.Category) bool { return c.ID == id }); i >= 0 {
		c := m.categories[i]
		return &c, nil
	}
	return nil, apperr.NotFound("category", id.String())
}

func (m *Memory) FindCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.categories, func(c *models.Category) bool { return c.Slug == slug }); i >= 0 {
		c := m.categories[i]
		return &c, nil
	}
	return nil, apperr.NotFound("category", slug)
}

func (m *Memory) CreateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.subservices, func(o *models.Subservice) bool { return o.ID == c.SubserviceID }) < 0 {
		return apperr.Invalid("subservice_id", "subservice does not exist")
	}
	if indexOf(m.categories, func(o *models.Category) bool { return o.SubserviceID == c.SubserviceID && o.Slug == c.Slug }) >= 0 {
		return apperr.Conflict("category", "slug", c.Slug)
	}
	m.stampNode(&c.Node)
	m.categories = append(m.categories, *c)
	return nil
}

func (m *Memory) UpdateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.categories, func(o *models.Category) bool { return o.ID == c.ID })
	if i < 0 {
		return apperr.NotFound("category", c.ID.String())
	}
	if indexOf(m.subservices, func(o *models.Subservice) bool { return o.ID == c.SubserviceID }) < 0 {
		return apperr.Invalid("subservice_id", "subservice does not exist")
	}
	if indexOf(m.categories, func(o *models.Category) bool {
		return o.SubserviceID == c.SubserviceID && o.Slug == c.Slug && o.ID != c.ID
	}) >= 0 {
		return apperr.Conflict("category", "slug", c.Slug)
	}
	m.stampNode(&c.Node)
	m.categories[i] = *c
	return nil
}

func (m *Memory) DeleteCategory(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.deleteCategoryLocked(id) {
		return apperr.NotFound("category", id.String())
	}
	return nil
}

func (m *Memory) deleteCategoryLocked(id uuid.UUID) bool {
	i := indexOf(m.categories, func(o *models.Category) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	m.categories = slices.Delete(m.categories, i, i+1)
	for _, p := range slices.Clone(m.products) {
		if p.CategoryID == id {
			m.deleteProductLocked(p.ID)
		}
	}
	return true
}

// --- Products ---

func (m *Memory) ListProducts(_ context.Context, categoryID uuid.UUID) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Product
	for i := range m.products {
		if categoryID == uuid.Nil || m.products[i].CategoryID == categoryID {
			out = append(out, *m.products[i].Clone())
		}
	}
	sortByOrder(out, func(p *models.Product) int { return p.SortOrder })
	return out, nil
}

func (m *Memory) FindProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.products, func(p *models.Product) bool { return p.ID == id }); i >= 0 {
		return m.products[i].Clone(), nil
	}
	return nil, apperr.NotFound("product", id.String())
}

func (m *Memory) FindProductBySlug(_ context.Context, slug string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.products, func(p *models.Product) bool { return p.Slug == slug }); i >= 0 {
		return m.products[i].Clone(), nil
	}
	return nil, apperr.NotFound("product", slug)
}

func (m *Memory) CreateProduct(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.categories, func(o *models.Category) bool { return o.ID == p.CategoryID }) < 0 {
		return apperr.Invalid("category_id", "category does not exist")
	}
	if indexOf(m.products, func(o *models.Product) bool { return o.Slug == p.Slug }) >= 0 {
		return apperr.Conflict("product", "slug", p.Slug)
	}
	now := m.now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	m.products = append(m.products, *p.Clone())
	return nil
}

func (m *Memory) UpdateProduct(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.products, func(o *models.Product) bool { return o.ID == p.ID })
	if i < 0 {
		return apperr.NotFound("product", p.ID.String())
	}
	if indexOf(m.categories, func(o *models.Category) bool { return o.ID == p.CategoryID }) < 0 {
		return apperr.Invalid("category_id", "category does not exist")
	}
	if indexOf(m.products, func(o *models.Product) bool { return o.Slug == p.Slug && o.ID != p.ID }) >= 0 {
		return apperr.Conflict("product", "slug", p.Slug)
	}
	p.UpdatedAt = m.now()
	m.products[i] = *p.Clone()
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.deleteProductLocked(id) {
		return apperr.NotFound("product", id.String())
	}
	return nil
}

func (m *Memory) deleteProductLocked(id uuid.UUID) bool {
	i := indexOf(m.products, func(o *models.Product) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	m.products = slices.Delete(m.products, i, i+1)
	m.productOptions = slices.DeleteFunc(m.productOptions, func(po models.ProductOption) bool {
		return po.ProductID == id
	})
	return true
}

// Reorder implements Catalog. Unknown ids abort before anything changes.
func (m *Memory) Reorder(_ context.Context, kind models.Kind, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case models.KindService:
		return applyOrder(m.services, ids,
			func(s *models.Service) uuid.UUID { return s.ID },
			func(s *models.Service, o int) { s.SortOrder = o }, "service")
	case models.KindSubservice:
		return applyOrder(m.subservices, ids,
			func(s *models.Subservice) uuid.UUID { return s.ID },
			func(s *models.Subservice, o int) { s.SortOrder = o }, "subservice")
	case models.KindCategory:
		return applyOrder(m.categories, ids,
			func(c *models.Category) uuid.UUID { return c.ID },
			func(c *models.Category, o int) { c.SortOrder = o }, "category")
	case models.KindProduct:
		return applyOrder(m.products, ids,
			func(p *models.Product) uuid.UUID { return p.ID },
			func(p *models.Product, o int) { p.SortOrder = o }, "product")
	case models.KindHeroSlide:
		return applyOrder(m.heroSlides, ids,
			func(s *models.HeroSlide) uuid.UUID { return s.ID },
			func(s *models.HeroSlide, o int) { s.SortOrder = o }, "hero slide")
	case models.KindPartner:
		return applyOrder(m.partners, ids,
			func(p *models.Partner) uuid.UUID { return p.ID },
			func(p *models.Partner, o int) { p.SortOrder = o }, "partner")
	case models.KindOptionType:
		return applyOrder(m.optionTypes, ids,
			func(t *models.OptionType) uuid.UUID { return t.ID },
			func(t *models.OptionType, o int) { t.SortOrder = o }, "option type")
	case models.KindOptionValue:
		return applyOrder(m.optionValues, ids,
			func(v *models.OptionValue) uuid.UUID { return v.ID },
			func(v *models.OptionValue, o int) { v.SortOrder = o }, "option value")
	}
	return apperr.Invalid("kind", "%q cannot be reordered", kind)
}

// --- Options ---

func (m *Memory) valuesOfLocked(typeID uuid.UUID) []models.OptionValue {
	var out []models.OptionValue
	for _, v := range m.optionValues {
		if v.OptionTypeID == typeID {
			out = append(out, v)
		}
	}
	sortByOrder(out, func(v *models.OptionValue) int { return v.SortOrder })
	return out
}

func (m *Memory) ListOptionTypes(_ context.Context) ([]models.OptionType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.optionTypes)
	sortByOrder(out, func(t *models.OptionType) int { return t.SortOrder })
	for i := range out {
		out[i].Values = m.valuesOfLocked(out[i].ID)
	}
	return out, nil
}

func (m *Memory) FindOptionType(_ context.Context, id uuid.UUID) (*models.OptionType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := indexOf(m.optionTypes, func(t *models.OptionType) bool { return t.ID == id })
	if i < 0 {
		return nil, apperr.NotFound("option type", id.String())
	}
	t := m.optionTypes[i]
	t.Values = m.valuesOfLocked(id)
	return &t, nil
}

func (m *Memory) CreateOptionType(_ context.Context, t *models.OptionType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.optionTypes, func(o *models.OptionType) bool { return o.Slug == t.Slug }) >= 0 {
		return apperr.Conflict("option type", "slug", t.Slug)
	}
	now := m.now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt, t.UpdatedAt = now, now
	stored := *t
	stored.Values = nil
	m.optionTypes = append(m.optionTypes, stored)
	return nil
}

func (m *Memory) UpdateOptionType(_ context.Context, t *models.OptionType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.optionTypes, func(o *models.OptionType) bool { return o.ID == t.ID })
	if i < 0 {
		return apperr.NotFound("option type", t.ID.String())
	}
	if indexOf(m.optionTypes, func(o *models.OptionType) bool { return o.Slug == t.Slug && o.ID != t.ID }) >= 0 {
		return apperr.Conflict("option type", "slug", t.Slug)
	}
	t.UpdatedAt = m.now()
	stored := *t
	stored.Values = nil
	m.optionTypes[i] = stored
	return nil
}

func (m *Memory) DeleteOptionType(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.optionTypes, func(o *models.OptionType) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("option type", id.String())
	}
	m.optionTypes = slices.Delete(m.optionTypes, i, i+1)
	m.optionValues = slices.DeleteFunc(m.optionValues, func(v models.OptionValue) bool { return v.OptionTypeID == id })
	m.productOptions = slices.DeleteFunc(m.productOptions, func(po models.ProductOption) bool { return po.OptionTypeID == id })
	return nil
}

func (m *Memory) FindOptionValue(_ context.Context, id uuid.UUID) (*models.OptionValue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.optionValues, func(v *models.OptionValue) bool { return v.ID == id }); i >= 0 {
		v := m.optionValues[i]
		return &v, nil
	}
	return nil, apperr.NotFound("option value", id.String())
}

func (m *Memory) CreateOptionValue(_ context.Context, v *models.OptionValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.optionTypes, func(o *models.OptionType) bool { return o.ID == v.OptionTypeID }) < 0 {
		return apperr.Invalid("option_type_id", "option type does not exist")
	}
	if indexOf(m.optionValues, func(o *models.OptionValue) bool {
		return o.OptionTypeID == v.OptionTypeID && o.Slug == v.Slug
	}) >= 0 {
		return apperr.Conflict("option value", "slug", v.Slug)
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = m.now()
	m.optionValues = append(m.optionValues, *v)
	return nil
}

func (m *Memory) UpdateOptionValue(_ context.Context, v *models.OptionValue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.optionValues, func(o *models.OptionValue) bool { return o.ID == v.ID })
	if i < 0 {
		return apperr.NotFound("option value", v.ID.String())
	}
	if indexOf(m.optionValues, func(o *models.OptionValue) bool {
		return o.OptionTypeID == v.OptionTypeID && o.Slug == v.Slug && o.ID != v.ID
	}) >= 0 {
		return apperr.Conflict("option value", "slug", v.Slug)
	}
	m.optionValues[i] = *v
	return nil
}

func (m *Memory) DeleteOptionValue(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.optionValues, func(o *models.OptionValue) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("option value", id.String())
	}
	m.optionValues = slices.Delete(m.optionValues, i, i+1)
	for j := range m.productOptions {
		m.productOptions[j].EnabledValueIDs = slices.DeleteFunc(
			slices.Clone(m.productOptions[j].EnabledValueIDs),
			func(v uuid.UUID) bool { return v == id },
		)
	}
	return nil
}

func (m *Memory) ListProductOptions(_ context.Context, productID uuid.UUID) ([]models.ProductOption, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.ProductOption
	for _, po := range m.productOptions {
		if po.ProductID == productID {
			po.EnabledValueIDs = slices.Clone(po.EnabledValueIDs)
			out = append(out, po)
		}
	}
	sortByOrder(out, func(po *models.ProductOption) int { return po.SortOrder })
	return out, nil
}

func (m *Memory) SetProductOptions(_ context.Context, productID uuid.UUID, opts []models.ProductOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.products, func(p *models.Product) bool { return p.ID == productID }) < 0 {
		return apperr.NotFound("product", productID.String())
	}
	for _, po := range opts {
		if indexOf(m.optionTypes, func(t *models.OptionType) bool { return t.ID == po.OptionTypeID }) < 0 {
			return apperr.Invalid("option_type_id", "option type %s does not exist", po.OptionTypeID)
		}
	}
	m.productOptions = slices.DeleteFunc(m.productOptions, func(po models.ProductOption) bool {
		return po.ProductID == productID
	})
	for _, po := range opts {
		po.ProductID = productID
		po.EnabledValueIDs = slices.Clone(po.EnabledValueIDs)
		m.productOptions = append(m.productOptions, po)
	}
	return nil
}

// --- Stories ---

func (m *Memory) ListStories(_ context.Context) ([]models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.stories)
	slices.SortStableFunc(out, func(a, b models.Story) int { return b.Date.Compare(a.Date) })
	return out, nil
}

func (m *Memory) FindStory(_ context.Context, id uuid.UUID) (*models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.stories, func(s *models.Story) bool { return s.ID == id }); i >= 0 {
		s := m.stories[i]
		return &s, nil
	}
	return nil, apperr.NotFound("story", id.String())
}

func (m *Memory) FindStoryBySlug(_ context.Context, slug string) (*models.Story, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.stories, func(s *models.Story) bool { return s.Slug == slug }); i >= 0 {
		s := m.stories[i]
		return &s, nil
	}
	return nil, apperr.NotFound("story", slug)
}

func (m *Memory) CreateStory(_ context.Context, s *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.stories, func(o *models.Story) bool { return o.Slug == s.Slug }) >= 0 {
		return apperr.Conflict("story", "slug", s.Slug)
	}
	now := m.now()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt, s.UpdatedAt = now, now
	m.stories = append(m.stories, *s)
	return nil
}

func (m *Memory) UpdateStory(_ context.Context, s *models.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.stories, func(o *models.Story) bool { return o.ID == s.ID })
	if i < 0 {
		return apperr.NotFound("story", s.ID.String())
	}
	if indexOf(m.stories, func(o *models.Story) bool { return o.Slug == s.Slug && o.ID != s.ID }) >= 0 {
		return apperr.Conflict("story", "slug", s.Slug)
	}
	s.UpdatedAt = m.now()
	m.stories[i] = *s
	return nil
}

func (m *Memory) DeleteStory(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.stories, func(o *models.Story) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("story", id.String())
	}
	m.stories = slices.Delete(m.stories, i, i+1)
	return nil
}

func (m *Memory) ListStoryTypes(_ context.Context) ([]models.StoryType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.storyTypes)
	slices.SortFunc(out, func(a, b models.StoryType) int { return cmp.Compare(a.Slug, b.Slug) })
	return out, nil
}

func (m *Memory) SaveStoryType(_ context.Context, t *models.StoryType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.storyTypes, func(o *models.StoryType) bool { return o.Slug == t.Slug }); i >= 0 {
		m.storyTypes[i] = *t
		return nil
	}
	m.storyTypes = append(m.storyTypes, *t)
	return nil
}

func (m *Memory) DeleteStoryType(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.storyTypes, func(o *models.StoryType) bool { return o.Slug == slug })
	if i < 0 {
		return apperr.NotFound("story type", slug)
	}
	m.storyTypes = slices.Delete(m.storyTypes, i, i+1)
	return nil
}

// --- Hero slides ---

func (m *Memory) ListHeroSlides(_ context.Context) ([]models.HeroSlide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.heroSlides)
	sortByOrder(out, func(s *models.HeroSlide) int { return s.SortOrder })
	return out, nil
}

func (m *Memory) FindHeroSlide(_ context.Context, id uuid.UUID) (*models.HeroSlide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.heroSlides, func(s *models.HeroSlide) bool { return s.ID == id }); i >= 0 {
		s := m.heroSlides[i]
		return &s, nil
	}
	return nil, apperr.NotFound("hero slide", id.String())
}

func (m *Memory) CreateHeroSlide(_ context.Context, s *models.HeroSlide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = m.now()
	m.heroSlides = append(m.heroSlides, *s)
	return nil
}

func (m *Memory) UpdateHeroSlide(_ context.Context, s *models.HeroSlide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.heroSlides, func(o *models.HeroSlide) bool { return o.ID == s.ID })
	if i < 0 {
		return apperr.NotFound("hero slide", s.ID.String())
	}
	m.heroSlides[i] = *s
	return nil
}

func (m *Memory) DeleteHeroSlide(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.heroSlides, func(o *models.HeroSlide) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("hero slide", id.String())
	}
	m.heroSlides = slices.Delete(m.heroSlides, i, i+1)
	return nil
}

// --- Partners ---

func (m *Memory) ListPartners(_ context.Context) ([]models.Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.partners)
	sortByOrder(out, func(p *models.Partner) int { return p.SortOrder })
	return out, nil
}

func (m *Memory) FindPartner(_ context.Context, id uuid.UUID) (*models.Partner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := indexOf(m.partners, func(p *models.Partner) bool { return p.ID == id }); i >= 0 {
		p := m.partners[i]
		return &p, nil
	}
	return nil, apperr.NotFound("partner", id.String())
}

func (m *Memory) CreatePartner(_ context.Context, p *models.Partner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = m.now()
	m.partners = append(m.partners, *p)
	return nil
}

func (m *Memory) UpdatePartner(_ context.Context, p *models.Partner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.partners, func(o *models.Partner) bool { return o.ID == p.ID })
	if i < 0 {
		return apperr.NotFound("partner", p.ID.String())
	}
	m.partners[i] = *p
	return nil
}

func (m *Memory) DeletePartner(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.partners, func(o *models.Partner) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFound("partner", id.String())
	}
	m.partners = slices.Delete(m.partners, i, i+1)
	return nil
}

// --- Company info ---

func (m *Memory) GetCompanyInfo(_ context.Context) (*models.CompanyInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.company == nil {
		return nil, apperr.NotFound("company info", "singleton")
	}
	c := *m.company
	return &c, nil
}

func (m *Memory) SaveCompanyInfo(_ context.Context, c *models.CompanyInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.UpdatedAt = m.now()
	stored := *c
	m.company = &stored
	return nil
}

func (m *Memory) ListSocialLinks(_ context.Context) ([]models.SocialLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.SocialLink
	for _, p := range models.Platforms {
		if i := indexOf(m.socialLinks, func(l *models.SocialLink) bool { return l.Platform == p }); i >= 0 {
			out = append(out, m.socialLinks[i])
		}
	}
	return out, nil
}

func (m *Memory) SaveSocialLink(_ context.Context, l *models.SocialLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.socialLinks, func(o *models.SocialLink) bool { return o.Platform == l.Platform }); i >= 0 {
		m.socialLinks[i] = *l
		return nil
	}
	m.socialLinks = append(m.socialLinks, *l)
	return nil
}

// --- Homepage sections ---

var sectionOrder = []models.SectionKey{
	models.SectionHero, models.SectionServices, models.SectionStories,
	models.SectionAbout, models.SectionLayout,
}

func (m *Memory) ListHomepageSections(_ context.Context) ([]models.HomepageSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.HomepageSection
	for _, k := range sectionOrder {
		if s, ok := m.sections[k]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *Memory) SaveHomepageSection(_ context.Context, s *models.HomepageSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
	m.sections[s.Key] = *s
	return nil
}

// --- Leads ---

func (m *Memory) CreateContactSubmission(_ context.Context, s *models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = m.now()
	m.contacts = append(m.contacts, *s)
	return nil
}

func (m *Memory) CreateQuoteSubmission(_ context.Context, s *models.QuoteSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = m.now()
	stored := *s
	stored.ProductInterest = slices.Clone(s.ProductInterest)
	m.quotes = append(m.quotes, stored)
	return nil
}

func (m *Memory) ListContactSubmissions(_ context.Context) ([]models.ContactSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Clone(m.contacts)
	slices.Reverse(out)
	return out, nil
}

func (m *Memory) ListQuoteSubmissions(_ context.Context) ([]models.QuoteSubmission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.QuoteSubmission, 0, len(m.quotes))
	for i := len(m.quotes) - 1; i >= 0; i-- {
		q := m.quotes[i]
		q.ProductInterest = slices.Clone(q.ProductInterest)
		out = append(out, q)
	}
	return out, nil
}

func (m *Memory) MarkSubmissionRead(_ context.Context, kind models.SubmissionKind, id uuid.UUID, read bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case models.SubmissionContact:
		if i := indexOf(m.contacts, func(s *models.ContactSubmission) bool { return s.ID == id }); i >= 0 {
			m.contacts[i].IsRead = read
			return nil
		}
	case models.SubmissionQuote:
		if i := indexOf(m.quotes, func(s *models.QuoteSubmission) bool { return s.ID == id }); i >= 0 {
			m.quotes[i].IsRead = read
			return nil
		}
	default:
		return apperr.Invalid("kind", "unknown submission kind %q", kind)
	}
	return apperr.NotFound(string(kind)+" submission", id.String())
}

func (m *Memory) DeleteSubmission(_ context.Context, kind models.SubmissionKind, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case models.SubmissionContact:
		if i := indexOf(m.contacts, func(s *models.ContactSubmission) bool { return s.ID == id }); i >= 0 {
			m.contacts = slices.Delete(m.contacts, i, i+1)
			return nil
		}
	case models.SubmissionQuote:
		if i := indexOf(m.quotes, func(s *models.QuoteSubmission) bool { return s.ID == id }); i >= 0 {
			m.quotes = slices.Delete(m.quotes, i, i+1)
			return nil
		}
	default:
		return apperr.Invalid("kind", "unknown submission kind %q", kind)
	}
	return apperr.NotFound(string(kind)+" submission", id.String())
}
