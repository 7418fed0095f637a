// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/configurator"
	"factorysite/internal/i18n"
	"factorysite/internal/models"
	"factorysite/internal/store"
)

// Options widens a listing.
type Options struct {
	// IncludeComingSoon adds coming_soon rows, rendered with an overlay.
	IncludeComingSoon bool
}

// ProductFilter narrows Products. A zero CategoryID lists every category.
type ProductFilter struct {
	CategoryID   uuid.UUID
	FeaturedOnly bool
}

func (o Options) admits(v models.Visibility) bool {
	return v == models.VisibilityVisible || (o.IncludeComingSoon && v == models.VisibilityComingSoon)
}

var strict = Options{}

// tree is a snapshot of the three upper hierarchy levels used to check
// that no ancestor of a row is hidden.
type tree struct {
	services    map[uuid.UUID]*models.Service
	subservices map[uuid.UUID]*models.Subservice
	categories  map[uuid.UUID]*models.Category
}

func loadTree(ctx context.Context, repo store.Repository) (*tree, error) {
	services, err := repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := repo.ListSubservices(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}
	cats, err := repo.ListCategories(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}

	t := &tree{
		services:    make(map[uuid.UUID]*models.Service, len(services)),
		subservices: make(map[uuid.UUID]*models.Subservice, len(subs)),
		categories:  make(map[uuid.UUID]*models.Category, len(cats)),
	}
	for i := range services {
		t.services[services[i].ID] = &services[i]
	}
	for i := range subs {
		t.subservices[subs[i].ID] = &subs[i]
	}
	for i := range cats {
		t.categories[cats[i].ID] = &cats[i]
	}
	return t, nil
}

// Ancestors must be fully visible; opts only widens the row itself.
func (t *tree) serviceOK(id uuid.UUID, opts Options) bool {
	s, ok := t.services[id]
	return ok && opts.admits(s.Visibility)
}

func (t *tree) subserviceOK(id uuid.UUID, opts Options) bool {
	s, ok := t.subservices[id]
	return ok && opts.admits(s.Visibility) && t.serviceOK(s.ServiceID, strict)
}

func (t *tree) categoryOK(id uuid.UUID, opts Options) bool {
	c, ok := t.categories[id]
	return ok && opts.admits(c.Visibility) && t.subserviceOK(c.SubserviceID, strict)
}

// Services lists the public services.
func (r *Reader) Services(ctx context.Context, lang i18n.Lang, opts Options) ([]NodeView, error) {
	return read(ctx, r, "list services", noServices, none[NodeView], func(repo store.Repository) ([]NodeView, error) {
		services, err := repo.ListServices(ctx)
		if err != nil {
			return nil, fmt.Errorf("list services: %w", err)
		}
		out := []NodeView{}
		for i := range services {
			if opts.admits(services[i].Visibility) {
				out = append(out, nodeView(models.KindService, &services[i].Node, lang))
			}
		}
		return out, nil
	})
}

// Subservices lists the public subservices of serviceID, or of every
// public service when serviceID is uuid.Nil.
func (r *Reader) Subservices(ctx context.Context, lang i18n.Lang, serviceID uuid.UUID, opts Options) ([]NodeView, error) {
	return read(ctx, r, "list subservices", nil, never[[]NodeView], func(repo store.Repository) ([]NodeView, error) {
		t, err := loadTree(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("list subservices: %w", err)
		}
		subs, err := repo.ListSubservices(ctx, serviceID)
		if err != nil {
			return nil, fmt.Errorf("list subservices: %w", err)
		}
		out := []NodeView{}
		for i := range subs {
			if t.subserviceOK(subs[i].ID, opts) {
				out = append(out, nodeView(models.KindSubservice, &subs[i].Node, lang))
			}
		}
		return out, nil
	})
}

// Categories lists the public categories of subserviceID, or of every
// public subservice when subserviceID is uuid.Nil.
func (r *Reader) Categories(ctx context.Context, lang i18n.Lang, subserviceID uuid.UUID, opts Options) ([]NodeView, error) {
	return read(ctx, r, "list categories", nil, never[[]NodeView], func(repo store.Repository) ([]NodeView, error) {
		t, err := loadTree(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		cats, err := repo.ListCategories(ctx, subserviceID)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		out := []NodeView{}
		for i := range cats {
			if t.categoryOK(cats[i].ID, opts) {
				out = append(out, nodeView(models.KindCategory, &cats[i].Node, lang))
			}
		}
		return out, nil
	})
}

// Products lists public products (visible and not_in_stock) whose
// ancestors are all visible.
func (r *Reader) Products(ctx context.Context, lang i18n.Lang, filter ProductFilter) ([]ProductView, error) {
	return read(ctx, r, "list products", nil, never[[]ProductView], func(repo store.Repository) ([]ProductView, error) {
		t, err := loadTree(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		return publicProducts(ctx, repo, t, filter, lang)
	})
}

func publicProducts(ctx context.Context, repo store.Repository, t *tree, filter ProductFilter, lang i18n.Lang) ([]ProductView, error) {
	products, err := repo.ListProducts(ctx, filter.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := []ProductView{}
	for i := range products {
		p := &products[i]
		if !p.IsPublic() || !t.categoryOK(p.CategoryID, strict) {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		out = append(out, productView(p, lang))
	}
	return out, nil
}

// Navigation returns the public services, each with its public
// subservices. Coming-soon services are listed without children.
func (r *Reader) Navigation(ctx context.Context, lang i18n.Lang) ([]NavItem, error) {
	return read(ctx, r, "navigation", noServices, none[NavItem], func(repo store.Repository) ([]NavItem, error) {
		services, err := repo.ListServices(ctx)
		if err != nil {
			return nil, fmt.Errorf("load navigation: %w", err)
		}
		subs, err := repo.ListSubservices(ctx, uuid.Nil)
		if err != nil {
			return nil, fmt.Errorf("load navigation: %w", err)
		}

		listed := Options{IncludeComingSoon: true}
		children := map[uuid.UUID][]NodeView{}
		for i := range subs {
			if listed.admits(subs[i].Visibility) {
				children[subs[i].ServiceID] = append(children[subs[i].ServiceID], nodeView(models.KindSubservice, &subs[i].Node, lang))
			}
		}

		out := []NavItem{}
		for i := range services {
			s := &services[i]
			if !listed.admits(s.Visibility) {
				continue
			}
			item := NavItem{NodeView: nodeView(models.KindService, &s.Node, lang), Children: []NodeView{}}
			if s.Visibility == models.VisibilityVisible && children[s.ID] != nil {
				item.Children = children[s.ID]
			}
			out = append(out, item)
		}
		return out, nil
	})
}

// ServiceBySlug returns a visible service with its subservices,
// coming-soon ones included.
func (r *Reader) ServiceBySlug(ctx context.Context, lang i18n.Lang, slug string) (*ServicePage, error) {
	return read(ctx, r, "service page", nil, never[*ServicePage], func(repo store.Repository) (*ServicePage, error) {
		svc, err := repo.FindServiceBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if svc.Visibility != models.VisibilityVisible {
			return nil, apperr.NotFound("service", slug)
		}
		subs, err := repo.ListSubservices(ctx, svc.ID)
		if err != nil {
			return nil, fmt.Errorf("list subservices: %w", err)
		}
		page := &ServicePage{Service: nodeView(models.KindService, &svc.Node, lang), Subservices: []NodeView{}}
		opts := Options{IncludeComingSoon: true}
		for i := range subs {
			if opts.admits(subs[i].Visibility) {
				page.Subservices = append(page.Subservices, nodeView(models.KindSubservice, &subs[i].Node, lang))
			}
		}
		return page, nil
	})
}

// SubserviceBySlug returns a visible subservice with its categories and
// their public products.
func (r *Reader) SubserviceBySlug(ctx context.Context, lang i18n.Lang, slug string) (*SubservicePage, error) {
	return read(ctx, r, "subservice page", nil, never[*SubservicePage], func(repo store.Repository) (*SubservicePage, error) {
		sub, err := repo.FindSubserviceBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		t, err := loadTree(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("load subservice: %w", err)
		}
		if !t.subserviceOK(sub.ID, strict) {
			return nil, apperr.NotFound("subservice", slug)
		}
		svc := t.services[sub.ServiceID]

		cats, err := repo.ListCategories(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		page := &SubservicePage{
			Service:    nodeView(models.KindService, &svc.Node, lang),
			Subservice: nodeView(models.KindSubservice, &sub.Node, lang),
			Categories: []CategoryGroup{},
		}
		for i := range cats {
			c := &cats[i]
			if !(Options{IncludeComingSoon: true}).admits(c.Visibility) {
				continue
			}
			group := CategoryGroup{Category: nodeView(models.KindCategory, &c.Node, lang), Products: []ProductView{}}
			if c.Visibility == models.VisibilityVisible {
				group.Products, err = publicProducts(ctx, repo, t, ProductFilter{CategoryID: c.ID}, lang)
				if err != nil {
					return nil, err
				}
			}
			page.Categories = append(page.Categories, group)
		}
		return page, nil
	})
}

// ProductWithBreadcrumb returns a public product with its
// Service → Subservice → Category chain. A hidden product, or a product
// under any non-visible ancestor, is reported as not found.
func (r *Reader) ProductWithBreadcrumb(ctx context.Context, lang i18n.Lang, slug string) (*ProductPage, error) {
	return read(ctx, r, "product page", nil, never[*ProductPage], func(repo store.Repository) (*ProductPage, error) {
		p, t, err := publicProduct(ctx, repo, slug)
		if err != nil {
			return nil, err
		}

		cat := t.categories[p.CategoryID]
		sub := t.subservices[cat.SubserviceID]
		svc := t.services[sub.ServiceID]
		page := &ProductPage{
			Product:    productView(p, lang),
			Service:    nodeView(models.KindService, &svc.Node, lang),
			Subservice: nodeView(models.KindSubservice, &sub.Node, lang),
			Category:   nodeView(models.KindCategory, &cat.Node, lang),
		}
		for _, n := range []NodeView{page.Service, page.Subservice, page.Category} {
			page.Breadcrumb = append(page.Breadcrumb, Crumb{Kind: n.Kind, Slug: n.Slug, Title: n.Title})
		}
		return page, nil
	})
}

// PublicProduct returns the product named by slug when the public site
// would show it: the product is public and every ancestor is visible.
func PublicProduct(ctx context.Context, repo store.Repository, slug string) (*models.Product, error) {
	p, _, err := publicProduct(ctx, repo, slug)
	return p, err
}

// publicProduct loads a product that is public and whose whole ancestor
// chain is visible.
func publicProduct(ctx context.Context, repo store.Repository, slug string) (*models.Product, *tree, error) {
	p, err := repo.FindProductBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if !p.IsPublic() {
		return nil, nil, apperr.NotFound("product", slug)
	}
	t, err := loadTree(ctx, repo)
	if err != nil {
		return nil, nil, fmt.Errorf("load product chain: %w", err)
	}
	if !t.categoryOK(p.CategoryID, strict) {
		return nil, nil, apperr.NotFound("product", slug)
	}
	return p, t, nil
}

// ProductConfiguration returns the localized configurator of a public
// product. The result is empty, not nil, for a product with no options.
func (r *Reader) ProductConfiguration(ctx context.Context, lang i18n.Lang, slug string) ([]configurator.GroupView, error) {
	return read(ctx, r, "product configuration", nil, never[[]configurator.GroupView], func(repo store.Repository) ([]configurator.GroupView, error) {
		p, _, err := publicProduct(ctx, repo, slug)
		if err != nil {
			return nil, err
		}
		groups, err := configurator.New(repo).ProductConfiguration(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		return configurator.Localize(groups, lang), nil
	})
}
