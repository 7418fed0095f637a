// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides persistence for every site entity. Postgres is the
// production backend; Memory backs the built-in sample catalog that the
// public site falls back to and the unit tests of the layers above.
//
// Lookups that match no row return an *apperr.NotFoundError. Slug
// collisions return an *apperr.ConflictError.
package store

import (
	"context"

	"github.com/google/uuid"

	"factorysite/internal/models"
)

// Catalog covers the Service → Subservice → Category → Product hierarchy.
// List methods return rows ordered by sort_order, ties broken by creation
// order. A uuid.Nil parent lists every row of that level.
type Catalog interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	FindService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindServiceBySlug(ctx context.Context, slug string) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	// DeleteService removes the service and every descendant.
	DeleteService(ctx context.Context, id uuid.UUID) error

	ListSubservices(ctx context.Context, serviceID uuid.UUID) ([]models.Subservice, error)
	FindSubservice(ctx context.Context, id uuid.UUID) (*models.Subservice, error)
	FindSubserviceBySlug(ctx context.Context, slug string) (*models.Subservice, error)
	CreateSubservice(ctx context.Context, s *models.Subservice) error
	UpdateSubservice(ctx context.Context, s *models.Subservice) error
	DeleteSubservice(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context, subserviceID uuid.UUID) ([]models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, categoryID uuid.UUID) ([]models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// Reorder sets sort_order = index for every id in one logical write.
	Reorder(ctx context.Context, kind models.Kind, ids []uuid.UUID) error
}

// Options covers configurator option types, their values and per-product
// enablement.
type Options interface {
	// ListOptionTypes returns every type with its values populated.
	ListOptionTypes(ctx context.Context) ([]models.OptionType, error)
	FindOptionType(ctx context.Context, id uuid.UUID) (*models.OptionType, error)
	CreateOptionType(ctx context.Context, t *models.OptionType) error
	UpdateOptionType(ctx context.Context, t *models.OptionType) error
	DeleteOptionType(ctx context.Context, id uuid.UUID) error

	FindOptionValue(ctx context.Context, id uuid.UUID) (*models.OptionValue, error)
	CreateOptionValue(ctx context.Context, v *models.OptionValue) error
	UpdateOptionValue(ctx context.Context, v *models.OptionValue) error
	DeleteOptionValue(ctx context.Context, id uuid.UUID) error

	ListProductOptions(ctx context.Context, productID uuid.UUID) ([]models.ProductOption, error)
	// SetProductOptions replaces the product's enablement rows.
	SetProductOptions(ctx context.Context, productID uuid.UUID, opts []models.ProductOption) error
}

// Content covers stories, homepage content and the company profile.
type Content interface {
	ListStories(ctx context.Context) ([]models.Story, error)
	FindStory(ctx context.Context, id uuid.UUID) (*models.Story, error)
	FindStoryBySlug(ctx context.Context, slug string) (*models.Story, error)
	CreateStory(ctx context.Context, s *models.Story) error
	UpdateStory(ctx context.Context, s *models.Story) error
	DeleteStory(ctx context.Context, id uuid.UUID) error

	ListStoryTypes(ctx context.Context) ([]models.StoryType, error)
	SaveStoryType(ctx context.Context, t *models.StoryType) error
	DeleteStoryType(ctx context.Context, slug string) error

	ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error)
	FindHeroSlide(ctx context.Context, id uuid.UUID) (*models.HeroSlide, error)
	CreateHeroSlide(ctx context.Context, s *models.HeroSlide) error
	UpdateHeroSlide(ctx context.Context, s *models.HeroSlide) error
	DeleteHeroSlide(ctx context.Context, id uuid.UUID) error

	ListPartners(ctx context.Context) ([]models.Partner, error)
	FindPartner(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	CreatePartner(ctx context.Context, p *models.Partner) error
	UpdatePartner(ctx context.Context, p *models.Partner) error
	DeletePartner(ctx context.Context, id uuid.UUID) error

	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error
	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
	SaveSocialLink(ctx context.Context, l *models.SocialLink) error

	ListHomepageSections(ctx context.Context) ([]models.HomepageSection, error)
	SaveHomepageSection(ctx context.Context, s *models.HomepageSection) error
}

// Leads covers the append-only contact and quote inboxes.
type Leads interface {
	CreateContactSubmission(ctx context.Context, s *models.ContactSubmission) error
	CreateQuoteSubmission(ctx context.Context, s *models.QuoteSubmission) error
	// List methods return newest first.
	ListContactSubmissions(ctx context.Context) ([]models.ContactSubmission, error)
	ListQuoteSubmissions(ctx context.Context) ([]models.QuoteSubmission, error)
	MarkSubmissionRead(ctx context.Context, kind models.SubmissionKind, id uuid.UUID, read bool) error
	DeleteSubmission(ctx context.Context, kind models.SubmissionKind, id uuid.UUID) error
}

// Repository is the full backing store.
type Repository interface {
	Catalog
	Options
	Content
	Leads
}
