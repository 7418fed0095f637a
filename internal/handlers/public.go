// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"factorysite/internal/admin"
	"factorysite/internal/middleware"
	"factorysite/internal/render"
	"factorysite/internal/site"
)

// Public serves the read-only JSON API of the marketing site plus the two
// lead forms. Every response is localized into the language negotiated by
// middleware.Lang.
type Public struct {
	reader *site.Reader
	leads  *admin.Leads
}

// NewPublic creates the public handler group. leads may be nil when no
// database is configured; the forms then answer 503.
func NewPublic(reader *site.Reader, leads *admin.Leads) *Public {
	return &Public{reader: reader, leads: leads}
}

// Navigation returns the service tree for the site header.
func (p *Public) Navigation(w http.ResponseWriter, r *http.Request) {
	items, err := p.reader.Navigation(r.Context(), middleware.LangFromCtx(r.Context()))
	if err != nil {
		render.Failure(w, r, "load navigation", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// Homepage returns every homepage block in display order.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	hp, err := p.reader.Homepage(r.Context(), middleware.LangFromCtx(r.Context()))
	if err != nil {
		render.Failure(w, r, "load homepage", err)
		return
	}
	render.JSON(w, http.StatusOK, hp)
}

// Services lists visible services; ?coming_soon=true adds the teasers.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	opts := site.Options{IncludeComingSoon: queryBool(r, "coming_soon")}
	items, err := p.reader.Services(r.Context(), middleware.LangFromCtx(r.Context()), opts)
	if err != nil {
		render.Failure(w, r, "load services", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// Service returns a service page with its subservices.
func (p *Public) Service(w http.ResponseWriter, r *http.Request) {
	page, err := p.reader.ServiceBySlug(r.Context(), middleware.LangFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		render.Failure(w, r, "load service", err)
		return
	}
	render.JSON(w, http.StatusOK, page)
}

// Subservice returns a subservice page with its categories and products.
func (p *Public) Subservice(w http.ResponseWriter, r *http.Request) {
	page, err := p.reader.SubserviceBySlug(r.Context(), middleware.LangFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		render.Failure(w, r, "load subservice", err)
		return
	}
	render.JSON(w, http.StatusOK, page)
}

// Products lists public products, optionally narrowed by ?category_id=
// and ?featured=true.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		render.Failure(w, r, "load products", err)
		return
	}
	filter := site.ProductFilter{CategoryID: categoryID, FeaturedOnly: queryBool(r, "featured")}
	items, err := p.reader.Products(r.Context(), middleware.LangFromCtx(r.Context()), filter)
	if err != nil {
		render.Failure(w, r, "load products", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// Product returns a product with its breadcrumb.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	page, err := p.reader.ProductWithBreadcrumb(r.Context(), middleware.LangFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		render.Failure(w, r, "load product", err)
		return
	}
	render.JSON(w, http.StatusOK, page)
}

// ProductConfiguration returns the option groups a visitor can pick from.
func (p *Public) ProductConfiguration(w http.ResponseWriter, r *http.Request) {
	groups, err := p.reader.ProductConfiguration(r.Context(), middleware.LangFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		render.Failure(w, r, "load product configuration", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(groups))
}

// Stories lists visible stories, newest first; ?type= filters by type slug.
func (p *Public) Stories(w http.ResponseWriter, r *http.Request) {
	items, err := p.reader.Stories(r.Context(), middleware.LangFromCtx(r.Context()), r.URL.Query().Get("type"))
	if err != nil {
		render.Failure(w, r, "load stories", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// Story returns one story with its body rendered to HTML.
func (p *Public) Story(w http.ResponseWriter, r *http.Request) {
	story, err := p.reader.StoryBySlug(r.Context(), middleware.LangFromCtx(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		render.Failure(w, r, "load story", err)
		return
	}
	render.JSON(w, http.StatusOK, story)
}

// StoryTypes lists the story type filters.
func (p *Public) StoryTypes(w http.ResponseWriter, r *http.Request) {
	items, err := p.reader.StoryTypes(r.Context(), middleware.LangFromCtx(r.Context()))
	if err != nil {
		render.Failure(w, r, "load story types", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// Company returns the company profile and visible social links.
func (p *Public) Company(w http.ResponseWriter, r *http.Request) {
	info, err := p.reader.CompanyInfo(r.Context(), middleware.LangFromCtx(r.Context()))
	if err != nil {
		render.Failure(w, r, "load company info", err)
		return
	}
	render.JSON(w, http.StatusOK, info)
}

// Partners lists visible partner logos.
func (p *Public) Partners(w http.ResponseWriter, r *http.Request) {
	items, err := p.reader.Partners(r.Context())
	if err != nil {
		render.Failure(w, r, "load partners", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// HeroSlides lists the visible homepage slides.
func (p *Public) HeroSlides(w http.ResponseWriter, r *http.Request) {
	items, err := p.reader.HeroSlides(r.Context(), middleware.LangFromCtx(r.Context()))
	if err != nil {
		render.Failure(w, r, "load hero slides", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// receipt is what a visitor gets back after submitting a form.
type receipt struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	Configuration string `json:"configuration,omitempty"`
}

// Contact stores a contact form submission.
func (p *Public) Contact(w http.ResponseWriter, r *http.Request) {
	if p.leads == nil {
		render.Error(w, http.StatusServiceUnavailable, "Submissions are temporarily unavailable")
		return
	}
	var form admin.ContactForm
	if err := render.Decode(w, r, &form); err != nil {
		render.Failure(w, r, "send message", err)
		return
	}
	sub, err := p.leads.SubmitContact(r.Context(), middleware.LangFromCtx(r.Context()), form)
	if err != nil {
		render.Failure(w, r, "send message", err)
		return
	}
	render.Created(w, receipt{ID: sub.ID.String(), Status: "received"})
}

// Quote stores a quote request, validating any configurator selection.
func (p *Public) Quote(w http.ResponseWriter, r *http.Request) {
	if p.leads == nil {
		render.Error(w, http.StatusServiceUnavailable, "Submissions are temporarily unavailable")
		return
	}
	var form admin.QuoteForm
	if err := render.Decode(w, r, &form); err != nil {
		render.Failure(w, r, "send quote request", err)
		return
	}
	sub, err := p.leads.SubmitQuote(r.Context(), middleware.LangFromCtx(r.Context()), form)
	if err != nil {
		render.Failure(w, r, "send quote request", err)
		return
	}
	render.Created(w, receipt{ID: sub.ID.String(), Status: "received", Configuration: sub.Configuration})
}
