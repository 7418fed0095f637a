package handlers

import (
	"context"
	"net/http"
	"testing"

	"factorysite/internal/admin"
	"factorysite/internal/configurator"
	"factorysite/internal/i18n"
	"factorysite/internal/site"
	"factorysite/internal/store"
)

func newPublic(t *testing.T) (*Public, *store.Memory) {
	t.Helper()
	repo := store.Sample()
	return NewPublic(site.New(repo, nil), admin.NewLeads(repo)), repo
}

func TestPublicServices(t *testing.T) {
	p, _ := newPublic(t)

	rec := call(t, p.Services, http.MethodGet, "/api/v1/services", nil)
	wantStatus(t, rec, http.StatusOK)
	got := decode[listBody[site.NodeView]](t, rec)
	if got.Count != 2 {
		t.Errorf("count = %d, want 2 visible services", got.Count)
	}

	rec = call(t, p.Services, http.MethodGet, "/api/v1/services?coming_soon=true", nil)
	got = decode[listBody[site.NodeView]](t, rec)
	if got.Count != 3 {
		t.Fatalf("count with coming soon = %d, want 3", got.Count)
	}
	if last := got.Items[2]; last.Slug != "outdoor" || !last.ComingSoon {
		t.Errorf("last service = %+v, want outdoor flagged coming soon", last)
	}
}

func TestPublicServiceHebrew(t *testing.T) {
	p, _ := newPublic(t)
	rec := callLang(t, p.Service, i18n.Hebrew, http.MethodGet, "/api/v1/services/cabinets", nil, "slug", "cabinets")
	wantStatus(t, rec, http.StatusOK)
	page := decode[site.ServicePage](t, rec)
	if page.Service.Title != "ארונות" {
		t.Errorf("title = %q, want Hebrew", page.Service.Title)
	}
	if len(page.Subservices) != 2 {
		t.Errorf("subservices = %d, want 2", len(page.Subservices))
	}
}

func TestPublicNotFound(t *testing.T) {
	p, _ := newPublic(t)
	tests := []struct {
		name string
		h    http.HandlerFunc
		slug string
	}{
		{"service", p.Service, "nope"},
		{"coming soon service", p.Service, "outdoor"},
		{"subservice", p.Subservice, "nope"},
		{"product", p.Product, "nope"},
		{"story", p.Story, "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, tt.h, http.MethodGet, "/", nil, "slug", tt.slug)
			wantStatus(t, rec, http.StatusNotFound)
		})
	}
}

func TestPublicProducts(t *testing.T) {
	p, _ := newPublic(t)

	rec := call(t, p.Products, http.MethodGet, "/api/v1/products?featured=true", nil)
	wantStatus(t, rec, http.StatusOK)
	got := decode[listBody[site.ProductView]](t, rec)
	if got.Count != 2 {
		t.Errorf("featured count = %d, want 2", got.Count)
	}

	rec = call(t, p.Products, http.MethodGet, "/api/v1/products?category_id=doors", nil)
	wantStatus(t, rec, http.StatusUnprocessableEntity)
	if f := errorField(t, rec); f != "category_id" {
		t.Errorf("error field = %q, want category_id", f)
	}
}

func TestPublicProductBreadcrumb(t *testing.T) {
	p, _ := newPublic(t)
	rec := call(t, p.Product, http.MethodGet, "/api/v1/products/oak-door", nil, "slug", "oak-door")
	wantStatus(t, rec, http.StatusOK)
	page := decode[site.ProductPage](t, rec)
	if page.Product.Slug != "oak-door" || page.Category.Slug != "doors" || page.Service.Slug != "cabinets" {
		t.Errorf("page = %+v", page)
	}
}

func TestPublicProductConfiguration(t *testing.T) {
	p, _ := newPublic(t)
	rec := call(t, p.ProductConfiguration, http.MethodGet, "/", nil, "slug", "oak-door")
	wantStatus(t, rec, http.StatusOK)
	got := decode[listBody[configurator.GroupView]](t, rec)
	if got.Count != 3 {
		t.Fatalf("groups = %d, want 3", got.Count)
	}
	if g := got.Items[0]; g.Slug != "module-width" || !g.Required || len(g.Values) != 2 {
		t.Errorf("first group = %+v", g)
	}

	rec = call(t, p.ProductConfiguration, http.MethodGet, "/", nil, "slug", "shaker-door")
	wantStatus(t, rec, http.StatusOK)
	if got := decode[listBody[configurator.GroupView]](t, rec); got.Count != 0 || got.Items == nil {
		t.Errorf("unconfigured product = %+v, want empty list", got)
	}
}

func TestPublicStories(t *testing.T) {
	p, _ := newPublic(t)
	rec := call(t, p.Stories, http.MethodGet, "/api/v1/stories?type=project", nil)
	wantStatus(t, rec, http.StatusOK)
	got := decode[listBody[site.StoryView]](t, rec)
	if got.Count != 1 || got.Items[0].Slug != "villa-kitchen" {
		t.Errorf("project stories = %+v", got.Items)
	}
}

func TestPublicHomepageAndCompany(t *testing.T) {
	p, _ := newPublic(t)
	for name, h := range map[string]http.HandlerFunc{
		"homepage":    p.Homepage,
		"company":     p.Company,
		"navigation":  p.Navigation,
		"partners":    p.Partners,
		"hero slides": p.HeroSlides,
		"story types": p.StoryTypes,
	} {
		t.Run(name, func(t *testing.T) {
			wantStatus(t, call(t, h, http.MethodGet, "/", nil), http.StatusOK)
		})
	}
}

func TestPublicContact(t *testing.T) {
	p, repo := newPublic(t)

	rec := call(t, p.Contact, http.MethodPost, "/api/v1/contact", map[string]string{
		"name": "Dana", "email": "dana@example.com", "message": "Call me back",
	})
	wantStatus(t, rec, http.StatusCreated)
	subs, _ := repo.ListContactSubmissions(context.Background())
	if len(subs) != 1 || subs[0].Lang != "en" {
		t.Fatalf("stored = %+v", subs)
	}

	rec = call(t, p.Contact, http.MethodPost, "/api/v1/contact", map[string]string{
		"name": "Dana", "email": "not-an-email", "message": "hi",
	})
	wantStatus(t, rec, http.StatusUnprocessableEntity)
	if f := errorField(t, rec); f != "email" {
		t.Errorf("error field = %q, want email", f)
	}

	rec = call(t, p.Contact, http.MethodPost, "/api/v1/contact", `{"name":"Dana","nickname":"D"}`)
	wantStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestPublicQuoteWithConfiguration(t *testing.T) {
	p, repo := newPublic(t)

	rec := call(t, p.Quote, http.MethodPost, "/api/v1/quote", map[string]any{
		"name":         "Avi",
		"email":        "avi@example.com",
		"product_slug": "oak-door",
		"selection":    map[string][]string{"module-width": {"60"}, "finish": {"walnut"}},
	})
	wantStatus(t, rec, http.StatusCreated)
	got := decode[receipt](t, rec)
	if got.Configuration == "" {
		t.Error("receipt has no configuration summary")
	}
	subs, _ := repo.ListQuoteSubmissions(context.Background())
	if len(subs) != 1 || subs[0].ProductInterest[0] != "Oak Door" {
		t.Fatalf("stored = %+v", subs)
	}

	rec = call(t, p.Quote, http.MethodPost, "/api/v1/quote", map[string]any{
		"name":         "Avi",
		"email":        "avi@example.com",
		"product_slug": "oak-door",
		"selection":    map[string][]string{"finish": {"walnut"}},
	})
	wantStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestPublicFormsWithoutDatabase(t *testing.T) {
	p := NewPublic(site.New(nil, store.Sample()), nil)
	for name, h := range map[string]http.HandlerFunc{"contact": p.Contact, "quote": p.Quote} {
		t.Run(name, func(t *testing.T) {
			rec := call(t, h, http.MethodPost, "/", map[string]string{"name": "x"})
			wantStatus(t, rec, http.StatusServiceUnavailable)
		})
	}
}
