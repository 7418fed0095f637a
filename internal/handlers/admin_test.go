package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"factorysite/internal/admin"
	"factorysite/internal/models"
	"factorysite/internal/store"
)

func newAdmin(t *testing.T) (*Admin, *store.Memory) {
	t.Helper()
	repo := store.Sample()
	return NewAdmin(repo, nil), repo
}

func mustService(t *testing.T, repo *store.Memory, slug string) *models.Service {
	t.Helper()
	s, err := repo.FindServiceBySlug(context.Background(), slug)
	if err != nil {
		t.Fatalf("FindServiceBySlug(%q): %v", slug, err)
	}
	return s
}

func TestAdminCreateService(t *testing.T) {
	a, repo := newAdmin(t)

	rec := call(t, a.CreateService, http.MethodPost, "/admin/api/services", map[string]any{
		"id":    uuid.New(),
		"title": map[string]string{"en": "Glass Works", "he": "עבודות זכוכית"},
	})
	wantStatus(t, rec, http.StatusCreated)
	got := decode[models.Service](t, rec)
	if got.Slug != "glass-works" {
		t.Errorf("slug = %q, want glass-works", got.Slug)
	}
	if got.SortOrder != 3 {
		t.Errorf("sort_order = %d, want appended at 3", got.SortOrder)
	}
	if _, err := repo.FindService(context.Background(), got.ID); err != nil {
		t.Errorf("created service not stored: %v", err)
	}

	rec = call(t, a.CreateService, http.MethodPost, "/admin/api/services", map[string]any{
		"title": map[string]string{"he": "רק עברית"},
	})
	wantStatus(t, rec, http.StatusUnprocessableEntity)
	if f := errorField(t, rec); f != "title" {
		t.Errorf("error field = %q, want title", f)
	}

	rec = call(t, a.CreateService, http.MethodPost, "/admin/api/services", map[string]any{
		"slug":  "cabinets",
		"title": map[string]string{"en": "Cabinets again"},
	})
	wantStatus(t, rec, http.StatusConflict)
}

func TestAdminUpdateService(t *testing.T) {
	a, repo := newAdmin(t)
	s := mustService(t, repo, "metalwork")

	rec := call(t, a.UpdateService, http.MethodPatch, "/", map[string]any{
		"visibility_status": "hidden",
	}, "id", s.ID.String())
	wantStatus(t, rec, http.StatusOK)
	got := decode[models.Service](t, rec)
	if got.Visibility != models.VisibilityHidden || got.Title.EN != "Metalwork" {
		t.Errorf("updated = %+v", got)
	}

	rec = call(t, a.UpdateService, http.MethodPatch, "/", map[string]any{
		"visibility_status": "not_in_stock",
	}, "id", s.ID.String())
	wantStatus(t, rec, http.StatusUnprocessableEntity)

	rec = call(t, a.UpdateService, http.MethodPatch, "/", map[string]any{}, "id", uuid.NewString())
	wantStatus(t, rec, http.StatusNotFound)
}

func TestAdminListSubservicesByParent(t *testing.T) {
	a, repo := newAdmin(t)
	s := mustService(t, repo, "cabinets")

	rec := call(t, a.ListSubservices, http.MethodGet, "/?service_id="+s.ID.String(), nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[listBody[models.Subservice]](t, rec); got.Count != 2 {
		t.Errorf("cabinets subservices = %d, want 2", got.Count)
	}

	rec = call(t, a.ListSubservices, http.MethodGet, "/", nil)
	if got := decode[listBody[models.Subservice]](t, rec); got.Count != 3 {
		t.Errorf("all subservices = %d, want 3", got.Count)
	}
}

func TestAdminDeleteServiceTwoPhase(t *testing.T) {
	a, repo := newAdmin(t)
	ctx := context.Background()
	s := mustService(t, repo, "cabinets")
	preview := a.DeletePreview(models.KindService)
	confirm := a.ConfirmDelete(models.KindService)

	rec := call(t, preview, http.MethodGet, "/", nil, "id", s.ID.String())
	wantStatus(t, rec, http.StatusOK)
	p := decode[admin.DeletePreview](t, rec)
	if p.Subservices != 2 || p.Categories != 3 || p.Products != 4 {
		t.Fatalf("preview = %+v", p)
	}

	rec = call(t, confirm, http.MethodDelete, "/", nil, "id", s.ID.String())
	wantStatus(t, rec, http.StatusConflict)
	if _, err := repo.FindService(ctx, s.ID); err != nil {
		t.Fatal("service deleted without a token")
	}

	rec = call(t, confirm, http.MethodDelete, "/?token="+p.Token, nil, "id", s.ID.String())
	wantStatus(t, rec, http.StatusNoContent)
	if _, err := repo.FindProductBySlug(ctx, "oak-door"); err == nil {
		t.Error("descendant product survived the cascade")
	}
}

func TestAdminProductLifecycle(t *testing.T) {
	a, repo := newAdmin(t)
	ctx := context.Background()
	oak, err := repo.FindProductBySlug(ctx, "oak-door")
	if err != nil {
		t.Fatal(err)
	}

	rec := call(t, a.DuplicateProduct, http.MethodPost, "/", nil, "id", oak.ID.String())
	wantStatus(t, rec, http.StatusCreated)
	dup := decode[models.Product](t, rec)
	if dup.Slug != "oak-door-copy" || dup.Visibility != models.VisibilityHidden {
		t.Errorf("duplicate = %s %s", dup.Slug, dup.Visibility)
	}

	rec = call(t, a.GetProductConfiguration, http.MethodGet, "/", nil, "id", dup.ID.String())
	wantStatus(t, rec, http.StatusOK)
	if got := decode[listBody[models.ProductOption]](t, rec); got.Count != 3 {
		t.Errorf("copied option rows = %d, want 3", got.Count)
	}

	rec = call(t, a.SetProductConfiguration, http.MethodPut, "/", []models.ProductOption{}, "id", dup.ID.String())
	wantStatus(t, rec, http.StatusOK)
	if got := decode[listBody[models.ProductOption]](t, rec); got.Count != 0 {
		t.Errorf("rows after clearing = %d, want 0", got.Count)
	}

	rec = call(t, a.DeleteProduct, http.MethodDelete, "/", nil, "id", dup.ID.String())
	wantStatus(t, rec, http.StatusNoContent)
	rec = call(t, a.GetProduct, http.MethodGet, "/", nil, "id", dup.ID.String())
	wantStatus(t, rec, http.StatusNotFound)
}

func TestAdminReorder(t *testing.T) {
	a, repo := newAdmin(t)
	ctx := context.Background()
	services, _ := repo.ListServices(ctx)
	ids := []uuid.UUID{services[2].ID, services[0].ID, services[1].ID}

	rec := call(t, a.Reorder, http.MethodPost, "/admin/api/reorder", map[string]any{
		"kind": "service", "ids": ids,
	})
	wantStatus(t, rec, http.StatusNoContent)
	after, _ := repo.ListServices(ctx)
	if after[0].ID != ids[0] || after[0].SortOrder != 0 {
		t.Errorf("first service = %s (order %d), want %s", after[0].Slug, after[0].SortOrder, services[2].Slug)
	}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"unknown kind", map[string]any{"kind": "story", "ids": ids}},
		{"missing id", map[string]any{"kind": "service", "ids": ids[:2]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, a.Reorder, http.MethodPost, "/admin/api/reorder", tt.body)
			wantStatus(t, rec, http.StatusUnprocessableEntity)
		})
	}
}

func TestAdminStoryTypes(t *testing.T) {
	a, _ := newAdmin(t)

	rec := call(t, a.DeleteStoryType, http.MethodDelete, "/", nil, "slug", "news")
	wantStatus(t, rec, http.StatusConflict)

	rec = call(t, a.SaveStoryType, http.MethodPut, "/", map[string]any{
		"name": map[string]string{"en": "Events", "he": "אירועים"},
	})
	wantStatus(t, rec, http.StatusOK)
	if got := decode[models.StoryType](t, rec); got.Slug != "events" {
		t.Errorf("slug = %q, want events", got.Slug)
	}

	rec = call(t, a.RenameStoryType, http.MethodPatch, "/", map[string]any{
		"name": map[string]string{"en": "Happenings"},
	}, "slug", "events")
	wantStatus(t, rec, http.StatusOK)

	rec = call(t, a.DeleteStoryType, http.MethodDelete, "/", nil, "slug", "events")
	wantStatus(t, rec, http.StatusNoContent)

	rec = call(t, a.RenameStoryType, http.MethodPatch, "/", map[string]any{
		"name": map[string]string{"en": "Ghost"},
	}, "slug", "events")
	wantStatus(t, rec, http.StatusNotFound)
}

func TestAdminHeroSlideLimit(t *testing.T) {
	a, _ := newAdmin(t)
	slide := map[string]any{
		"title":     map[string]string{"en": "Third"},
		"image_url": "https://cdn.example.com/hero.jpg",
	}
	wantStatus(t, call(t, a.CreateHeroSlide, http.MethodPost, "/", slide), http.StatusCreated)
	wantStatus(t, call(t, a.CreateHeroSlide, http.MethodPost, "/", slide), http.StatusUnprocessableEntity)
}

func TestAdminSections(t *testing.T) {
	a, _ := newAdmin(t)

	rec := call(t, a.ListSections, http.MethodGet, "/", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[listBody[models.HomepageSection]](t, rec); got.Count != 5 {
		t.Errorf("sections = %d, want 5", got.Count)
	}

	rec = call(t, a.SaveSection, http.MethodPut, "/", map[string]any{
		"stories": map[string]any{"heading": map[string]string{"en": "News"}, "limit": 4},
	}, "key", "stories")
	wantStatus(t, rec, http.StatusOK)

	rec = call(t, a.SaveSection, http.MethodPut, "/", map[string]any{
		"key":   "hero",
		"about": map[string]any{},
	}, "key", "about")
	wantStatus(t, rec, http.StatusUnprocessableEntity)
}

func TestAdminCompany(t *testing.T) {
	a, _ := newAdmin(t)

	rec := call(t, a.UpdateCompany, http.MethodPatch, "/", map[string]any{
		"tagline": map[string]string{"en": "Since 1987", "he": "מאז 1987"},
	})
	wantStatus(t, rec, http.StatusOK)
	if got := decode[models.CompanyInfo](t, rec); got.Tagline.EN != "Since 1987" || got.Name.EN != "Factory Works" {
		t.Errorf("company = %+v", got)
	}

	rec = call(t, a.SaveSocialLink, http.MethodPut, "/", map[string]any{
		"url": "https://youtube.com/@factory", "is_visible": true,
	}, "platform", "youtube")
	wantStatus(t, rec, http.StatusOK)

	rec = call(t, a.SaveSocialLink, http.MethodPut, "/", map[string]any{"url": "https://example.com"}, "platform", "myspace")
	wantStatus(t, rec, http.StatusUnprocessableEntity)

	rec = call(t, a.GetCompany, http.MethodGet, "/", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[companyResponse](t, rec); len(got.SocialLinks) != 3 {
		t.Errorf("social links = %d, want 3", len(got.SocialLinks))
	}
}

func TestAdminInbox(t *testing.T) {
	a, repo := newAdmin(t)
	ctx := context.Background()
	sub := &models.ContactSubmission{Name: "Dana", Email: "dana@example.com", Message: "hi", Lang: "he"}
	if err := repo.CreateContactSubmission(ctx, sub); err != nil {
		t.Fatal(err)
	}

	rec := call(t, a.ListSubmissions, http.MethodGet, "/", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[admin.Inbox](t, rec); got.Unread != 1 || len(got.Contact) != 1 {
		t.Fatalf("inbox = %+v", got)
	}

	rec = call(t, a.MarkSubmission, http.MethodPatch, "/", map[string]bool{"is_read": true},
		"kind", "contact", "id", sub.ID.String())
	wantStatus(t, rec, http.StatusNoContent)
	rec = call(t, a.ListSubmissions, http.MethodGet, "/", nil)
	if got := decode[admin.Inbox](t, rec); got.Unread != 0 {
		t.Errorf("unread after marking = %d", got.Unread)
	}

	rec = call(t, a.DeleteSubmission, http.MethodDelete, "/", nil, "kind", "newsletter", "id", sub.ID.String())
	wantStatus(t, rec, http.StatusUnprocessableEntity)
	rec = call(t, a.DeleteSubmission, http.MethodDelete, "/", nil, "kind", "contact", "id", sub.ID.String())
	wantStatus(t, rec, http.StatusNoContent)
}

func TestAdminOptionValues(t *testing.T) {
	a, repo := newAdmin(t)
	types, _ := repo.ListOptionTypes(context.Background())
	width := types[0]

	rec := call(t, a.CreateOptionValue, http.MethodPost, "/", map[string]any{
		"option_type_id": uuid.New(),
		"label":          map[string]string{"en": "100 cm"},
		"value":          "100",
		"price_modifier": "95.50",
		"is_active":      true,
	}, "id", width.ID.String())
	wantStatus(t, rec, http.StatusCreated)
	got := decode[models.OptionValue](t, rec)
	if got.OptionTypeID != width.ID {
		t.Errorf("option_type_id = %s, want path id %s", got.OptionTypeID, width.ID)
	}
	if got.PriceModifier.String() != "95.5" {
		t.Errorf("price_modifier = %s", got.PriceModifier)
	}
}

func TestAdminOptionsDefaultToActive(t *testing.T) {
	a, repo := newAdmin(t)
	types, _ := repo.ListOptionTypes(context.Background())

	tests := []struct {
		name string
		body map[string]any
		want bool
	}{
		{"omitted", map[string]any{"name": map[string]string{"en": "Hinge Side"}}, true},
		{"explicit false", map[string]any{"name": map[string]string{"en": "Glass Type"}, "is_active": false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, a.CreateOptionType, http.MethodPost, "/", tt.body)
			wantStatus(t, rec, http.StatusCreated)
			if got := decode[models.OptionType](t, rec); got.IsActive != tt.want {
				t.Errorf("is_active = %v, want %v", got.IsActive, tt.want)
			}
		})
	}

	rec := call(t, a.CreateOptionValue, http.MethodPost, "/", map[string]any{
		"label": map[string]string{"en": "120 cm"},
		"value": "120",
	}, "id", types[0].ID.String())
	wantStatus(t, rec, http.StatusCreated)
	if got := decode[models.OptionValue](t, rec); !got.IsActive {
		t.Error("option value created without is_active should be active")
	}
}
