package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

func newService(slug string, order int) *models.Service {
	return &models.Service{Node: models.Node{
		Slug: slug, Title: models.T(slug, ""), Visibility: models.VisibilityVisible, SortOrder: order,
	}}
}

func TestMemoryServiceSlugConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.CreateService(ctx, newService("cabinets", 0)); err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	err := m.CreateService(ctx, newService("cabinets", 1))
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemorySubserviceSlugScopedToParent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	a, b := newService("a", 0), newService("b", 1)
	m.CreateService(ctx, a)
	m.CreateService(ctx, b)

	sub := func(parent uuid.UUID) *models.Subservice {
		return &models.Subservice{ServiceID: parent, Node: models.Node{Slug: "kitchen", Title: models.T("Kitchen", "")}}
	}
	if err := m.CreateSubservice(ctx, sub(a.ID)); err != nil {
		t.Fatalf("first: %v", err)
	}
	if err := m.CreateSubservice(ctx, sub(b.ID)); err != nil {
		t.Fatalf("same slug under another service should be allowed: %v", err)
	}
	if err := m.CreateSubservice(ctx, sub(a.ID)); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict under same parent, got %v", err)
	}
	if err := m.CreateSubservice(ctx, sub(uuid.New())); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for missing parent, got %v", err)
	}
}

func TestMemoryListOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.CreateService(ctx, newService("second", 1))
	m.CreateService(ctx, newService("tie-a", 0))
	m.CreateService(ctx, newService("tie-b", 0))

	got, _ := m.ListServices(ctx)
	want := []string{"tie-a", "tie-b", "second"}
	for i, s := range got {
		if s.Slug != want[i] {
			t.Fatalf("order: got %v, want %v", slugs(got), want)
		}
	}
}

func slugs(services []models.Service) []string {
	out := make([]string, len(services))
	for i, s := range services {
		out[i] = s.Slug
	}
	return out
}

func TestMemoryCascadeDelete(t *testing.T) {
	m := Sample()
	ctx := context.Background()

	svc, err := m.FindServiceBySlug(ctx, "cabinets")
	if err != nil {
		t.Fatalf("FindServiceBySlug: %v", err)
	}
	subs, _ := m.ListSubservices(ctx, svc.ID)
	if len(subs) == 0 {
		t.Fatal("sample service has no subservices")
	}

	if err := m.DeleteService(ctx, svc.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}

	for _, sub := range subs {
		if _, err := m.FindSubservice(ctx, sub.ID); !apperr.IsNotFound(err) {
			t.Errorf("subservice %s survived", sub.Slug)
		}
		cats, _ := m.ListCategories(ctx, sub.ID)
		if len(cats) != 0 {
			t.Errorf("categories of %s survived", sub.Slug)
		}
	}
	if _, err := m.FindProductBySlug(ctx, "oak-door"); !apperr.IsNotFound(err) {
		t.Errorf("product survived cascade: %v", err)
	}
	if _, err := m.FindProductBySlug(ctx, "control-cabinet"); err != nil {
		t.Errorf("product of another service was removed: %v", err)
	}
}

func TestMemoryReorder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	a, b, c := newService("a", 0), newService("b", 1), newService("c", 2)
	for _, s := range []*models.Service{a, b, c} {
		m.CreateService(ctx, s)
	}

	if err := m.Reorder(ctx, models.KindService, []uuid.UUID{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got, _ := m.ListServices(ctx)
	for i, want := range []string{"c", "a", "b"} {
		if got[i].Slug != want || got[i].SortOrder != i {
			t.Fatalf("position %d: got %s/%d, want %s/%d", i, got[i].Slug, got[i].SortOrder, want, i)
		}
	}

	// An unknown id leaves everything untouched.
	err := m.Reorder(ctx, models.KindService, []uuid.UUID{b.ID, uuid.New(), a.ID})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	after, _ := m.ListServices(ctx)
	if slugs(after)[0] != "c" {
		t.Errorf("partial reorder was applied: %v", slugs(after))
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	m := Sample()
	ctx := context.Background()

	p, _ := m.FindProductBySlug(ctx, "oak-door")
	p.GalleryImages[0] = "mutated"
	p.Features.EN[0] = "mutated"

	again, _ := m.FindProductBySlug(ctx, "oak-door")
	if again.GalleryImages[0] == "mutated" || again.Features.EN[0] == "mutated" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestMemoryProductOptions(t *testing.T) {
	m := Sample()
	ctx := context.Background()

	p, _ := m.FindProductBySlug(ctx, "oak-door")
	opts, err := m.ListProductOptions(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListProductOptions: %v", err)
	}
	if len(opts) != 3 {
		t.Fatalf("expected 3 enablement rows, got %d", len(opts))
	}

	if err := m.DeleteOptionType(ctx, opts[0].OptionTypeID); err != nil {
		t.Fatalf("DeleteOptionType: %v", err)
	}
	opts, _ = m.ListProductOptions(ctx, p.ID)
	if len(opts) != 2 {
		t.Errorf("enablement row of deleted type survived: %d rows", len(opts))
	}

	if err := m.SetProductOptions(ctx, uuid.New(), nil); !apperr.IsNotFound(err) {
		t.Errorf("expected not found for unknown product, got %v", err)
	}
}

func TestMemorySubmissionsNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first := &models.ContactSubmission{Name: "A", Email: "a@example.com", Message: "hi"}
	second := &models.ContactSubmission{Name: "B", Email: "b@example.com", Message: "hi"}
	m.CreateContactSubmission(ctx, first)
	m.CreateContactSubmission(ctx, second)

	list, _ := m.ListContactSubmissions(ctx)
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if err := m.MarkSubmissionRead(ctx, models.SubmissionContact, first.ID, true); err != nil {
		t.Fatalf("MarkSubmissionRead: %v", err)
	}
	if err := m.DeleteSubmission(ctx, models.SubmissionQuote, first.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected not found in the quote inbox, got %v", err)
	}
	if err := m.DeleteSubmission(ctx, models.SubmissionContact, first.ID); err != nil {
		t.Fatalf("DeleteSubmission: %v", err)
	}
	list, _ = m.ListContactSubmissions(ctx)
	if len(list) != 1 {
		t.Errorf("expected 1 remaining submission, got %d", len(list))
	}
}

func TestSampleIsComplete(t *testing.T) {
	m := Sample()
	ctx := context.Background()

	services, _ := m.ListServices(ctx)
	if len(services) < 2 {
		t.Errorf("expected several sample services, got %d", len(services))
	}
	slides, _ := m.ListHeroSlides(ctx)
	if len(slides) > models.MaxHeroSlides {
		t.Errorf("sample has %d hero slides", len(slides))
	}
	if _, err := m.GetCompanyInfo(ctx); err != nil {
		t.Errorf("GetCompanyInfo: %v", err)
	}
	sections, _ := m.ListHomepageSections(ctx)
	if len(sections) != len(models.DefaultSections()) {
		t.Errorf("expected default sections, got %d", len(sections))
	}
}
