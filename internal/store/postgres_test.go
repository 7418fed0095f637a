package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factorysite/internal/apperr"
	"factorysite/internal/models"
)

// seedTree creates service → subservice → category → product under a
// unique slug prefix and registers cleanup.
func seedTree(t *testing.T, p *Postgres, prefix string) (*models.Service, *models.Subservice, *models.Category, *models.Product) {
	t.Helper()
	ctx := context.Background()
	t.Cleanup(func() { cleanServices(t, p.db, prefix+"-svc") })

	svc := &models.Service{Node: models.Node{Slug: prefix + "-svc", Title: models.T("Cabinets", "ארונות"), Visibility: models.VisibilityVisible}}
	if err := p.CreateService(ctx, svc); err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	sub := &models.Subservice{ServiceID: svc.ID, Node: models.Node{Slug: prefix + "-sub", Title: models.T("Kitchen", ""), Visibility: models.VisibilityVisible}}
	if err := p.CreateSubservice(ctx, sub); err != nil {
		t.Fatalf("CreateSubservice: %v", err)
	}
	cat := &models.Category{SubserviceID: sub.ID, Node: models.Node{Slug: prefix + "-cat", Title: models.T("Doors", ""), Visibility: models.VisibilityVisible}}
	if err := p.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	prod := &models.Product{
		CategoryID:     cat.ID,
		Slug:           prefix + "-product",
		Title:          models.T("Oak Door", "דלת אלון"),
		GalleryImages:  []string{"a.jpg", "b.jpg"},
		Features:       models.TextList{EN: []string{"Solid"}, HE: []string{"מלא"}},
		Specifications: []models.Specification{{Label: models.T("Width", "רוחב"), Value: "60", Unit: "cm"}},
		Visibility:     models.VisibilityVisible,
	}
	if err := p.CreateProduct(ctx, prod); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return svc, sub, cat, prod
}

func TestPostgresCatalogRoundTrip(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()
	_, _, cat, prod := seedTree(t, p, "pg-roundtrip")

	got, err := p.FindProductBySlug(ctx, prod.Slug)
	if err != nil {
		t.Fatalf("FindProductBySlug: %v", err)
	}
	if got.CategoryID != cat.ID || got.Title.HE != "דלת אלון" {
		t.Errorf("unexpected product: %+v", got)
	}
	if len(got.GalleryImages) != 2 || got.Specifications[0].Unit != "cm" || got.Features.HE[0] != "מלא" {
		t.Errorf("json columns not restored: %+v", got)
	}

	got.Visibility = models.VisibilityNotInStock
	if err := p.UpdateProduct(ctx, got); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	again, _ := p.FindProduct(ctx, got.ID)
	if again.Visibility != models.VisibilityNotInStock {
		t.Errorf("visibility not updated: %s", again.Visibility)
	}
}

func TestPostgresSlugConflict(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()
	svc, _, _, _ := seedTree(t, p, "pg-conflict")

	dup := &models.Service{Node: models.Node{Slug: svc.Slug, Title: models.T("Dup", ""), Visibility: models.VisibilityVisible}}
	if err := p.CreateService(ctx, dup); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestPostgresCascadeDelete(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()
	svc, sub, cat, prod := seedTree(t, p, "pg-cascade")

	if err := p.DeleteService(ctx, svc.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if _, err := p.FindSubservice(ctx, sub.ID); !apperr.IsNotFound(err) {
		t.Errorf("subservice survived: %v", err)
	}
	if _, err := p.FindCategory(ctx, cat.ID); !apperr.IsNotFound(err) {
		t.Errorf("category survived: %v", err)
	}
	if _, err := p.FindProduct(ctx, prod.ID); !apperr.IsNotFound(err) {
		t.Errorf("product survived: %v", err)
	}
	if err := p.DeleteService(ctx, svc.ID); !apperr.IsNotFound(err) {
		t.Errorf("second delete: expected not found, got %v", err)
	}
}

func TestPostgresReorderIsAtomic(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()
	_, sub, _, _ := seedTree(t, p, "pg-reorder")

	var ids []uuid.UUID
	for i, slug := range []string{"x", "y", "z"} {
		c := &models.Category{SubserviceID: sub.ID, Node: models.Node{
			Slug: "pg-reorder-" + slug, Title: models.T(slug, ""), Visibility: models.VisibilityVisible, SortOrder: i + 1,
		}}
		if err := p.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
		ids = append(ids, c.ID)
	}

	err := p.Reorder(ctx, models.KindCategory, []uuid.UUID{ids[2], uuid.New(), ids[0]})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	first, _ := p.FindCategory(ctx, ids[2])
	if first.SortOrder != 3 {
		t.Errorf("failed reorder was partially applied: sort_order=%d", first.SortOrder)
	}

	cats, _ := p.ListCategories(ctx, sub.ID)
	all := make([]uuid.UUID, 0, len(cats))
	for i := len(cats) - 1; i >= 0; i-- {
		all = append(all, cats[i].ID)
	}
	if err := p.Reorder(ctx, models.KindCategory, all); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	cats, _ = p.ListCategories(ctx, sub.ID)
	for i, c := range cats {
		if c.ID != all[i] || c.SortOrder != i {
			t.Fatalf("position %d: got %s/%d", i, c.Slug, c.SortOrder)
		}
	}
}

func TestPostgresProductOptions(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()
	_, _, _, prod := seedTree(t, p, "pg-options")

	typ := &models.OptionType{Slug: "pg-options-width", Name: models.T("Width", ""), InputType: models.InputButtonGroup, IsActive: true}
	if err := p.CreateOptionType(ctx, typ); err != nil {
		t.Fatalf("CreateOptionType: %v", err)
	}
	t.Cleanup(func() { p.DeleteOptionType(context.Background(), typ.ID) })

	val := &models.OptionValue{OptionTypeID: typ.ID, Slug: "60", Label: models.T("60 cm", ""), IsActive: true,
		PriceModifier: decimal.RequireFromString("12.50")}
	if err := p.CreateOptionValue(ctx, val); err != nil {
		t.Fatalf("CreateOptionValue: %v", err)
	}

	err := p.SetProductOptions(ctx, prod.ID, []models.ProductOption{
		{OptionTypeID: typ.ID, EnabledValueIDs: []uuid.UUID{val.ID}, IsRequired: true},
	})
	if err != nil {
		t.Fatalf("SetProductOptions: %v", err)
	}

	opts, err := p.ListProductOptions(ctx, prod.ID)
	if err != nil || len(opts) != 1 {
		t.Fatalf("ListProductOptions: %v, %d rows", err, len(opts))
	}
	if !opts[0].IsRequired || len(opts[0].EnabledValueIDs) != 1 || opts[0].EnabledValueIDs[0] != val.ID {
		t.Errorf("unexpected enablement row: %+v", opts[0])
	}

	loaded, _ := p.FindOptionType(ctx, typ.ID)
	if len(loaded.Values) != 1 || !loaded.Values[0].PriceModifier.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("price modifier not restored: %+v", loaded.Values)
	}

	if err := p.DeleteOptionValue(ctx, val.ID); err != nil {
		t.Fatalf("DeleteOptionValue: %v", err)
	}
	opts, _ = p.ListProductOptions(ctx, prod.ID)
	if len(opts[0].EnabledValueIDs) != 0 {
		t.Errorf("deleted value still enabled: %v", opts[0].EnabledValueIDs)
	}
}

func TestPostgresHomepageSections(t *testing.T) {
	p := NewPostgres(testDB(t))
	ctx := context.Background()

	s := &models.HomepageSection{Key: models.SectionStories, Stories: &models.StoriesSection{
		Heading: models.T("News", "חדשות"), Limit: 4,
	}}
	if err := p.SaveHomepageSection(ctx, s); err != nil {
		t.Fatalf("SaveHomepageSection: %v", err)
	}

	sections, err := p.ListHomepageSections(ctx)
	if err != nil {
		t.Fatalf("ListHomepageSections: %v", err)
	}
	for _, got := range sections {
		if got.Key == models.SectionStories {
			if got.Stories == nil || got.Stories.Limit != 4 {
				t.Errorf("stories section not restored: %+v", got)
			}
			return
		}
	}
	t.Error("stories section missing")
}

func TestPostgresSeedFromSample(t *testing.T) {
	db := testDB(t)
	p := NewPostgres(db)
	ctx := context.Background()

	var n int
	db.QueryRow(`SELECT COUNT(*) FROM services`).Scan(&n)
	if n > 0 {
		t.Skip("skipping: database already holds a catalog")
	}

	if err := SeedFrom(ctx, p, Sample()); err != nil {
		t.Fatalf("SeedFrom: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM services`)
		db.Exec(`DELETE FROM config_option_types`)
		db.Exec(`DELETE FROM stories`)
		db.Exec(`DELETE FROM story_types`)
		db.Exec(`DELETE FROM hero_slides`)
		db.Exec(`DELETE FROM partners`)
	})

	if _, err := p.FindProductBySlug(ctx, "oak-door"); err != nil {
		t.Errorf("seeded product missing: %v", err)
	}
}
