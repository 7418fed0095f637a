// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"factorysite/internal/models"
)

// Sample returns a Memory repository holding the built-in demo catalog. The
// public site serves it whenever the database is unreachable or empty.
func Sample() *Memory {
	m := NewMemory()
	ctx := context.Background()
	b := sampleBuilder{ctx: ctx, m: m}

	cabinets := b.service("cabinets", models.T("Cabinets", "ארונות"),
		models.T("Custom cabinetry built in our own workshop.", "נגרות בהתאמה אישית מהמפעל שלנו."), "#8b5e3c", models.VisibilityVisible)
	kitchen := b.subservice(cabinets, "kitchen", models.T("Kitchen", "מטבח"), models.VisibilityVisible)
	bath := b.subservice(cabinets, "bathroom", models.T("Bathroom", "אמבטיה"), models.VisibilityVisible)
	doors := b.category(kitchen, "doors", models.T("Doors", "דלתות"))
	drawers := b.category(kitchen, "drawers", models.T("Drawers", "מגירות"))
	vanities := b.category(bath, "vanities", models.T("Vanities", "ארונות אמבטיה"))

	metal := b.service("metalwork", models.T("Metalwork", "עבודות מתכת"),
		models.T("Laser cutting, bending and welding.", "חיתוך לייזר, כיפוף וריתוך."), "#4a5968", models.VisibilityVisible)
	sheet := b.subservice(metal, "sheet-metal", models.T("Sheet Metal", "פח"), models.VisibilityVisible)
	enclosures := b.category(sheet, "enclosures", models.T("Enclosures", "מארזים"))

	b.service("outdoor", models.T("Outdoor", "חוץ"),
		models.T("Pergolas and outdoor kitchens.", "פרגולות ומטבחי חוץ."), "#5c7c3a", models.VisibilityComingSoon)

	oak := b.product(doors, "oak-door", models.T("Oak Door", "דלת אלון"), models.T("Solid oak front", "חזית אלון מלא"), true)
	b.product(doors, "shaker-door", models.T("Shaker Door", "דלת שייקר"), models.T("Painted MDF", "MDF צבוע"), false)
	b.product(drawers, "soft-close-drawer", models.T("Soft-Close Drawer", "מגירה שקטה"), models.T("Full extension runners", "מסילות פתיחה מלאה"), true)
	b.product(vanities, "floating-vanity", models.T("Floating Vanity", "ארון צף"), models.T("Wall mounted", "תלוי על הקיר"), false)
	b.product(enclosures, "control-cabinet", models.T("Control Cabinet", "ארון חשמל"), models.T("Powder coated steel", "פלדה בצביעה אלקטרוסטטית"), false)

	width := b.optionType("module-width", models.T("Module Width", "רוחב מודול"), models.InputButtonGroup, "cm")
	w40 := b.optionValue(width, "40", models.T("40 cm", "40 ס״מ"), "40", "", decimal.Zero)
	w60 := b.optionValue(width, "60", models.T("60 cm", "60 ס״מ"), "60", "", decimal.RequireFromString("35.00"))
	b.optionValue(width, "80", models.T("80 cm", "80 ס״מ"), "80", "", decimal.RequireFromString("70.00"))
	finish := b.optionType("finish", models.T("Finish", "גימור"), models.InputColorPicker, "")
	b.optionValue(finish, "natural", models.T("Natural", "טבעי"), "natural", "#c8a165", decimal.Zero)
	b.optionValue(finish, "walnut", models.T("Walnut", "אגוז"), "walnut", "#5d4030", decimal.RequireFromString("20.00"))
	hardware := b.optionType("hardware", models.T("Hardware", "פרזול"), models.InputCheckboxGroup, "")
	b.optionValue(hardware, "soft-close", models.T("Soft-close hinges", "צירים שקטים"), "soft-close", "", decimal.RequireFromString("12.50"))
	b.optionValue(hardware, "handle", models.T("Brass handle", "ידית פליז"), "handle", "", decimal.RequireFromString("18.00"))

	b.must(m.SetProductOptions(ctx, oak.ID, []models.ProductOption{
		{OptionTypeID: width.ID, EnabledValueIDs: []uuid.UUID{w40.ID, w60.ID}, IsRequired: true, SortOrder: 0},
		{OptionTypeID: finish.ID, IsRequired: true, SortOrder: 1},
		{OptionTypeID: hardware.ID, SortOrder: 2},
	}))

	b.storyType("news", models.T("News", "חדשות"))
	b.storyType("project", models.T("Project", "פרויקט"))
	b.story("new-cnc-line", models.T("New CNC line", "קו CNC חדש"), "news", "2026-03-02",
		models.T("Our workshop doubled its cutting capacity.", "המפעל הכפיל את כושר החיתוך."),
		models.T("We installed a second **CNC router** this spring.", "התקנו השנה **נתב CNC** נוסף."))
	b.story("villa-kitchen", models.T("Villa kitchen", "מטבח בווילה"), "project", "2026-01-18",
		models.T("A full oak kitchen for a private villa.", "מטבח אלון מלא לווילה פרטית."),
		models.T("Twelve metres of oak cabinetry, installed in three days.", "שנים עשר מטרים של ארונות אלון, הותקנו בשלושה ימים."))

	b.heroSlide(models.T("Built to measure", "בנוי לפי מידה"), models.T("Cabinetry and metalwork from one workshop", "נגרות ומתכת ממפעל אחד"), "/services/cabinets")
	b.heroSlide(models.T("Request a quote", "בקשו הצעת מחיר"), models.T("Answers within one working day", "מענה תוך יום עבודה"), "/quote")

	b.partner("Blum", "https://www.blum.com")
	b.partner("Hettich", "https://www.hettich.com")

	b.must(m.SaveCompanyInfo(ctx, &models.CompanyInfo{
		Name:        models.T("Factory Works", "מפעלי עבודה"),
		Tagline:     models.T("Made in our own workshop", "מיוצר במפעל שלנו"),
		Description: models.T("A family-run manufacturer of cabinetry and metalwork.", "יצרן משפחתי של נגרות ועבודות מתכת."),
		Phone:       models.T("+972-3-555-0100", "03-555-0100"),
		Email:       models.T("info@example.com", ""),
		Address:     models.T("12 Industry St, Haifa", "רחוב התעשייה 12, חיפה"),
	}))
	b.must(m.SaveSocialLink(ctx, &models.SocialLink{Platform: models.PlatformFacebook, URL: "https://facebook.com/example", IsVisible: true}))
	b.must(m.SaveSocialLink(ctx, &models.SocialLink{Platform: models.PlatformInstagram, URL: "https://instagram.com/example", IsVisible: true}))

	for _, s := range models.DefaultSections() {
		b.must(m.SaveHomepageSection(ctx, &s))
	}
	return m
}

// sampleBuilder keeps Sample readable. Any error is a bug in the sample
// data itself, so it panics.
type sampleBuilder struct {
	ctx context.Context
	m   *Memory

	serviceN, partnerN, slideN, typeN int
	subN                              map[uuid.UUID]int
}

func (b *sampleBuilder) must(err error) {
	if err != nil {
		panic(fmt.Sprintf("sample data: %v", err))
	}
}

func (b *sampleBuilder) next(parent uuid.UUID) int {
	if b.subN == nil {
		b.subN = make(map[uuid.UUID]int)
	}
	n := b.subN[parent]
	b.subN[parent] = n + 1
	return n
}

func (b *sampleBuilder) service(slug string, title, desc models.Text, accent string, vis models.Visibility) *models.Service {
	s := &models.Service{Node: models.Node{
		Slug: slug, Title: title, Description: desc, AccentColor: accent,
		ImageURL: "/static/sample/" + slug + ".jpg", Visibility: vis, SortOrder: b.serviceN,
	}}
	b.serviceN++
	b.must(b.m.CreateService(b.ctx, s))
	return s
}

func (b *sampleBuilder) subservice(parent *models.Service, slug string, title models.Text, vis models.Visibility) *models.Subservice {
	s := &models.Subservice{ServiceID: parent.ID, Node: models.Node{
		Slug: slug, Title: title, ImageURL: "/static/sample/" + slug + ".jpg",
		Visibility: vis, SortOrder: b.next(parent.ID),
	}}
	b.must(b.m.CreateSubservice(b.ctx, s))
	return s
}

func (b *sampleBuilder) category(parent *models.Subservice, slug string, title models.Text) *models.Category {
	c := &models.Category{SubserviceID: parent.ID, Node: models.Node{
		Slug: slug, Title: title, ImageURL: "/static/sample/" + slug + ".jpg",
		Visibility: models.VisibilityVisible, SortOrder: b.next(parent.ID),
	}}
	b.must(b.m.CreateCategory(b.ctx, c))
	return c
}

func (b *sampleBuilder) product(parent *models.Category, slug string, title, subtitle models.Text, featured bool) *models.Product {
	p := &models.Product{
		CategoryID:    parent.ID,
		Slug:          slug,
		Title:         title,
		Subtitle:      subtitle,
		Description:   models.T(title.EN+" made to order.", title.HE+" בהזמנה אישית."),
		ImageURL:      "/static/sample/" + slug + ".jpg",
		GalleryImages: []string{"/static/sample/" + slug + "-1.jpg", "/static/sample/" + slug + "-2.jpg"},
		Features: models.TextList{
			EN: []string{"Made to measure", "Five year warranty"},
			HE: []string{"לפי מידה", "אחריות לחמש שנים"},
		},
		Specifications: []models.Specification{
			{Label: models.T("Lead time", "זמן אספקה"), Value: "3", Unit: "weeks"},
		},
		Visibility: models.VisibilityVisible,
		IsFeatured: featured,
		SortOrder:  b.next(parent.ID),
	}
	b.must(b.m.CreateProduct(b.ctx, p))
	return p
}

func (b *sampleBuilder) optionType(slug string, name models.Text, input models.InputType, unit string) *models.OptionType {
	t := &models.OptionType{Slug: slug, Name: name, InputType: input, Unit: unit, IsActive: true, SortOrder: b.typeN}
	b.typeN++
	b.must(b.m.CreateOptionType(b.ctx, t))
	return t
}

func (b *sampleBuilder) optionValue(t *models.OptionType, slug string, label models.Text, value, color string, price decimal.Decimal) *models.OptionValue {
	v := &models.OptionValue{
		OptionTypeID: t.ID, Slug: slug, Label: label, Value: value, ColorHex: color,
		PriceModifier: price, IsActive: true, SortOrder: b.next(t.ID),
	}
	b.must(b.m.CreateOptionValue(b.ctx, v))
	return v
}

func (b *sampleBuilder) storyType(slug string, name models.Text) {
	b.must(b.m.SaveStoryType(b.ctx, &models.StoryType{Slug: slug, Name: name}))
}

func (b *sampleBuilder) story(slug string, title models.Text, kind, date string, excerpt, content models.Text) {
	d, err := time.Parse(time.DateOnly, date)
	b.must(err)
	b.must(b.m.CreateStory(b.ctx, &models.Story{
		Slug: slug, Title: title, Date: d, Type: kind, ImageURL: "/static/sample/" + slug + ".jpg",
		Excerpt: excerpt, Content: content, IsVisible: true,
	}))
}

func (b *sampleBuilder) heroSlide(title, subtitle models.Text, link string) {
	b.must(b.m.CreateHeroSlide(b.ctx, &models.HeroSlide{
		Title: title, Subtitle: subtitle, CTAText: models.T("Learn more", "למידע נוסף"), CTALink: link,
		ImageURL: fmt.Sprintf("/static/sample/hero-%d.jpg", b.slideN+1), IsVisible: true, SortOrder: b.slideN,
	}))
	b.slideN++
}

func (b *sampleBuilder) partner(name, site string) {
	b.must(b.m.CreatePartner(b.ctx, &models.Partner{
		Name: name, LogoURL: "/static/sample/partner-" + fmt.Sprint(b.partnerN+1) + ".png",
		WebsiteURL: site, IsVisible: true, SortOrder: b.partnerN,
	}))
	b.partnerN++
}

// SeedFrom copies every row of src into dst, keeping ids. It is used to
// load the sample catalog into an empty development database.
func SeedFrom(ctx context.Context, dst Repository, src *Memory) error {
	services, _ := src.ListServices(ctx)
	for i := range services {
		if err := dst.CreateService(ctx, &services[i]); err != nil {
			return fmt.Errorf("seed service %s: %w", services[i].Slug, err)
		}
	}
	subs, _ := src.ListSubservices(ctx, uuid.Nil)
	for i := range subs {
		if err := dst.CreateSubservice(ctx, &subs[i]); err != nil {
			return fmt.Errorf("seed subservice %s: %w", subs[i].Slug, err)
		}
	}
	cats, _ := src.ListCategories(ctx, uuid.Nil)
	for i := range cats {
		if err := dst.CreateCategory(ctx, &cats[i]); err != nil {
			return fmt.Errorf("seed category %s: %w", cats[i].Slug, err)
		}
	}
	products, _ := src.ListProducts(ctx, uuid.Nil)
	for i := range products {
		if err := dst.CreateProduct(ctx, &products[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", products[i].Slug, err)
		}
	}

	types, _ := src.ListOptionTypes(ctx)
	for i := range types {
		t := types[i]
		if err := dst.CreateOptionType(ctx, &t); err != nil {
			return fmt.Errorf("seed option type %s: %w", t.Slug, err)
		}
		for j := range types[i].Values {
			if err := dst.CreateOptionValue(ctx, &types[i].Values[j]); err != nil {
				return fmt.Errorf("seed option value %s: %w", types[i].Values[j].Slug, err)
			}
		}
	}
	for _, p := range products {
		opts, _ := src.ListProductOptions(ctx, p.ID)
		if len(opts) == 0 {
			continue
		}
		if err := dst.SetProductOptions(ctx, p.ID, opts); err != nil {
			return fmt.Errorf("seed product options %s: %w", p.Slug, err)
		}
	}

	storyTypes, _ := src.ListStoryTypes(ctx)
	for i := range storyTypes {
		if err := dst.SaveStoryType(ctx, &storyTypes[i]); err != nil {
			return fmt.Errorf("seed story type %s: %w", storyTypes[i].Slug, err)
		}
	}
	stories, _ := src.ListStories(ctx)
	for i := range stories {
		if err := dst.CreateStory(ctx, &stories[i]); err != nil {
			return fmt.Errorf("seed story %s: %w", stories[i].Slug, err)
		}
	}
	slides, _ := src.ListHeroSlides(ctx)
	for i := range slides {
		if err := dst.CreateHeroSlide(ctx, &slides[i]); err != nil {
			return fmt.Errorf("seed hero slide: %w", err)
		}
	}
	partners, _ := src.ListPartners(ctx)
	for i := range partners {
		if err := dst.CreatePartner(ctx, &partners[i]); err != nil {
			return fmt.Errorf("seed partner %s: %w", partners[i].Name, err)
		}
	}

	if info, err := src.GetCompanyInfo(ctx); err == nil {
		if err := dst.SaveCompanyInfo(ctx, info); err != nil {
			return fmt.Errorf("seed company info: %w", err)
		}
	}
	links, _ := src.ListSocialLinks(ctx)
	for i := range links {
		if err := dst.SaveSocialLink(ctx, &links[i]); err != nil {
			return fmt.Errorf("seed social link: %w", err)
		}
	}
	sections, _ := src.ListHomepageSections(ctx)
	for i := range sections {
		if err := dst.SaveHomepageSection(ctx, &sections[i]); err != nil {
			return fmt.Errorf("seed homepage section %s: %w", sections[i].Key, err)
		}
	}
	return nil
}
