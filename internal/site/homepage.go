// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"factorysite/internal/i18n"
	"factorysite/internal/models"
	"factorysite/internal/store"
)

// Homepage is everything the landing page renders, localized.
type Homepage struct {
	Lang     i18n.Lang           `json:"lang"`
	Dir      string              `json:"dir"`
	Order    []models.SectionKey `json:"order"`
	Hero     HeroBlock           `json:"hero"`
	Services ServicesBlock       `json:"services"`
	Stories  StoriesBlock        `json:"stories"`
	About    AboutBlock          `json:"about"`
	Partners []PartnerView       `json:"partners"`
	Company  *CompanyView        `json:"company"`
}

// HeroBlock is the slider with its visible slides.
type HeroBlock struct {
	AutoplaySeconds int             `json:"autoplay_seconds"`
	ShowArrows      bool            `json:"show_arrows"`
	Slides          []HeroSlideView `json:"slides"`
}

// ServicesBlock lists the public services and, when enabled, featured
// products.
type ServicesBlock struct {
	Heading    string        `json:"heading"`
	Subheading string        `json:"subheading"`
	Items      []NodeView    `json:"items"`
	Featured   []ProductView `json:"featured_products"`
}

// StoriesBlock holds the latest visible stories.
type StoriesBlock struct {
	Heading string      `json:"heading"`
	Items   []StoryView `json:"items"`
}

// AboutBlock is the localized about section.
type AboutBlock struct {
	Heading  string `json:"heading"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
}

// Sections returns the stored homepage sections merged over the defaults,
// one per key, in canonical order.
func (r *Reader) Sections(ctx context.Context) ([]models.HomepageSection, error) {
	return read(ctx, r, "homepage sections", nil, never[[]models.HomepageSection], func(repo store.Repository) ([]models.HomepageSection, error) {
		stored, err := repo.ListHomepageSections(ctx)
		if err != nil {
			return nil, fmt.Errorf("list homepage sections: %w", err)
		}
		merged := models.DefaultSections()
		for _, s := range stored {
			for i := range merged {
				if merged[i].Key == s.Key && s.Validate() == nil {
					merged[i] = s
				}
			}
		}
		return merged, nil
	})
}

// Homepage assembles the landing page. The section configs are read
// first; the blocks they parameterize are then fetched concurrently.
func (r *Reader) Homepage(ctx context.Context, lang i18n.Lang) (*Homepage, error) {
	sections, err := r.Sections(ctx)
	if err != nil {
		return nil, err
	}
	var (
		hero     *models.HeroSection
		services *models.ServicesSection
		stories  *models.StoriesSection
		about    *models.AboutSection
		layout   *models.LayoutSection
	)
	for _, s := range sections {
		switch s.Key {
		case models.SectionHero:
			hero = s.Hero
		case models.SectionServices:
			services = s.Services
		case models.SectionStories:
			stories = s.Stories
		case models.SectionAbout:
			about = s.About
		case models.SectionLayout:
			layout = s.Layout
		}
	}

	hp := &Homepage{
		Lang:  lang,
		Dir:   lang.Dir(),
		Order: visibleOrder(layout),
		Hero:  HeroBlock{AutoplaySeconds: hero.AutoplaySeconds, ShowArrows: hero.ShowArrows},
		Services: ServicesBlock{
			Heading:    services.Heading.In(lang),
			Subheading: services.Subheading.In(lang),
			Featured:   []ProductView{},
		},
		Stories: StoriesBlock{Heading: stories.Heading.In(lang)},
		About:   AboutBlock{Heading: about.Heading.In(lang), Body: about.Body.In(lang), ImageURL: about.ImageURL},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		hp.Hero.Slides, err = r.HeroSlides(gctx, lang)
		return err
	})
	g.Go(func() (err error) {
		hp.Services.Items, err = r.Services(gctx, lang, Options{IncludeComingSoon: services.ShowComingSoon})
		return err
	})
	if services.ShowFeaturedItems {
		g.Go(func() (err error) {
			hp.Services.Featured, err = r.Products(gctx, lang, ProductFilter{FeaturedOnly: true})
			return err
		})
	}
	g.Go(func() error {
		items, err := read(gctx, r, "homepage stories", nil, never[[]StoryView], func(repo store.Repository) ([]StoryView, error) {
			return visibleStories(gctx, repo, "", stories.Limit, lang)
		})
		hp.Stories.Items = items
		return err
	})
	g.Go(func() (err error) {
		hp.Partners, err = r.Partners(gctx)
		return err
	})
	g.Go(func() (err error) {
		hp.Company, err = r.CompanyInfo(gctx, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hp, nil
}

// visibleOrder returns the content sections in layout order, hidden ones
// removed. Sections missing from the layout are appended in canonical
// order.
func visibleOrder(layout *models.LayoutSection) []models.SectionKey {
	canonical := []models.SectionKey{models.SectionHero, models.SectionServices, models.SectionStories, models.SectionAbout}
	order := slices.Clone(layout.Order)
	for _, k := range canonical {
		if !slices.Contains(order, k) {
			order = append(order, k)
		}
	}
	out := []models.SectionKey{}
	for _, k := range order {
		if !slices.Contains(layout.Hidden, k) {
			out = append(out, k)
		}
	}
	return out
}
