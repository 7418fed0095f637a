// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package site

import (
	"context"
	"fmt"

	"factorysite/internal/apperr"
	"factorysite/internal/i18n"
	"factorysite/internal/markdown"
	"factorysite/internal/models"
	"factorysite/internal/store"
)

// Stories lists visible stories newest first. A non-empty storyType keeps
// only stories of that type.
func (r *Reader) Stories(ctx context.Context, lang i18n.Lang, storyType string) ([]StoryView, error) {
	return read(ctx, r, "list stories", nil, never[[]StoryView], func(repo store.Repository) ([]StoryView, error) {
		return visibleStories(ctx, repo, storyType, 0, lang)
	})
}

// visibleStories lists at most limit stories; limit 0 means all.
func visibleStories(ctx context.Context, repo store.Repository, storyType string, limit int, lang i18n.Lang) ([]StoryView, error) {
	stories, err := repo.ListStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	names, err := storyTypeNames(ctx, repo)
	if err != nil {
		return nil, err
	}
	out := []StoryView{}
	for i := range stories {
		s := &stories[i]
		if !s.IsVisible || (storyType != "" && s.Type != storyType) {
			continue
		}
		out = append(out, storyView(s, names, lang))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func storyTypeNames(ctx context.Context, repo store.Repository) (map[string]models.Text, error) {
	types, err := repo.ListStoryTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list story types: %w", err)
	}
	names := make(map[string]models.Text, len(types))
	for _, t := range types {
		names[t.Slug] = t.Name
	}
	return names, nil
}

// StoryBySlug returns a visible story with its body rendered to HTML.
func (r *Reader) StoryBySlug(ctx context.Context, lang i18n.Lang, slug string) (*StoryView, error) {
	return read(ctx, r, "story page", nil, never[*StoryView], func(repo store.Repository) (*StoryView, error) {
		s, err := repo.FindStoryBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if !s.IsVisible {
			return nil, apperr.NotFound("story", slug)
		}
		names, err := storyTypeNames(ctx, repo)
		if err != nil {
			return nil, err
		}
		v := storyView(s, names, lang)
		v.ContentHTML, err = markdown.ToHTML(s.Content.In(lang))
		if err != nil {
			return nil, fmt.Errorf("render story %s: %w", slug, err)
		}
		return &v, nil
	})
}

// StoryTypes lists the story type labels.
func (r *Reader) StoryTypes(ctx context.Context, lang i18n.Lang) ([]StoryTypeView, error) {
	return read(ctx, r, "list story types", nil, never[[]StoryTypeView], func(repo store.Repository) ([]StoryTypeView, error) {
		types, err := repo.ListStoryTypes(ctx)
		if err != nil {
			return nil, fmt.Errorf("list story types: %w", err)
		}
		out := make([]StoryTypeView, len(types))
		for i, t := range types {
			out[i] = StoryTypeView{Slug: t.Slug, Name: t.Name.In(lang)}
		}
		return out, nil
	})
}

// CompanyInfo returns the company profile with its visible social links.
// A store without a profile is served from the fallback.
func (r *Reader) CompanyInfo(ctx context.Context, lang i18n.Lang) (*CompanyView, error) {
	return read(ctx, r, "company info", noCompany, func(v *CompanyView) bool { return v == nil }, func(repo store.Repository) (*CompanyView, error) {
		c, err := repo.GetCompanyInfo(ctx)
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("get company info: %w", err)
		}
		links, err := repo.ListSocialLinks(ctx)
		if err != nil {
			return nil, fmt.Errorf("list social links: %w", err)
		}
		v := &CompanyView{
			Name:        c.Name.In(lang),
			Tagline:     c.Tagline.In(lang),
			Description: c.Description.In(lang),
			Phone:       c.Phone.In(lang),
			Email:       c.Email.In(lang),
			Address:     c.Address.In(lang),
			SocialLinks: []models.SocialLink{},
		}
		for _, l := range links {
			if l.IsVisible && l.URL != "" {
				v.SocialLinks = append(v.SocialLinks, l)
			}
		}
		return v, nil
	})
}

// Partners lists the visible partner logos.
func (r *Reader) Partners(ctx context.Context) ([]PartnerView, error) {
	return read(ctx, r, "list partners", nil, never[[]PartnerView], func(repo store.Repository) ([]PartnerView, error) {
		partners, err := repo.ListPartners(ctx)
		if err != nil {
			return nil, fmt.Errorf("list partners: %w", err)
		}
		out := []PartnerView{}
		for _, p := range partners {
			if p.IsVisible {
				out = append(out, PartnerView{Name: p.Name, LogoURL: p.LogoURL, WebsiteURL: p.WebsiteURL})
			}
		}
		return out, nil
	})
}

// HeroSlides lists the visible hero slides, at most models.MaxHeroSlides.
func (r *Reader) HeroSlides(ctx context.Context, lang i18n.Lang) ([]HeroSlideView, error) {
	return read(ctx, r, "list hero slides", nil, never[[]HeroSlideView], func(repo store.Repository) ([]HeroSlideView, error) {
		slides, err := repo.ListHeroSlides(ctx)
		if err != nil {
			return nil, fmt.Errorf("list hero slides: %w", err)
		}
		out := []HeroSlideView{}
		for _, s := range slides {
			if !s.IsVisible {
				continue
			}
			out = append(out, HeroSlideView{
				ID:       s.ID,
				Title:    s.Title.In(lang),
				Subtitle: s.Subtitle.In(lang),
				ImageURL: s.ImageURL,
				VideoURL: s.VideoURL,
				CTAText:  s.CTAText.In(lang),
				CTALink:  s.CTALink,
			})
			if len(out) == models.MaxHeroSlides {
				break
			}
		}
		return out, nil
	})
}
