// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"factorysite/internal/admin"
	"factorysite/internal/apperr"
	"factorysite/internal/models"
	"factorysite/internal/render"
)

// --- Stories ---

func (a *Admin) ListStories(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list stories", a.repo.ListStories)
}

func (a *Admin) GetStory(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load story", a.repo.FindStory)
}

func (a *Admin) CreateStory(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create story", func(s *models.Story) { s.ID = uuid.Nil }, a.manager.CreateStory)
}

func (a *Admin) UpdateStory(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update story", a.manager.UpdateStory)
}

func (a *Admin) DeleteStory(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete story", a.manager.DeleteStory)
}

// --- Story types ---

func (a *Admin) ListStoryTypes(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list story types", a.repo.ListStoryTypes)
}

// SaveStoryType creates a story type, or relabels it when the slug exists.
func (a *Admin) SaveStoryType(w http.ResponseWriter, r *http.Request) {
	var t models.StoryType
	if err := render.Decode(w, r, &t); err != nil {
		render.Failure(w, r, "save story type", err)
		return
	}
	if err := a.manager.UpsertStoryType(r.Context(), &t); err != nil {
		render.Failure(w, r, "save story type", err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, &t)
}

type renameRequest struct {
	Name models.Text `json:"name"`
}

// RenameStoryType relabels the story type named by {slug}.
func (a *Admin) RenameStoryType(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "rename story type", err)
		return
	}
	t, err := a.manager.RenameStoryType(r.Context(), chi.URLParam(r, "slug"), req.Name)
	if err != nil {
		render.Failure(w, r, "rename story type", err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, t)
}

// DeleteStoryType removes an unused story type. One still referenced by a
// story answers 409.
func (a *Admin) DeleteStoryType(w http.ResponseWriter, r *http.Request) {
	if err := a.manager.DeleteStoryType(r.Context(), chi.URLParam(r, "slug")); err != nil {
		render.Failure(w, r, "delete story type", err)
		return
	}
	a.purge(r)
	render.NoContent(w)
}

// --- Hero slides and partners ---

func (a *Admin) ListHeroSlides(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list hero slides", a.repo.ListHeroSlides)
}

func (a *Admin) CreateHeroSlide(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create hero slide", func(s *models.HeroSlide) { s.ID = uuid.Nil }, a.manager.CreateHeroSlide)
}

func (a *Admin) UpdateHeroSlide(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update hero slide", a.manager.UpdateHeroSlide)
}

func (a *Admin) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete hero slide", a.manager.DeleteHeroSlide)
}

func (a *Admin) ListPartners(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list partners", a.repo.ListPartners)
}

func (a *Admin) CreatePartner(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create partner", func(p *models.Partner) { p.ID = uuid.Nil }, a.manager.CreatePartner)
}

func (a *Admin) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update partner", a.manager.UpdatePartner)
}

func (a *Admin) DeletePartner(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete partner", a.manager.DeletePartner)
}

// --- Company profile ---

type companyResponse struct {
	Company     *models.CompanyInfo `json:"company"`
	SocialLinks []models.SocialLink `json:"social_links"`
}

// GetCompany returns the company profile and every social link. A profile
// that was never saved is returned empty.
func (a *Admin) GetCompany(w http.ResponseWriter, r *http.Request) {
	info, err := a.repo.GetCompanyInfo(r.Context())
	if apperr.IsNotFound(err) {
		info, err = &models.CompanyInfo{}, nil
	}
	if err != nil {
		render.Failure(w, r, "load company info", err)
		return
	}
	links, err := a.repo.ListSocialLinks(r.Context())
	if err != nil {
		render.Failure(w, r, "load social links", err)
		return
	}
	if links == nil {
		links = []models.SocialLink{}
	}
	render.JSON(w, http.StatusOK, companyResponse{Company: info, SocialLinks: links})
}

// UpdateCompany merges a patch into the company profile.
func (a *Admin) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var patch admin.CompanyPatch
	if err := render.Decode(w, r, &patch); err != nil {
		render.Failure(w, r, "update company info", err)
		return
	}
	info, err := a.manager.UpdateCompanyInfo(r.Context(), patch)
	if err != nil {
		render.Failure(w, r, "update company info", err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, info)
}

type socialLinkRequest struct {
	URL       string `json:"url"`
	IsVisible bool   `json:"is_visible"`
}

// SaveSocialLink stores the link of the platform named by {platform}.
func (a *Admin) SaveSocialLink(w http.ResponseWriter, r *http.Request) {
	var req socialLinkRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "save social link", err)
		return
	}
	link := &models.SocialLink{
		Platform:  models.Platform(chi.URLParam(r, "platform")),
		URL:       req.URL,
		IsVisible: req.IsVisible,
	}
	if err := a.manager.UpsertSocialLink(r.Context(), link); err != nil {
		render.Failure(w, r, "save social link", err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, link)
}

// --- Homepage sections ---

// ListSections returns every homepage section, defaults filled in.
func (a *Admin) ListSections(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "load homepage sections", a.reader.Sections)
}

// SaveSection stores the section named by {key}. The body is the full
// tagged section; its key must match the path.
func (a *Admin) SaveSection(w http.ResponseWriter, r *http.Request) {
	var s models.HomepageSection
	if err := render.Decode(w, r, &s); err != nil {
		render.Failure(w, r, "save homepage section", err)
		return
	}
	key := models.SectionKey(chi.URLParam(r, "key"))
	if s.Key == "" {
		s.Key = key
	}
	if s.Key != key {
		render.Failure(w, r, "save homepage section", apperr.Invalid("key", "body key %q does not match %q", s.Key, key))
		return
	}
	if err := a.manager.SaveHomepageSection(r.Context(), &s); err != nil {
		render.Failure(w, r, "save homepage section", err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, &s)
}

// --- Inbox ---

// ListSubmissions returns both inboxes with the unread count.
func (a *Admin) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	inbox, err := a.manager.ListSubmissions(r.Context())
	if err != nil {
		render.Failure(w, r, "list submissions", err)
		return
	}
	render.JSON(w, http.StatusOK, inbox)
}

type markReadRequest struct {
	IsRead bool `json:"is_read"`
}

// MarkSubmission flags a submission read or unread.
func (a *Admin) MarkSubmission(w http.ResponseWriter, r *http.Request) {
	kind, err := parseSubmissionKind(chi.URLParam(r, "kind"))
	if err != nil {
		render.Failure(w, r, "update submission", err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "update submission", err)
		return
	}
	var req markReadRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "update submission", err)
		return
	}
	if err := a.manager.MarkRead(r.Context(), kind, id, req.IsRead); err != nil {
		render.Failure(w, r, "update submission", err)
		return
	}
	render.NoContent(w)
}

// DeleteSubmission removes a submission from its inbox.
func (a *Admin) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	kind, err := parseSubmissionKind(chi.URLParam(r, "kind"))
	if err != nil {
		render.Failure(w, r, "delete submission", err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "delete submission", err)
		return
	}
	if err := a.manager.DeleteSubmission(r.Context(), kind, id); err != nil {
		render.Failure(w, r, "delete submission", err)
		return
	}
	render.NoContent(w)
}
