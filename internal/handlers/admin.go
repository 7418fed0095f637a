// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the factory site API.
// Handlers are grouped by concern (public, admin, media, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"factorysite/internal/admin"
	"factorysite/internal/cache"
	"factorysite/internal/models"
	"factorysite/internal/render"
	"factorysite/internal/site"
	"factorysite/internal/store"
)

// Admin groups the catalog, content and inbox handlers of the admin API.
// Reads go straight to the repository so hidden rows are visible; writes go
// through the admin.Manager and purge the public response cache.
type Admin struct {
	manager *admin.Manager
	repo    store.Repository
	reader  *site.Reader
	cache   *cache.Responses
}

// NewAdmin creates the admin handler group. responses may be nil.
func NewAdmin(repo store.Repository, responses *cache.Responses) *Admin {
	return &Admin{
		manager: admin.NewManager(repo),
		repo:    repo,
		reader:  site.New(repo, nil),
		cache:   responses,
	}
}

// purge drops cached public responses after a successful write.
func (a *Admin) purge(r *http.Request) {
	a.cache.Purge(context.WithoutCancel(r.Context()))
}

func listAll[T any](w http.ResponseWriter, r *http.Request, action string, fn func(context.Context) ([]T, error)) {
	items, err := fn(r.Context())
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

// listUnder lists the children of the parent named by the ?param= query.
func listUnder[T any](w http.ResponseWriter, r *http.Request, action, param string, fn func(context.Context, uuid.UUID) ([]T, error)) {
	parent, err := queryID(r, param)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	items, err := fn(r.Context(), parent)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(items))
}

func findOne[T any](w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, uuid.UUID) (*T, error)) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	v, err := fn(r.Context(), id)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	render.JSON(w, http.StatusOK, v)
}

// createOne decodes a new entity, lets reset clear server-owned fields and
// answers 201 with the stored row.
func createOne[T any](a *Admin, w http.ResponseWriter, r *http.Request, action string, reset func(*T), fn func(context.Context, *T) error) {
	var zero T
	createFrom(a, w, r, action, zero, reset, fn)
}

// createFrom is createOne with the body decoded over defaults, so fields
// the client omits keep their default value.
func createFrom[T any](a *Admin, w http.ResponseWriter, r *http.Request, action string, v T, reset func(*T), fn func(context.Context, *T) error) {
	if err := render.Decode(w, r, &v); err != nil {
		render.Failure(w, r, action, err)
		return
	}
	reset(&v)
	if err := fn(r.Context(), &v); err != nil {
		render.Failure(w, r, action, err)
		return
	}
	a.purge(r)
	render.Created(w, &v)
}

func updateOne[P, T any](a *Admin, w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, uuid.UUID, P) (*T, error)) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	var patch P
	if err := render.Decode(w, r, &patch); err != nil {
		render.Failure(w, r, action, err)
		return
	}
	v, err := fn(r.Context(), id, patch)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	a.purge(r)
	render.JSON(w, http.StatusOK, v)
}

func deleteOne(a *Admin, w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, uuid.UUID) error) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, action, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		render.Failure(w, r, action, err)
		return
	}
	a.purge(r)
	render.NoContent(w)
}

// --- Services, subservices, categories ---

func (a *Admin) ListServices(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list services", a.repo.ListServices)
}

func (a *Admin) GetService(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load service", a.repo.FindService)
}

func (a *Admin) CreateService(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create service", func(s *models.Service) { s.ID = uuid.Nil }, a.manager.CreateService)
}

func (a *Admin) UpdateService(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update service", a.manager.UpdateService)
}

// ListSubservices lists subservices, narrowed by ?service_id= when given.
func (a *Admin) ListSubservices(w http.ResponseWriter, r *http.Request) {
	listUnder(w, r, "list subservices", "service_id", a.repo.ListSubservices)
}

func (a *Admin) GetSubservice(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load subservice", a.repo.FindSubservice)
}

func (a *Admin) CreateSubservice(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create subservice", func(s *models.Subservice) { s.ID = uuid.Nil }, a.manager.CreateSubservice)
}

func (a *Admin) UpdateSubservice(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update subservice", a.manager.UpdateSubservice)
}

// ListCategories lists categories, narrowed by ?subservice_id= when given.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	listUnder(w, r, "list categories", "subservice_id", a.repo.ListCategories)
}

func (a *Admin) GetCategory(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load category", a.repo.FindCategory)
}

func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create category", func(c *models.Category) { c.ID = uuid.Nil }, a.manager.CreateCategory)
}

func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update category", a.manager.UpdateCategory)
}

// DeletePreview returns what deleting a hierarchy node would cascade to,
// with the token the confirming DELETE must echo.
func (a *Admin) DeletePreview(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			render.Failure(w, r, "preview delete", err)
			return
		}
		preview, err := a.manager.PreviewDelete(r.Context(), kind, id)
		if err != nil {
			render.Failure(w, r, "preview delete", err)
			return
		}
		render.JSON(w, http.StatusOK, preview)
	}
}

// ConfirmDelete removes a hierarchy node and its descendants. The ?token=
// from the preview is required; a stale token answers 409.
func (a *Admin) ConfirmDelete(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleteOne(a, w, r, "delete "+string(kind), func(ctx context.Context, id uuid.UUID) error {
			return a.manager.ConfirmDelete(ctx, kind, id, r.URL.Query().Get("token"))
		})
	}
}

// --- Products ---

// ListProducts lists products, narrowed by ?category_id= when given.
func (a *Admin) ListProducts(w http.ResponseWriter, r *http.Request) {
	listUnder(w, r, "list products", "category_id", a.repo.ListProducts)
}

func (a *Admin) GetProduct(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load product", a.repo.FindProduct)
}

func (a *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	createOne(a, w, r, "create product", func(p *models.Product) { p.ID = uuid.Nil }, a.manager.CreateProduct)
}

func (a *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update product", a.manager.UpdateProduct)
}

func (a *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete product", a.manager.DeleteProduct)
}

// DuplicateProduct copies a product as a hidden draft.
func (a *Admin) DuplicateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "duplicate product", err)
		return
	}
	dup, err := a.manager.DuplicateProduct(r.Context(), id)
	if err != nil {
		render.Failure(w, r, "duplicate product", err)
		return
	}
	a.purge(r)
	render.Created(w, dup)
}

// GetProductConfiguration returns the raw enablement rows of a product.
func (a *Admin) GetProductConfiguration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "load product configuration", err)
		return
	}
	if _, err := a.repo.FindProduct(r.Context(), id); err != nil {
		render.Failure(w, r, "load product configuration", err)
		return
	}
	rows, err := a.repo.ListProductOptions(r.Context(), id)
	if err != nil {
		render.Failure(w, r, "load product configuration", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(rows))
}

// SetProductConfiguration replaces a product's enablement rows. The body
// is a JSON array; an empty array removes the configurator.
func (a *Admin) SetProductConfiguration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "save product configuration", err)
		return
	}
	var rows []models.ProductOption
	if err := render.Decode(w, r, &rows); err != nil {
		render.Failure(w, r, "save product configuration", err)
		return
	}
	if err := a.manager.SetProductConfiguration(r.Context(), id, rows); err != nil {
		render.Failure(w, r, "save product configuration", err)
		return
	}
	a.purge(r)
	saved, err := a.repo.ListProductOptions(r.Context(), id)
	if err != nil {
		render.Failure(w, r, "load product configuration", err)
		return
	}
	render.JSON(w, http.StatusOK, render.List(saved))
}

// --- Ordering ---

type reorderRequest struct {
	Kind     string      `json:"kind"`
	ParentID uuid.UUID   `json:"parent_id"`
	IDs      []uuid.UUID `json:"ids"`
}

// Reorder rewrites the display order of one sibling group.
func (a *Admin) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Failure(w, r, "reorder", err)
		return
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		render.Failure(w, r, "reorder", err)
		return
	}
	if err := a.manager.Reorder(r.Context(), kind, req.ParentID, req.IDs); err != nil {
		render.Failure(w, r, "reorder", err)
		return
	}
	a.purge(r)
	render.NoContent(w)
}

// --- Configurator options ---

func (a *Admin) ListOptionTypes(w http.ResponseWriter, r *http.Request) {
	listAll(w, r, "list option types", a.repo.ListOptionTypes)
}

func (a *Admin) GetOptionType(w http.ResponseWriter, r *http.Request) {
	findOne(w, r, "load option type", a.repo.FindOptionType)
}

func (a *Admin) CreateOptionType(w http.ResponseWriter, r *http.Request) {
	createFrom(a, w, r, "create option type", models.OptionType{IsActive: true}, func(t *models.OptionType) {
		t.ID = uuid.Nil
		t.Values = nil
	}, a.manager.CreateOptionType)
}

func (a *Admin) UpdateOptionType(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update option type", a.manager.UpdateOptionType)
}

func (a *Admin) DeleteOptionType(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete option type", a.manager.DeleteOptionType)
}

// CreateOptionValue adds a value to the option type named in the path.
func (a *Admin) CreateOptionValue(w http.ResponseWriter, r *http.Request) {
	typeID, err := pathID(r)
	if err != nil {
		render.Failure(w, r, "create option value", err)
		return
	}
	createFrom(a, w, r, "create option value", models.OptionValue{IsActive: true}, func(v *models.OptionValue) {
		v.ID = uuid.Nil
		v.OptionTypeID = typeID
	}, a.manager.CreateOptionValue)
}

func (a *Admin) UpdateOptionValue(w http.ResponseWriter, r *http.Request) {
	updateOne(a, w, r, "update option value", a.manager.UpdateOptionValue)
}

func (a *Admin) DeleteOptionValue(w http.ResponseWriter, r *http.Request) {
	deleteOne(a, w, r, "delete option value", a.manager.DeleteOptionValue)
}
