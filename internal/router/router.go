// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains of the
// factory site. Routes are split into the public API under /api/v1 and the
// admin API under /admin/api, each with its own middleware stack.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"factorysite/internal/cache"
	"factorysite/internal/handlers"
	"factorysite/internal/i18n"
	"factorysite/internal/middleware"
	"factorysite/internal/models"
)

// Config wires the handler groups into the router. Admin, Auth, Media and
// Sessions may all be nil; the admin API is then not mounted.
type Config struct {
	Public    *handlers.Public
	Admin     *handlers.Admin
	Auth      *handlers.Auth
	Media     *handlers.Media
	Sessions  middleware.SessionGetter
	Responses *cache.Responses

	DefaultLang i18n.Lang
	// Secure marks cookies Secure and enables HSTS.
	Secure bool

	// FormLimiter throttles the public contact and quote forms.
	FormLimiter *middleware.RateLimiter
	// LoginLimiter throttles admin sign-in and code verification.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router.
func New(cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(cfg.Secure))

	r.Get("/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Lang(cfg.DefaultLang))
		publicRoutes(r, cfg)
	})

	if cfg.Admin != nil && cfg.Auth != nil && cfg.Sessions != nil {
		r.Route("/admin/api", func(r chi.Router) {
			r.Use(middleware.LoadSession(cfg.Sessions))
			r.Use(middleware.NewCSRF(cfg.Secure))
			adminRoutes(r, cfg)
		})
	}

	return r
}

func publicRoutes(r chi.Router, cfg Config) {
	p := cfg.Public

	r.Group(func(r chi.Router) {
		r.Use(middleware.CacheResponses(cfg.Responses))

		r.Get("/navigation", p.Navigation)
		r.Get("/homepage", p.Homepage)
		r.Get("/services", p.Services)
		r.Get("/services/{slug}", p.Service)
		r.Get("/subservices/{slug}", p.Subservice)
		r.Get("/products", p.Products)
		r.Get("/products/{slug}", p.Product)
		r.Get("/products/{slug}/configuration", p.ProductConfiguration)
		r.Get("/stories", p.Stories)
		r.Get("/stories/{slug}", p.Story)
		r.Get("/story-types", p.StoryTypes)
		r.Get("/company", p.Company)
		r.Get("/partners", p.Partners)
		r.Get("/hero-slides", p.HeroSlides)
	})

	r.Group(func(r chi.Router) {
		if cfg.FormLimiter != nil {
			r.Use(cfg.FormLimiter.Middleware)
		}
		r.Post("/contact", p.Contact)
		r.Post("/quote", p.Quote)
	})
}

func adminRoutes(r chi.Router, cfg Config) {
	auth, a := cfg.Auth, cfg.Admin

	// Sign-in, reachable without a session.
	r.Group(func(r chi.Router) {
		if cfg.LoginLimiter != nil {
			r.Use(cfg.LoginLimiter.Middleware)
		}
		r.Post("/login", auth.Login)
	})
	r.Post("/logout", auth.Logout)
	r.Get("/session", auth.Session)

	// 2FA requires a session but not a completed second step.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		if cfg.LoginLimiter != nil {
			r.Use(cfg.LoginLimiter.Middleware)
		}
		r.Get("/2fa/setup", auth.TwoFASetup)
		r.Post("/2fa/verify", auth.TwoFAVerify)
	})

	// Authenticated and 2FA-verified.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)

		r.Route("/services", func(r chi.Router) {
			r.Get("/", a.ListServices)
			r.Post("/", a.CreateService)
			r.Get("/{id}", a.GetService)
			r.Patch("/{id}", a.UpdateService)
			r.Get("/{id}/delete-preview", a.DeletePreview(models.KindService))
			r.Delete("/{id}", a.ConfirmDelete(models.KindService))
		})
		r.Route("/subservices", func(r chi.Router) {
			r.Get("/", a.ListSubservices)
			r.Post("/", a.CreateSubservice)
			r.Get("/{id}", a.GetSubservice)
			r.Patch("/{id}", a.UpdateSubservice)
			r.Get("/{id}/delete-preview", a.DeletePreview(models.KindSubservice))
			r.Delete("/{id}", a.ConfirmDelete(models.KindSubservice))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", a.ListCategories)
			r.Post("/", a.CreateCategory)
			r.Get("/{id}", a.GetCategory)
			r.Patch("/{id}", a.UpdateCategory)
			r.Get("/{id}/delete-preview", a.DeletePreview(models.KindCategory))
			r.Delete("/{id}", a.ConfirmDelete(models.KindCategory))
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", a.ListProducts)
			r.Post("/", a.CreateProduct)
			r.Get("/{id}", a.GetProduct)
			r.Patch("/{id}", a.UpdateProduct)
			r.Delete("/{id}", a.DeleteProduct)
			r.Post("/{id}/duplicate", a.DuplicateProduct)
			r.Get("/{id}/configuration", a.GetProductConfiguration)
			r.Put("/{id}/configuration", a.SetProductConfiguration)
		})
		r.Post("/reorder", a.Reorder)

		r.Route("/option-types", func(r chi.Router) {
			r.Get("/", a.ListOptionTypes)
			r.Post("/", a.CreateOptionType)
			r.Get("/{id}", a.GetOptionType)
			r.Patch("/{id}", a.UpdateOptionType)
			r.Delete("/{id}", a.DeleteOptionType)
			r.Post("/{id}/values", a.CreateOptionValue)
		})
		r.Route("/option-values", func(r chi.Router) {
			r.Patch("/{id}", a.UpdateOptionValue)
			r.Delete("/{id}", a.DeleteOptionValue)
		})

		r.Route("/stories", func(r chi.Router) {
			r.Get("/", a.ListStories)
			r.Post("/", a.CreateStory)
			r.Get("/{id}", a.GetStory)
			r.Patch("/{id}", a.UpdateStory)
			r.Delete("/{id}", a.DeleteStory)
		})
		r.Route("/story-types", func(r chi.Router) {
			r.Get("/", a.ListStoryTypes)
			r.Put("/", a.SaveStoryType)
			r.Patch("/{slug}", a.RenameStoryType)
			r.Delete("/{slug}", a.DeleteStoryType)
		})

		r.Route("/hero-slides", func(r chi.Router) {
			r.Get("/", a.ListHeroSlides)
			r.Post("/", a.CreateHeroSlide)
			r.Patch("/{id}", a.UpdateHeroSlide)
			r.Delete("/{id}", a.DeleteHeroSlide)
		})
		r.Route("/partners", func(r chi.Router) {
			r.Get("/", a.ListPartners)
			r.Post("/", a.CreatePartner)
			r.Patch("/{id}", a.UpdatePartner)
			r.Delete("/{id}", a.DeletePartner)
		})

		r.Get("/company", a.GetCompany)
		r.Patch("/company", a.UpdateCompany)
		r.Put("/social-links/{platform}", a.SaveSocialLink)

		r.Get("/main-page", a.ListSections)
		r.Put("/main-page/{key}", a.SaveSection)

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", a.ListSubmissions)
			r.Patch("/{kind}/{id}", a.MarkSubmission)
			r.Delete("/{kind}/{id}", a.DeleteSubmission)
		})

		if cfg.Media != nil {
			r.Post("/media", cfg.Media.Upload)
			r.Delete("/media", cfg.Media.Delete)
		}
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
