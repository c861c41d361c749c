// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// WellnessHub storefront and back office. It organizes routes into public
// and admin groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wellnesshub/internal/handlers"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/session"
	"wellnesshub/web"
)

// Options holds the shared pieces the middleware chain needs.
type Options struct {
	Visitors *session.Manager
	// Limiter throttles sign-in attempts and lead submissions.
	Limiter *middleware.RateLimiter
	// SecureCookies sets the Secure flag on the CSRF cookie.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no visitor, no CSRF.
	r.Get("/health", healthHandler)
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadVisitor(opts.Visitors))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		// Storefront
		r.Get("/", public.Home)
		r.Get("/categories", public.Catalog)
		r.Get("/products/{id}", public.Product)
		r.Get("/wellness-hub", public.Hub)
		r.Get("/wellness-hub/{id}", public.Article)
		r.Post("/cart/add", public.CartAdd)
		r.Post("/cart/remove", public.CartRemove)
		r.Get("/checkout", public.CheckoutPage)
		r.Get("/contact", public.ContactPage)

		// Lead capture and sign-in are rate limited.
		r.Group(func(r chi.Router) {
			if opts.Limiter != nil {
				r.Use(opts.Limiter.Middleware)
			}
			r.Post("/checkout", public.CheckoutSubmit)
			r.Post("/contact/trainer", public.ContactTrainer)
			r.Post("/contact/diet-plan", public.ContactDietPlan)
			r.Post("/login", auth.LoginSubmit)
		})

		r.Get("/login", auth.LoginPage)
		r.Post("/logout", auth.Logout)

		// Back office, signed-in admins only.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Use(middleware.NoStore)

			r.Get("/", admin.Dashboard)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.Products)
				r.Get("/new", admin.ProductNew)
				r.Post("/new", admin.ProductCreate)
				r.Get("/{id}/edit", admin.ProductEdit)
				r.Post("/{id}/edit", admin.ProductUpdate)
				r.Post("/{id}/delete", admin.ProductDelete)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.Categories)
				r.Post("/", admin.CategoryCreate)
				r.Post("/{id}/delete", admin.CategoryDelete)
			})

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", admin.Articles)
				r.Get("/new", admin.ArticleNew)
				r.Post("/new", admin.ArticleCreate)
				r.Get("/{id}/edit", admin.ArticleEdit)
				r.Post("/{id}/edit", admin.ArticleUpdate)
				r.Post("/{id}/delete", admin.ArticleDelete)
			})

			r.Route("/admins", func(r chi.Router) {
				r.Get("/", admin.Admins)
				r.Get("/new", admin.AdminNew)
				r.Post("/new", admin.AdminCreate)
				r.Get("/{id}/edit", admin.AdminEdit)
				r.Post("/{id}/edit", admin.AdminUpdate)
				r.Post("/{id}/delete", admin.AdminDelete)
			})

			r.Get("/support", admin.Support)
			r.Post("/support/{id}/status", admin.SupportStatus)

			r.Route("/storefront", func(r chi.Router) {
				r.Get("/", admin.Storefront)
				r.Post("/hero", admin.StorefrontHero)
				r.Post("/features", admin.StorefrontFeatures)
				r.Post("/sections/{id}/move", admin.StorefrontMove)
				r.Post("/sections/{id}/toggle", admin.StorefrontToggle)
			})

			r.Get("/profile", admin.Profile)
			r.Post("/profile", admin.ProfileUpdate)
			r.Post("/profile/password", admin.ProfilePassword)
		})
	})

	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
