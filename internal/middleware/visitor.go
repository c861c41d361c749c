// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"wellnesshub/internal/auth"
	"wellnesshub/internal/cart"
	"wellnesshub/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// VisitKey is the context key for the visitor's loaded state.
	VisitKey contextKey = "visit"
)

// Visit is the per-request view of one visitor: identity, cart and admin
// sign-in state, all bound to the visitor's private store.
type Visit struct {
	Visitor *session.Visitor
	Cart    *cart.Store
	Auth    *auth.Session
}

// LoadVisitor resolves the visitor cookie and loads the cart and auth
// session into the request context. Downstream handlers access them via
// VisitFromCtx. Storage errors are logged and the visitor continues with
// empty state; a cart that failed to load rejects changes.
func LoadVisitor(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v := m.Resolve(w, r)
			visit := &Visit{
				Visitor: v,
				Cart:    cart.New(v.Store),
				Auth:    auth.NewSession(v.Store, v.ID),
			}
			if !v.New {
				if err := visit.Cart.Load(r.Context()); err != nil {
					slog.Warn("cart load failed", "visitor", v.ID, "error", err)
				}
				if err := visit.Auth.Load(r.Context()); err != nil {
					slog.Warn("auth load failed", "visitor", v.ID, "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), VisitKey, visit)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitFromCtx extracts the visit from the request context. Returns nil if
// LoadVisitor did not run.
func VisitFromCtx(ctx context.Context) *Visit {
	v, _ := ctx.Value(VisitKey).(*Visit)
	return v
}

// RequireAdmin redirects visitors without a token and identity to the
// login page, carrying the requested path in the from parameter.
// Must be applied after LoadVisitor in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visit := VisitFromCtx(r.Context())
		if visit == nil || !visit.Auth.Authenticated() {
			http.Redirect(w, r, auth.LoginURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
