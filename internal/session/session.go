// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session identifies visitors with a long-lived random cookie and
// hands each one a private persist namespace for their client state.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"wellnesshub/internal/persist"
)

const (
	// CookieName is the name of the visitor cookie sent to the browser.
	CookieName = "wh_visitor"

	// DefaultTTL is how long the visitor cookie lives in the browser.
	DefaultTTL = 30 * 24 * time.Hour

	// keyPrefix namespaces visitor state inside the shared store.
	keyPrefix = "visitor:"
)

// Visitor is the identity and private state store of one browser.
type Visitor struct {
	ID    string
	Store persist.Store
	// New is true when the cookie was issued on this request.
	New bool
}

// Manager issues visitor cookies and maps them to namespaces of store.
type Manager struct {
	store  persist.Store
	ttl    time.Duration
	secure bool
}

// NewManager creates a manager over store. secure sets the cookie's Secure
// flag and should be on whenever the site is served over TLS.
func NewManager(store persist.Store, secure bool) *Manager {
	return &Manager{store: store, ttl: DefaultTTL, secure: secure}
}

// Resolve returns the visitor for r, issuing a fresh cookie on w when the
// request has none or carries a malformed one. The cookie is refreshed on
// every request so active visitors never expire.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) *Visitor {
	id, fresh := "", false
	if c, err := r.Cookie(CookieName); err == nil && validID(c.Value) {
		id = c.Value
	} else {
		id, fresh = generateID(), true
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})

	return &Visitor{ID: id, Store: m.For(id), New: fresh}
}

// For returns the namespace of visitor id.
func (m *Manager) For(id string) persist.Store {
	return persist.Namespace(m.store, keyPrefix+id)
}

// generateID creates a random visitor identifier.
func generateID() string {
	return uuid.NewString()
}

func validID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.Version() == 4 && len(s) == 36
}
