// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the WellnessHub storefront
// and back office. Handlers are grouped by concern (public, admin, auth)
// and receive their dependencies through the handler struct. Each request
// builds fresh page controllers; nothing fetched from the backend outlives
// the request.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"wellnesshub/internal/api"
	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/auth"
	"wellnesshub/internal/cart"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/persist"
	"wellnesshub/internal/render"
)

// maxFormMemory is how much of a multipart form is kept in memory.
const maxFormMemory = 8 << 20

// flashKey holds the pending notification in the visitor's store.
const flashKey = "wh_flash"

// Backend hands out the API modules for one request. Admin calls carry the
// visitor's token; public calls go out without one.
type Backend struct {
	client *apiclient.Client
	mock   *api.MockProducts
}

// NewBackend wraps client. When mock is not nil, product calls use the
// local store instead of the backend.
func NewBackend(client *apiclient.Client, mock *api.MockProducts) *Backend {
	return &Backend{client: client, mock: mock}
}

// admin returns the doer bound to the visitor's session.
func (b *Backend) admin(r *http.Request) apiclient.Doer {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil || visit.Auth == nil {
		return b.client
	}
	return b.client.For(visit.Auth)
}

func (b *Backend) products(d apiclient.Doer) api.ProductService {
	if b.mock != nil {
		return b.mock
	}
	return api.NewProducts(d)
}

// base carries what every handler group shares.
type base struct {
	renderer *render.Renderer
	backend  *Backend
	decoder  *schema.Decoder
}

func newBase(renderer *render.Renderer, backend *Backend) base {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.ZeroEmpty(true)
	return base{renderer: renderer, backend: backend, decoder: dec}
}

// decode parses the request form into dst.
func (b *base) decode(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return b.decoder.Decode(dst, r.PostForm)
}

// decodeMultipart parses a form that may carry a file upload into dst.
func (b *base) decodeMultipart(r *http.Request, dst any) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return b.decoder.Decode(dst, r.PostForm)
}

func (b *base) page(w http.ResponseWriter, r *http.Request, name string, data *render.PageData) {
	b.pageStatus(w, r, http.StatusOK, name, data)
}

func (b *base) pageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *render.PageData) {
	if f, ok := popFlash(r); ok {
		data.Flashes = append(data.Flashes, f)
	}
	b.renderer.PageStatus(w, r, status, name, data)
}

// errorView is the data of the error page.
type errorView struct {
	Status  int
	Message string
}

// fail answers a request whose backend call failed. A rejected admin token
// sends the visitor back to the login page.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		b.toLogin(w, r)
		return
	}
	status := http.StatusBadGateway
	if apiclient.IsNotFound(err) || errors.Is(err, api.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		slog.Error("backend request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	b.pageStatus(w, r, status, "error", &render.PageData{
		Title: http.StatusText(status),
		Data:  errorView{Status: status, Message: userMessage(err)},
	})
}

// notFound renders the 404 page.
func (b *base) notFound(w http.ResponseWriter, r *http.Request) {
	b.pageStatus(w, r, http.StatusNotFound, "error", &render.PageData{
		Title: "Not Found",
		Data:  errorView{Status: http.StatusNotFound, Message: "Page not found."},
	})
}

// toLogin redirects to the login page. GET requests carry their own path so
// the visitor can find their way back.
func (b *base) toLogin(w http.ResponseWriter, r *http.Request) {
	from := ""
	if r.Method == http.MethodGet {
		from = r.URL.RequestURI()
	}
	http.Redirect(w, r, auth.LoginURL(from), http.StatusSeeOther)
}

// done finishes a mutation. HTMX requests get the refreshed view rendered
// directly; everything else is redirected to target with a flash.
func (b *base) done(w http.ResponseWriter, r *http.Request, target, msg string, refresh func()) {
	if render.IsHTMX(r) && refresh != nil {
		refresh()
		return
	}
	setFlash(r, "success", msg)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failBack reports a failed mutation on the page it came from.
func (b *base) failBack(w http.ResponseWriter, r *http.Request, target string, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		b.toLogin(w, r)
		return
	}
	slog.Warn("mutation failed", "path", r.URL.Path, "error", err)
	setFlash(r, "error", userMessage(err))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// userMessage is the text shown for err.
func userMessage(err error) string {
	if v, ok := pages.AsValidation(err); ok {
		return v.Message
	}
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusNotFound {
			return "The requested item no longer exists."
		}
		return apiErr.Message
	case errors.Is(err, api.ErrNotFound):
		return "The requested item no longer exists."
	case errors.Is(err, apiclient.ErrTransport):
		return "The service is unreachable right now. Please try again."
	case errors.Is(err, cart.ErrUnavailable):
		return "Your cart is unavailable right now. Please try again."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Quantity must be at least 1."
	}
	return "Something went wrong. Please try again."
}

// formError re-renders a form after a failed submit: inline for
// validation problems, with the backend message otherwise.
func (b *base) formError(w http.ResponseWriter, r *http.Request, name string, data *render.PageData, err error) {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		b.toLogin(w, r)
		return
	}
	status := http.StatusUnprocessableEntity
	if !invalid(data, err) {
		slog.Error("form submit failed", "path", r.URL.Path, "error", err)
		data.Error, status = userMessage(err), http.StatusBadGateway
	}
	b.pageStatus(w, r, status, name, data)
}

// invalid fills the inline error of data from a validation failure and
// reports whether err was one.
func invalid(data *render.PageData, err error) bool {
	v, ok := pages.AsValidation(err)
	if !ok {
		return false
	}
	data.Error, data.Field = v.Message, v.Field
	return true
}

func setFlash(r *http.Request, typ, msg string) {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil || visit.Visitor == nil {
		return
	}
	if err := persist.SetJSON(r.Context(), visit.Visitor.Store, flashKey, render.Flash{Type: typ, Message: msg}); err != nil {
		slog.Warn("flash save failed", "error", err)
	}
}

// popFlash returns and clears the pending notification.
func popFlash(r *http.Request) (render.Flash, bool) {
	var f render.Flash
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil || visit.Visitor == nil {
		return f, false
	}
	ok, err := persist.GetJSON(r.Context(), visit.Visitor.Store, flashKey, &f)
	if err != nil || !ok {
		return f, false
	}
	if err := visit.Visitor.Store.Delete(r.Context(), flashKey); err != nil {
		slog.Warn("flash clear failed", "error", err)
	}
	return f, f.Message != ""
}
