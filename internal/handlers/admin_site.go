// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"wellnesshub/internal/api"
	"wellnesshub/internal/models"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/render"
)

// --- Support inbox ---

type supportPage struct {
	pages.InboxView
	Statuses []models.InquiryStatus
}

func (a *Admin) renderInbox(w http.ResponseWriter, r *http.Request, inbox *pages.Inbox, status models.InquiryStatus) {
	a.page(w, r, "admin_support", &render.PageData{
		Title:   "Support",
		Section: "support",
		Data: supportPage{
			InboxView: inbox.View(status, strings.TrimSpace(r.URL.Query().Get("q"))),
			Statuses:  models.InquiryStatuses,
		},
	})
}

// parseStatus returns the status filter named s, or "" for all.
func parseStatus(s string) models.InquiryStatus {
	if st := models.InquiryStatus(s); st.Valid() {
		return st
	}
	return ""
}

// Support renders the inquiry list with the inquiry named by ?id open.
func (a *Admin) Support(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inbox := pages.NewInbox(api.NewInquiries(a.backend.admin(r)))
	if err := inbox.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	if id := q.Get("id"); id != "" && !inbox.Select(id) {
		a.notFound(w, r)
		return
	}
	a.renderInbox(w, r, inbox, parseStatus(q.Get("status")))
}

// SupportStatus moves an inquiry to a new status. The list entry and the
// open detail are updated in place.
func (a *Admin) SupportStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	status := models.InquiryStatus(r.FormValue("status"))
	target := pages.SupportPath + "?id=" + url.QueryEscape(id)

	inbox := pages.NewInbox(api.NewInquiries(a.backend.admin(r)))
	if err := inbox.Load(r.Context()); a.expired(w, r, err) {
		return
	}
	inbox.Select(id)
	if err := inbox.ChangeStatus(r.Context(), id, status); err != nil {
		a.failBack(w, r, target, err)
		return
	}
	a.done(w, r, target, "Inquiry marked "+string(status)+".", func() {
		a.renderInbox(w, r, inbox, parseStatus(r.URL.Query().Get("status")))
	})
}

// --- Storefront editor ---

type storefrontPage struct {
	Config   models.StorefrontConfig
	Features []models.Feature
	Sections []models.Section
}

func storefrontData(cfg models.StorefrontConfig) *render.PageData {
	// One blank slot lets a feature be added without scripting.
	items := append(append([]models.Feature(nil), cfg.Features.Items...), models.Feature{})
	return &render.PageData{
		Title:   "Storefront",
		Section: "storefront",
		Data:    storefrontPage{Config: cfg, Features: items, Sections: cfg.SortedSections()},
	}
}

// Storefront renders the home page configuration editor.
func (a *Admin) Storefront(w http.ResponseWriter, r *http.Request) {
	editor := pages.NewStorefrontEditor(api.NewStorefront(a.backend.admin(r)))
	editor.Load(r.Context())
	a.page(w, r, "admin_storefront", storefrontData(editor.Config))
}

// editStorefront loads the configuration, applies edit and saves it.
func (a *Admin) editStorefront(w http.ResponseWriter, r *http.Request, msg string, edit func(*pages.StorefrontEditor) error) {
	editor := pages.NewStorefrontEditor(api.NewStorefront(a.backend.admin(r)))
	if err := editor.Open(r.Context()); err != nil {
		a.failBack(w, r, pages.StorefrontPath, err)
		return
	}
	if err := edit(editor); err != nil {
		if _, ok := pages.AsValidation(err); ok {
			a.formError(w, r, "admin_storefront", storefrontData(editor.Config), err)
			return
		}
		a.failBack(w, r, pages.StorefrontPath, err)
		return
	}
	if err := editor.Save(r.Context()); err != nil {
		a.failBack(w, r, pages.StorefrontPath, err)
		return
	}
	a.done(w, r, pages.StorefrontPath, msg, func() {
		a.page(w, r, "admin_storefront", storefrontData(editor.Config))
	})
}

// StorefrontHero replaces the hero banner.
func (a *Admin) StorefrontHero(w http.ResponseWriter, r *http.Request) {
	var hero models.Hero
	if err := a.decode(r, &hero); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	a.editStorefront(w, r, "Hero saved.", func(e *pages.StorefrontEditor) error {
		return e.SetHero(hero)
	})
}

type featuresForm struct {
	Enabled bool             `schema:"enabled"`
	Items   []models.Feature `schema:"items"`
}

// StorefrontFeatures replaces the feature strip.
func (a *Admin) StorefrontFeatures(w http.ResponseWriter, r *http.Request) {
	var form featuresForm
	if err := a.decode(r, &form); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	a.editStorefront(w, r, "Features saved.", func(e *pages.StorefrontEditor) error {
		e.SetFeatures(form.Enabled, form.Items)
		return nil
	})
}

// StorefrontMove moves a section up (delta -1) or down (delta 1).
func (a *Admin) StorefrontMove(w http.ResponseWriter, r *http.Request) {
	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	a.editStorefront(w, r, "Section order saved.", func(e *pages.StorefrontEditor) error {
		return e.MoveSection(id, delta)
	})
}

// StorefrontToggle shows or hides a section.
func (a *Admin) StorefrontToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.editStorefront(w, r, "Section updated.", func(e *pages.StorefrontEditor) error {
		return e.ToggleSection(id)
	})
}

// --- Profile ---

type profilePage struct {
	Profile models.Profile
}

func profileData(p models.Profile) *render.PageData {
	return &render.PageData{Title: "Profile", Section: "profile", Data: profilePage{Profile: p}}
}

// Profile renders the signed-in admin's profile and password forms.
func (a *Admin) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := api.NewProfile(a.backend.admin(r)).Get(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.page(w, r, "admin_profile", profileData(p))
}

// ProfileUpdate saves the full name and avatar.
func (a *Admin) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.ProfileInput
	if err := a.decode(r, &in); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	svc := api.NewProfile(a.backend.admin(r))
	p, err := pages.UpdateProfile(r.Context(), svc, in)
	if err != nil {
		current := models.Profile{FullName: in.FullName, AvatarURL: in.AvatarURL}
		if stored, gerr := svc.Get(r.Context()); gerr == nil {
			current.Email = stored.Email
		}
		a.formError(w, r, "admin_profile", profileData(current), err)
		return
	}
	a.done(w, r, pages.ProfilePath, "Profile saved.", func() {
		a.page(w, r, "admin_profile", profileData(p))
	})
}

type passwordForm struct {
	models.PasswordChange
	Confirm string `schema:"confirm_password"`
}

// ProfilePassword changes the signed-in admin's password.
func (a *Admin) ProfilePassword(w http.ResponseWriter, r *http.Request) {
	var form passwordForm
	if err := a.decode(r, &form); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	svc := api.NewProfile(a.backend.admin(r))
	if err := pages.ChangePassword(r.Context(), svc, form.PasswordChange, form.Confirm); err != nil {
		p, gerr := svc.Get(r.Context())
		if gerr != nil && a.expired(w, r, gerr) {
			return
		}
		a.formError(w, r, "admin_profile", profileData(p), err)
		return
	}
	a.done(w, r, pages.ProfilePath, "Password changed.", nil)
}
