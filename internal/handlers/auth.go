// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"wellnesshub/internal/api"
	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/auth"
	"wellnesshub/internal/middleware"
	"wellnesshub/internal/models"
	"wellnesshub/internal/pages"
	"wellnesshub/internal/render"
)

// Auth groups the sign-in handlers.
type Auth struct {
	base
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, backend *Backend) *Auth {
	return &Auth{base: newBase(renderer, backend)}
}

type loginForm struct {
	Username string
	From     string
}

func (a *Auth) renderLogin(w http.ResponseWriter, r *http.Request, status int, form loginForm, msg string) {
	a.pageStatus(w, r, status, "login", &render.PageData{
		Title: "Sign In",
		Error: msg,
		Data:  form,
	})
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in, go straight to the dashboard.
	if visit := middleware.VisitFromCtx(r.Context()); visit != nil && visit.Auth.Authenticated() {
		http.Redirect(w, r, pages.DashboardPath, http.StatusSeeOther)
		return
	}
	a.renderLogin(w, r, http.StatusOK, loginForm{From: r.URL.Query().Get("from")}, "")
}

// LoginSubmit exchanges the credentials for a token and stores the session.
// The from value is carried through the form but the dashboard is always
// the destination.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	visit := middleware.VisitFromCtx(r.Context())
	if visit == nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	form := loginForm{
		Username: strings.TrimSpace(r.FormValue("username")),
		From:     r.FormValue("from"),
	}
	password := r.FormValue("password")
	if form.Username == "" || password == "" {
		a.renderLogin(w, r, http.StatusUnprocessableEntity, form, "Username and password are required.")
		return
	}

	res, err := api.NewAuth(a.backend.client).Login(r.Context(), form.Username, password)
	if err != nil {
		status := apiclient.StatusOf(err)
		switch {
		case errors.Is(err, apiclient.ErrUnauthorized), status == http.StatusBadRequest:
			a.renderLogin(w, r, http.StatusUnauthorized, form, "Invalid username or password.")
		default:
			slog.Error("login failed", "username", form.Username, "error", err)
			a.renderLogin(w, r, http.StatusBadGateway, form, userMessage(err))
		}
		return
	}

	user := models.AuthUser{Username: res.Username, Role: res.Role}
	if user.Username == "" {
		user.Username = form.Username
	}
	if err := visit.Auth.Login(r.Context(), res.Token, user); err != nil {
		slog.Error("session save failed", "username", form.Username, "error", err)
		a.renderLogin(w, r, http.StatusInternalServerError, form, "Could not start your session. Please try again.")
		return
	}
	slog.Info("admin signed in", "username", user.Username, "role", user.Role)
	http.Redirect(w, r, pages.DashboardPath, http.StatusSeeOther)
}

// Logout clears the session and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if visit := middleware.VisitFromCtx(r.Context()); visit != nil {
		if err := visit.Auth.Logout(r.Context()); err != nil {
			slog.Error("logout failed", "error", err)
		}
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}
