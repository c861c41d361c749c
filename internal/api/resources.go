// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/models"
)

const (
	publicCategoriesPath = Base + "/public/wellness/categories"
	adminCategoriesPath  = Base + "/admin/wellness/categories"
	publicArticlesPath   = Base + "/public/wellness-hub/articles"
	adminArticlesPath    = Base + "/admin/wellness-hub/articles"
	adminsPath           = Base + "/admin/wellness/admins"
	inquiriesPath        = Base + "/admin/support/inquiries"
	publicStorefrontPath = Base + "/public/storefront"
	adminStorefrontPath  = Base + "/admin/storefront"
	loginPath            = Base + "/admin/wellness/login"
	profilePath          = Base + "/admin/wellness/profile"
	leadsPath            = Base + "/public/wellness/leads"
)

// Categories is the storefront category resource.
type Categories struct {
	api apiclient.Doer
}

func NewCategories(d apiclient.Doer) *Categories {
	return &Categories{api: d}
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.api.Do(ctx, http.MethodGet, publicCategoriesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Categories) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	var out models.Category
	err := c.api.Do(ctx, http.MethodPost, adminCategoriesPath, in, &out)
	return out, err
}

func (c *Categories) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, idPath(adminCategoriesPath, id), nil, nil)
}

// Articles is the wellness hub article resource.
type Articles struct {
	api apiclient.Doer
}

func NewArticles(d apiclient.Doer) *Articles {
	return &Articles{api: d}
}

func (a *Articles) List(ctx context.Context) ([]models.Article, error) {
	var out []models.Article
	if err := a.api.Do(ctx, http.MethodGet, publicArticlesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Articles) Get(ctx context.Context, id string) (models.Article, error) {
	var out models.Article
	err := a.api.Do(ctx, http.MethodGet, idPath(publicArticlesPath, id), nil, &out)
	return out, err
}

func (a *Articles) Create(ctx context.Context, in models.ArticleInput) (models.Article, error) {
	var out models.Article
	err := a.api.Do(ctx, http.MethodPost, adminArticlesPath, in, &out)
	return out, err
}

// Update sends only the fields set in patch.
func (a *Articles) Update(ctx context.Context, id string, patch models.ArticlePatch) error {
	return a.api.Do(ctx, http.MethodPut, idPath(adminArticlesPath, id), patch, nil)
}

func (a *Articles) Delete(ctx context.Context, id string) error {
	return a.api.Do(ctx, http.MethodDelete, idPath(adminArticlesPath, id), nil, nil)
}

// Admins is the back office account resource.
type Admins struct {
	api apiclient.Doer
}

func NewAdmins(d apiclient.Doer) *Admins {
	return &Admins{api: d}
}

func (a *Admins) List(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	if err := a.api.Do(ctx, http.MethodGet, adminsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admins) Get(ctx context.Context, id string) (models.AdminUser, error) {
	var out models.AdminUser
	err := a.api.Do(ctx, http.MethodGet, idPath(adminsPath, id), nil, &out)
	return out, err
}

func (a *Admins) Create(ctx context.Context, in models.AdminCreateInput) (models.AdminUser, error) {
	var out models.AdminUser
	err := a.api.Do(ctx, http.MethodPost, adminsPath, in, &out)
	return out, err
}

func (a *Admins) Update(ctx context.Context, id string, in models.AdminUpdateInput) (models.AdminUser, error) {
	var out models.AdminUser
	err := a.api.Do(ctx, http.MethodPut, idPath(adminsPath, id), in, &out)
	return out, err
}

func (a *Admins) Delete(ctx context.Context, id string) error {
	return a.api.Do(ctx, http.MethodDelete, idPath(adminsPath, id), nil, nil)
}

// Inquiries is the support inbox resource.
type Inquiries struct {
	api apiclient.Doer
}

func NewInquiries(d apiclient.Doer) *Inquiries {
	return &Inquiries{api: d}
}

func (i *Inquiries) List(ctx context.Context) ([]models.Inquiry, error) {
	var out []models.Inquiry
	if err := i.api.Do(ctx, http.MethodGet, inquiriesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves an inquiry to status. Unknown statuses are rejected
// without a request.
func (i *Inquiries) UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	if !status.Valid() {
		return fmt.Errorf("api: unknown inquiry status %q", status)
	}
	body := struct {
		Status models.InquiryStatus `json:"status"`
	}{status}
	return i.api.Do(ctx, http.MethodPut, idPath(inquiriesPath, id)+"/status", body, nil)
}

// Storefront is the home page configuration singleton.
type Storefront struct {
	api apiclient.Doer
}

func NewStorefront(d apiclient.Doer) *Storefront {
	return &Storefront{api: d}
}

func (s *Storefront) Get(ctx context.Context) (models.StorefrontConfig, error) {
	var out models.StorefrontConfig
	err := s.api.Do(ctx, http.MethodGet, publicStorefrontPath, nil, &out)
	return out, err
}

// Current returns the stored configuration, or the default one when the
// backend has none yet. Any other failure is returned so that callers about
// to write the configuration back never save the defaults over it.
func (s *Storefront) Current(ctx context.Context) (models.StorefrontConfig, error) {
	cfg, err := s.Get(ctx)
	if apiclient.IsNotFound(err) {
		return models.DefaultStorefront(), nil
	}
	if err != nil {
		return models.StorefrontConfig{}, err
	}
	if cfg.Hero.Title == "" && len(cfg.Sections) == 0 {
		return models.DefaultStorefront(), nil
	}
	return cfg, nil
}

// GetOrDefault returns the stored configuration, or the default one when
// the backend fails or has nothing usable.
func (s *Storefront) GetOrDefault(ctx context.Context) models.StorefrontConfig {
	cfg, err := s.Current(ctx)
	if err != nil {
		slog.Warn("storefront config unavailable, using default", "error", err)
		return models.DefaultStorefront()
	}
	return cfg
}

func (s *Storefront) Update(ctx context.Context, cfg models.StorefrontConfig) error {
	return s.api.Do(ctx, http.MethodPut, adminStorefrontPath, cfg, nil)
}

// Auth is the login endpoint.
type Auth struct {
	api apiclient.Doer
}

func NewAuth(d apiclient.Doer) *Auth {
	return &Auth{api: d}
}

func (a *Auth) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}
	var out models.LoginResponse
	err := a.api.Do(ctx, http.MethodPost, loginPath, body, &out)
	return out, err
}

// Profile is the signed-in admin's own profile.
type Profile struct {
	api apiclient.Doer
}

func NewProfile(d apiclient.Doer) *Profile {
	return &Profile{api: d}
}

func (p *Profile) Get(ctx context.Context) (models.Profile, error) {
	var out models.Profile
	err := p.api.Do(ctx, http.MethodGet, profilePath, nil, &out)
	return out, err
}

func (p *Profile) Update(ctx context.Context, in models.ProfileInput) (models.Profile, error) {
	var out models.Profile
	err := p.api.Do(ctx, http.MethodPut, profilePath, in, &out)
	return out, err
}

func (p *Profile) ChangePassword(ctx context.Context, in models.PasswordChange) error {
	return p.api.Do(ctx, http.MethodPut, profilePath+"/password", in, nil)
}

// Leads submits the public lead forms.
type Leads struct {
	api apiclient.Doer
}

func NewLeads(d apiclient.Doer) *Leads {
	return &Leads{api: d}
}

func (l *Leads) SubmitCart(ctx context.Context, lead models.CartLead) error {
	return l.api.Do(ctx, http.MethodPost, leadsPath+"/cart", lead, nil)
}

func (l *Leads) SubmitTrainer(ctx context.Context, lead models.TrainerLead) error {
	return l.api.Do(ctx, http.MethodPost, leadsPath+"/trainer", lead, nil)
}

func (l *Leads) SubmitDietPlan(ctx context.Context, lead models.DietPlanLead) error {
	return l.api.Do(ctx, http.MethodPost, leadsPath+"/diet-plan", lead, nil)
}
