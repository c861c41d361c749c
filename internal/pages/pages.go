// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pages holds the page controllers behind every storefront and
// back office screen. A controller is created per request: it loads its
// data through loader queries, applies the list state from the URL, and
// reconciles its local copy after a mutation, either by refetching the
// list or by patching the affected entries in place.
//
// Controllers know nothing about HTTP or templates. Handlers build them,
// call their operations and render the resulting views.
package pages

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"wellnesshub/internal/models"
)

// ValidationError is a form problem caught before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation returns the validation error wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Services the controllers depend on. They are satisfied by the api
// package types and by test fakes.

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (models.Category, error)
	Delete(ctx context.Context, id string) error
}

type ArticleService interface {
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id string) (models.Article, error)
	Create(ctx context.Context, in models.ArticleInput) (models.Article, error)
	Update(ctx context.Context, id string, patch models.ArticlePatch) error
	Delete(ctx context.Context, id string) error
}

type AdminService interface {
	List(ctx context.Context) ([]models.AdminUser, error)
	Get(ctx context.Context, id string) (models.AdminUser, error)
	Create(ctx context.Context, in models.AdminCreateInput) (models.AdminUser, error)
	Update(ctx context.Context, id string, in models.AdminUpdateInput) (models.AdminUser, error)
	Delete(ctx context.Context, id string) error
}

type InquiryService interface {
	List(ctx context.Context) ([]models.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.InquiryStatus) error
}

type StorefrontService interface {
	GetOrDefault(ctx context.Context) models.StorefrontConfig
	Current(ctx context.Context) (models.StorefrontConfig, error)
	Update(ctx context.Context, cfg models.StorefrontConfig) error
}

type LeadService interface {
	SubmitCart(ctx context.Context, lead models.CartLead) error
	SubmitTrainer(ctx context.Context, lead models.TrainerLead) error
	SubmitDietPlan(ctx context.Context, lead models.DietPlanLead) error
}

// required reports a validation error when v is blank.
func required(field, label, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field, "%s is required.", label)
	}
	return nil
}

// validEmail checks a required email address.
func validEmail(field, v string) error {
	if err := required(field, "Email", v); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(v)); err != nil {
		return invalid(field, "Email address is not valid.")
	}
	return nil
}

// absoluteURL reports whether v is an absolute http(s) URL.
func absoluteURL(v string) bool {
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
