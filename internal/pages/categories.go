// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strings"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
	"wellnesshub/internal/slug"
)

// CategoryBoard is the back office category list with its create form.
type CategoryBoard struct {
	svc   CategoryService
	query *loader.Query[[]models.Category]
}

func NewCategoryBoard(svc CategoryService) *CategoryBoard {
	return &CategoryBoard{
		svc:   svc,
		query: loader.NewList(svc.List, loader.Identity[models.Category]),
	}
}

func (b *CategoryBoard) Load(ctx context.Context) error {
	return b.query.Load(ctx).Err
}

// Filtered returns the categories whose name or slug contains q, sorted
// by name.
func (b *CategoryBoard) Filtered(q string) listing.Page[models.Category] {
	list := b.query.Snapshot().Data
	match := func(c models.Category) bool { return listing.Contains(q, c.Name, c.Slug) }
	less := func(a, b models.Category) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	return listing.Apply(list, match, less, listing.Asc, 1, max(len(list), 1))
}

// NormalizeCategory trims the input and derives the slug from the name
// when none was given.
func NormalizeCategory(in models.CategoryInput) models.CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Slug = slug.Generate(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}
	return in
}

// ValidateCategory checks a normalized category payload.
func ValidateCategory(in models.CategoryInput) error {
	if err := required("name", "Name", in.Name); err != nil {
		return err
	}
	return required("slug", "Slug", in.Slug)
}

// Create normalizes, validates and creates a category, then refetches.
func (b *CategoryBoard) Create(ctx context.Context, in models.CategoryInput) (models.Category, error) {
	in = NormalizeCategory(in)
	if err := ValidateCategory(in); err != nil {
		return models.Category{}, err
	}
	c, err := b.svc.Create(ctx, in)
	if err != nil {
		return models.Category{}, fmt.Errorf("create category: %w", err)
	}
	b.query.Invalidate(ctx)
	return c, nil
}

// Delete removes a category and refetches.
func (b *CategoryBoard) Delete(ctx context.Context, id string) error {
	if err := b.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	b.query.Invalidate(ctx)
	return nil
}

// Snapshot exposes the list state for rendering.
func (b *CategoryBoard) Snapshot() loader.Snapshot[[]models.Category] {
	return b.query.Snapshot()
}
