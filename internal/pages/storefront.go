// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wellnesshub/internal/models"
)

// ErrUnknownSection is returned for section ids the config does not have.
var ErrUnknownSection = errors.New("unknown storefront section")

// StorefrontEditor edits the home page configuration. Edits apply to the
// loaded copy and reach the backend on Save.
type StorefrontEditor struct {
	svc    StorefrontService
	Config models.StorefrontConfig
}

func NewStorefrontEditor(svc StorefrontService) *StorefrontEditor {
	return &StorefrontEditor{svc: svc, Config: models.DefaultStorefront()}
}

// Load reads the stored configuration, falling back to the default one.
// Sections are normalized to consecutive orders.
func (e *StorefrontEditor) Load(ctx context.Context) {
	e.Config = e.svc.GetOrDefault(ctx)
	e.renumber(e.Config.SortedSections())
}

// Open reads the stored configuration ahead of an edit. Unlike Load it
// fails when the backend cannot be read, leaving Config untouched.
func (e *StorefrontEditor) Open(ctx context.Context) error {
	cfg, err := e.svc.Current(ctx)
	if err != nil {
		return fmt.Errorf("load storefront: %w", err)
	}
	e.Config = cfg
	e.renumber(e.Config.SortedSections())
	return nil
}

// SetHero replaces the hero banner.
func (e *StorefrontEditor) SetHero(h models.Hero) error {
	h.Title = strings.TrimSpace(h.Title)
	if err := required("title", "Hero title", h.Title); err != nil {
		return err
	}
	if h.ImageURL != "" && !absoluteURL(h.ImageURL) {
		return invalid("image_url", "Hero image must be an absolute http(s) address.")
	}
	e.Config.Hero = h
	return nil
}

// SetFeatures replaces the feature strip. Items without a title are
// dropped.
func (e *StorefrontEditor) SetFeatures(enabled bool, items []models.Feature) {
	kept := make([]models.Feature, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Title) != "" {
			kept = append(kept, it)
		}
	}
	e.Config.Features = models.Features{Enabled: enabled, Items: kept}
}

// ToggleSection flips the enabled flag of the section with id.
func (e *StorefrontEditor) ToggleSection(id string) error {
	for i := range e.Config.Sections {
		if e.Config.Sections[i].ID == id {
			e.Config.Sections[i].Enabled = !e.Config.Sections[i].Enabled
			return nil
		}
	}
	return fmt.Errorf("toggle %q: %w", id, ErrUnknownSection)
}

// MoveSection moves the section with id by delta positions (negative is up)
// and renumbers every section from 1. Moves past either end stop there.
func (e *StorefrontEditor) MoveSection(id string, delta int) error {
	sorted := e.Config.SortedSections()
	from := -1
	for i, s := range sorted {
		if s.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("move %q: %w", id, ErrUnknownSection)
	}
	to := min(max(from+delta, 0), len(sorted)-1)
	moved := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]models.Section{moved}, sorted[to:]...)...)
	e.renumber(sorted)
	return nil
}

func (e *StorefrontEditor) renumber(sorted []models.Section) {
	for i := range sorted {
		sorted[i].Order = i + 1
	}
	e.Config.Sections = sorted
}

// Save writes the configuration to the backend.
func (e *StorefrontEditor) Save(ctx context.Context) error {
	if err := e.svc.Update(ctx, e.Config); err != nil {
		return fmt.Errorf("save storefront: %w", err)
	}
	return nil
}
