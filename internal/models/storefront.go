// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "sort"

// SectionType identifies the block a home page section renders.
type SectionType string

const (
	SectionProducts SectionType = "products"
	SectionCombos   SectionType = "combos"
	SectionBrands   SectionType = "brands"
	SectionCustom   SectionType = "custom"
)

// Hero is the top banner of the storefront.
type Hero struct {
	Title            string `json:"title" schema:"title"`
	Subtitle         string `json:"subtitle" schema:"subtitle"`
	ImageURL         string `json:"imageUrl" schema:"image_url"`
	CTAText          string `json:"ctaText" schema:"cta_text"`
	CTALink          string `json:"ctaLink" schema:"cta_link"`
	SecondaryCTAText string `json:"secondaryCtaText,omitempty" schema:"secondary_cta_text"`
	SecondaryCTALink string `json:"secondaryCtaLink,omitempty" schema:"secondary_cta_link"`
}

// Feature is one selling point under the hero.
type Feature struct {
	Icon        string `json:"icon" schema:"icon"`
	Title       string `json:"title" schema:"title"`
	Description string `json:"description" schema:"description"`
}

// Features is the feature strip.
type Features struct {
	Enabled bool      `json:"enabled"`
	Items   []Feature `json:"items"`
}

// Section is one orderable home page block.
type Section struct {
	ID      string      `json:"id"`
	Type    SectionType `json:"type"`
	Title   string      `json:"title,omitempty"`
	Enabled bool        `json:"enabled"`
	Order   int         `json:"order"`
}

// StorefrontConfig is the singleton home page configuration.
type StorefrontConfig struct {
	Hero     Hero      `json:"hero"`
	Features Features  `json:"features"`
	Sections []Section `json:"sections"`
}

// DefaultStorefront returns the stock configuration used when the backend
// has none or cannot be reached. Each call returns a fresh copy.
func DefaultStorefront() StorefrontConfig {
	return StorefrontConfig{
		Hero: Hero{
			Title:            "Elevate Your Wellness Journey",
			Subtitle:         "Discover premium supplements, sustainable activewear, and healthy eats designed to fuel your best self.",
			ImageURL:         "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?q=80&w=1920&auto=format&fit=crop",
			CTAText:          "Shop Now",
			CTALink:          "/categories",
			SecondaryCTAText: "Learn More",
			SecondaryCTALink: "/wellness-hub",
		},
		Features: Features{
			Enabled: true,
			Items: []Feature{
				{Icon: "🌿", Title: "100% Organic", Description: "Sourced from the finest natural ingredients for pure wellness."},
				{Icon: "⚡", Title: "Fast Delivery", Description: "Get your wellness essentials delivered to your doorstep in 24h."},
				{Icon: "🛡️", Title: "Quality Guarantee", Description: "Lab-tested products ensuring safety and efficacy every time."},
			},
		},
		Sections: []Section{
			{ID: "products", Type: SectionProducts, Title: "Explore Our Collection", Enabled: true, Order: 1},
			{ID: "combos", Type: SectionCombos, Title: "Featured Bundles", Enabled: true, Order: 2},
			{ID: "brands", Type: SectionBrands, Title: "Trusted Brands", Enabled: true, Order: 3},
		},
	}
}

// SortedSections returns a copy of the sections ordered by Order. Ties keep
// their stored order.
func (c StorefrontConfig) SortedSections() []Section {
	out := append([]Section(nil), c.Sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// EnabledSections returns the enabled sections in display order.
func (c StorefrontConfig) EnabledSections() []Section {
	var out []Section
	for _, s := range c.SortedSections() {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// SectionEnabled reports whether the first section of type t is enabled.
func (c StorefrontConfig) SectionEnabled(t SectionType) bool {
	for _, s := range c.Sections {
		if s.Type == t {
			return s.Enabled
		}
	}
	return false
}
