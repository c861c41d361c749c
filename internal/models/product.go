// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the wire shapes exchanged with the wellness backend
// (DTOs), the view-models the pages render from, and the small enums and
// lookup tables shared across the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory is the numeric category enum used by the backend.
type ProductCategory int

const (
	CategoryProtein ProductCategory = iota
	CategoryVitamins
	CategoryApparel
	CategoryHealthyEats
	CategoryAccessories
)

// UnknownCategoryLabel is shown for category values outside the enum.
const UnknownCategoryLabel = "Uncategorized"

// ProductCategories lists every category in display order.
var ProductCategories = []ProductCategory{
	CategoryProtein,
	CategoryVitamins,
	CategoryApparel,
	CategoryHealthyEats,
	CategoryAccessories,
}

var categoryLabels = map[ProductCategory]string{
	CategoryProtein:     "Protein",
	CategoryVitamins:    "Vitamins",
	CategoryApparel:     "Apparel",
	CategoryHealthyEats: "Healthy Eats",
	CategoryAccessories: "Accessories",
}

// Valid reports whether c is one of the five known categories.
func (c ProductCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, or UnknownCategoryLabel for values the
// backend may send that this build does not know about.
func (c ProductCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return UnknownCategoryLabel
}

// Product is the product DTO returned by the backend.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Price       *float64        `json:"price,omitempty"`
	Rating      *float64        `json:"rating,omitempty"`
	DiscountPct *float64        `json:"discountPct,omitempty"`
	Tag         string          `json:"tag,omitempty"`
	IsNew       bool            `json:"isNew"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// ProductInput is the create/update payload. Server-generated fields (id,
// createdAt) are absent and optional numbers are omitted when zero.
type ProductInput struct {
	Name        string          `json:"name" schema:"name"`
	Category    ProductCategory `json:"category" schema:"category"`
	Description string          `json:"description,omitempty" schema:"description"`
	ImageURL    string          `json:"imageUrl" schema:"image_url"`
	IsNew       bool            `json:"isNew" schema:"is_new" default:"true"`
	Tag         string          `json:"tag,omitempty" schema:"tag"`
	Rating      float64         `json:"rating,omitempty" schema:"rating"`
	DiscountPct float64         `json:"discountPct,omitempty" schema:"discount_pct"`
	Price       float64         `json:"price,omitempty" schema:"price"`
}

// CreatedID is the body returned by create endpoints that answer with the
// new identifier only.
type CreatedID struct {
	ID string `json:"id"`
}

// ClampRating limits a rating to the 0..5 range.
func ClampRating(v float64) float64 {
	return clamp(v, 0, 5)
}

// ClampDiscount limits a discount percentage to the 0..100 range.
func ClampDiscount(v float64) float64 {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ProductView is the product view-model rendered by lists, cards and forms.
type ProductView struct {
	ID            string
	Name          string
	Category      ProductCategory
	CategoryLabel string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	Rating        float64
	DiscountPct   float64
	Tag           string
	IsNew         bool
	CreatedAt     time.Time
}

// NewProductView maps a DTO to its view-model: optional numbers default to
// zero, ranges are clamped and the creation time is parsed when present.
func NewProductView(p Product) ProductView {
	v := ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		CategoryLabel: p.Category.Label(),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Price:         decimal.Zero,
		Tag:           p.Tag,
		IsNew:         p.IsNew,
	}
	if p.Price != nil && *p.Price > 0 {
		v.Price = decimal.NewFromFloat(*p.Price).Round(2)
	}
	if p.Rating != nil {
		v.Rating = ClampRating(*p.Rating)
	}
	if p.DiscountPct != nil {
		v.DiscountPct = ClampDiscount(*p.DiscountPct)
	}
	if p.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			v.CreatedAt = t
		}
	}
	return v
}

// FinalPrice returns the price after the discount, rounded to cents.
func (v ProductView) FinalPrice() decimal.Decimal {
	if v.DiscountPct <= 0 {
		return v.Price
	}
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(v.DiscountPct)).Div(decimal.NewFromInt(100))
	return v.Price.Mul(factor).Round(2)
}

// HasDiscount reports whether a positive discount applies.
func (v ProductView) HasDiscount() bool {
	return v.DiscountPct > 0 && v.Price.IsPositive()
}

// Input converts the view-model back into an update payload, used to seed
// the edit form from a fetched entity.
func (v ProductView) Input() ProductInput {
	price, _ := v.Price.Float64()
	return ProductInput{
		Name:        v.Name,
		Category:    v.Category,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		IsNew:       v.IsNew,
		Tag:         v.Tag,
		Rating:      v.Rating,
		DiscountPct: v.DiscountPct,
		Price:       price,
	}
}
