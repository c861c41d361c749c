// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"wellnesshub/internal/models"
	"wellnesshub/internal/persist"
)

// MockProductsKey is the persistence key of the demo catalogue.
const MockProductsKey = "wc_products_v1"

// MockProducts is a ProductService over a persist.Store, used for demos
// and for running the back office without a backend. The first List on an
// empty store seeds the six demo products.
type MockProducts struct {
	store persist.Store
	now   func() time.Time
	delay time.Duration

	mu sync.Mutex
}

// NewMockProducts creates a demo catalogue on store. delay simulates
// network latency and may be zero.
func NewMockProducts(store persist.Store, delay time.Duration) *MockProducts {
	return &MockProducts{store: store, now: time.Now, delay: delay}
}

func (m *MockProducts) List(ctx context.Context) ([]models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx)
}

func (m *MockProducts) Get(ctx context.Context, id string) (models.Product, error) {
	if err := m.wait(ctx); err != nil {
		return models.Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
}

// Create prepends the product with a fresh id, the current time and the
// new flag set.
func (m *MockProducts) Create(ctx context.Context, in models.ProductInput) (models.CreatedID, error) {
	if err := m.wait(ctx); err != nil {
		return models.CreatedID{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return models.CreatedID{}, err
	}
	p := fromInput(uuid.NewString(), in)
	p.CreatedAt = m.now().UTC().Format(time.RFC3339)
	p.IsNew = true

	list = append([]models.Product{p}, list...)
	if err := m.save(ctx, list); err != nil {
		return models.CreatedID{}, err
	}
	return models.CreatedID{ID: p.ID}, nil
}

// Update replaces the editable fields of an existing product, keeping its
// id and creation time.
func (m *MockProducts) Update(ctx context.Context, id string, in models.ProductInput) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return err
	}
	for i, p := range list {
		if p.ID != id {
			continue
		}
		updated := fromInput(id, in)
		updated.CreatedAt = p.CreatedAt
		list[i] = updated
		return m.save(ctx, list)
	}
	return fmt.Errorf("product %q: %w", id, ErrNotFound)
}

func (m *MockProducts) Delete(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.load(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return m.save(ctx, kept)
}

// Reset drops the stored catalogue so the next List seeds it again.
func (m *MockProducts) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Delete(ctx, MockProductsKey)
}

func (m *MockProducts) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load reads the catalogue, seeding it when absent. A corrupt document
// reads as an empty catalogue.
func (m *MockProducts) load(ctx context.Context) ([]models.Product, error) {
	var list []models.Product
	ok, err := persist.GetJSON(ctx, m.store, MockProductsKey, &list)
	if !ok && err == nil {
		list = DemoProducts(m.now())
		if err := m.save(ctx, list); err != nil {
			return nil, err
		}
		return list, nil
	}
	if err != nil {
		slog.Warn("mock products unreadable, starting empty", "error", err)
		return []models.Product{}, nil
	}
	if list == nil {
		list = []models.Product{}
	}
	return list, nil
}

func (m *MockProducts) save(ctx context.Context, list []models.Product) error {
	return persist.SetJSON(ctx, m.store, MockProductsKey, list)
}

func fromInput(id string, in models.ProductInput) models.Product {
	p := models.Product{
		ID:          id,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Tag:         in.Tag,
		IsNew:       in.IsNew,
	}
	if in.Price != 0 {
		p.Price = &in.Price
	}
	if in.Rating != 0 {
		p.Rating = &in.Rating
	}
	if in.DiscountPct != 0 {
		p.DiscountPct = &in.DiscountPct
	}
	return p
}

// demoImage is shared by every demo product.
const demoImage = "https://www.sporter.com/media/catalog/product/cache/ab46d3f8f49d440eb256434d4997862d/o/n/on-gs-whey-5lb-double-rich-chocolate_2.jpg"

// DemoProducts returns the seed catalogue, newest first, with creation
// times one day apart ending at now.
func DemoProducts(now time.Time) []models.Product {
	n := func(v float64) *float64 { return &v }
	day := 24 * time.Hour
	at := func(daysAgo int) string {
		return now.Add(-time.Duration(daysAgo) * day).UTC().Format(time.RFC3339)
	}
	return []models.Product{
		{
			ID: "1", Name: "Sporter Signature Series - Whey Smart Blend - Chocolate - 4 lbs",
			Category: models.CategoryProtein, IsNew: true, ImageURL: demoImage, CreatedAt: at(0),
			Price: n(49.99), Rating: n(4.5), DiscountPct: n(17), Tag: "Bestseller",
			Description: "High quality whey protein blend for muscle recovery and growth.",
		},
		{
			ID: "2", Name: "Premium Whey Isolate",
			Category: models.CategoryProtein, ImageURL: demoImage, CreatedAt: at(1),
			Price: n(59.99), Rating: n(4.8), Tag: "Product",
			Description: "Pure whey isolate with zero sugar and fat.",
		},
		{
			ID: "3", Name: "Active Wear Hoodie",
			Category: models.CategoryApparel, IsNew: true, ImageURL: demoImage, CreatedAt: at(2),
			Price: n(34.99), Rating: n(4.2), Tag: "Apparel",
			Description: "Comfortable and stylish hoodie for your workouts.",
		},
		{
			ID: "4", Name: "BCAA Citrus Blast",
			Category: models.CategoryVitamins, ImageURL: demoImage, CreatedAt: at(3),
			Price: n(24.99), Rating: n(4.6), DiscountPct: n(10), Tag: "Product",
			Description: "Essential amino acids to fuel your training.",
		},
		{
			ID: "5", Name: "Keto Diet Guide",
			Category: models.CategoryHealthyEats, ImageURL: demoImage, CreatedAt: at(4),
			Price: n(14.99), Rating: n(4.0), Tag: "Digital",
			Description: "Comprehensive guide to the ketogenic diet.",
		},
		{
			ID: "6", Name: "Glutamine+",
			Category: models.CategoryVitamins, ImageURL: demoImage, CreatedAt: at(5),
			Price: n(19.99), Rating: n(4.7), Tag: "Product",
			Description: "Supports immune system and gut health.",
		},
	}
}
