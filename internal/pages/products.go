// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/creasty/defaults"

	"wellnesshub/internal/api"
	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
)

// ProductPageSize is the number of rows per product list page.
const ProductPageSize = 10

// AllCategories is the category filter value that keeps every product.
const AllCategories = "all"

// Product list sort columns.
const (
	SortName     = "name"
	SortCategory = "category"
	SortCreated  = "created"
)

// DefaultProductState shows the newest products first.
var DefaultProductState = listing.State{
	Category: AllCategories,
	Sort:     listing.Sort{Column: SortCreated, Dir: listing.Desc},
	Page:     1,
}

var productLess = map[string]func(a, b models.ProductView) bool{
	SortName: func(a, b models.ProductView) bool {
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	},
	SortCategory: func(a, b models.ProductView) bool {
		return a.CategoryLabel < b.CategoryLabel
	},
	SortCreated: func(a, b models.ProductView) bool {
		return a.CreatedAt.Before(b.CreatedAt)
	},
}

// ProductList is the back office product table.
type ProductList struct {
	svc   api.ProductService
	query *loader.Query[[]models.ProductView]
}

// ProductListView is what the product table renders.
type ProductListView struct {
	State   listing.State
	Page    listing.Page[models.ProductView]
	Loading bool
	Err     error
}

func NewProductList(svc api.ProductService) *ProductList {
	return &ProductList{
		svc:   svc,
		query: loader.NewList(svc.List, models.NewProductView),
	}
}

// Load fetches the products.
func (l *ProductList) Load(ctx context.Context) error {
	return l.query.Load(ctx).Err
}

// View applies search, category filter, sort and pagination to the loaded
// list. The page number in the returned state is the clamped one.
func (l *ProductList) View(st listing.State) ProductListView {
	snap := l.query.Snapshot()
	less, ok := productLess[st.Sort.Column]
	if !ok {
		st.Sort = DefaultProductState.Sort
		less = productLess[st.Sort.Column]
	}
	match := func(p models.ProductView) bool {
		if st.Category != "" && st.Category != AllCategories && st.Category != strconv.Itoa(int(p.Category)) {
			return false
		}
		return listing.Contains(st.Query, p.Name, p.CategoryLabel)
	}
	page := listing.Apply(snap.Data, match, less, st.Sort.Dir, st.Page, ProductPageSize)
	st.Page = page.Page
	return ProductListView{State: st, Page: page, Loading: snap.IsLoading, Err: snap.Err}
}

// Delete removes a product and refetches the list.
func (l *ProductList) Delete(ctx context.Context, id string) error {
	if err := l.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if snap := l.query.Invalidate(ctx); snap.Err != nil {
		return fmt.Errorf("reload products: %w", snap.Err)
	}
	return nil
}

// ProductForm backs the product create and edit screens.
type ProductForm struct {
	svc   api.ProductService
	ID    string
	Input models.ProductInput
}

// NewProductForm returns a form seeded with the create defaults.
func NewProductForm(svc api.ProductService) *ProductForm {
	f := &ProductForm{svc: svc}
	// Only fails for non-pointer targets.
	_ = defaults.Set(&f.Input)
	return f
}

// Seed fills the form from the product with id.
func (f *ProductForm) Seed(ctx context.Context, id string) error {
	p, err := f.svc.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load product %s: %w", id, err)
	}
	f.ID = p.ID
	f.Input = models.NewProductView(p).Input()
	return nil
}

// ValidateProduct checks a product payload.
func ValidateProduct(in models.ProductInput) error {
	if err := required("name", "Name", in.Name); err != nil {
		return err
	}
	if !in.Category.Valid() {
		return invalid("category", "Choose a category.")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return invalid("image_url", "Image URL is required.")
	}
	if !absoluteURL(in.ImageURL) {
		return invalid("image_url", "Image URL must be an absolute http(s) address.")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return invalid("rating", "Rating must be between 0 and 5.")
	}
	if in.DiscountPct < 0 || in.DiscountPct > 100 {
		return invalid("discount_pct", "Discount must be between 0 and 100.")
	}
	if in.Price < 0 {
		return invalid("price", "Price cannot be negative.")
	}
	return nil
}

// Create validates and creates the product. It returns where to go next:
// the edit screen of the new product when the backend returned its id,
// the product list otherwise.
func (f *ProductForm) Create(ctx context.Context, in models.ProductInput) (string, error) {
	f.Input = in
	if err := ValidateProduct(in); err != nil {
		return "", err
	}
	created, err := f.svc.Create(ctx, in)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	if created.ID != "" {
		f.ID = created.ID
		return ProductEditPath(created.ID), nil
	}
	return ProductsPath, nil
}

// Update validates and saves the product, returning the product list path.
func (f *ProductForm) Update(ctx context.Context, id string, in models.ProductInput) (string, error) {
	f.ID, f.Input = id, in
	if err := ValidateProduct(in); err != nil {
		return "", err
	}
	if err := f.svc.Update(ctx, id, in); err != nil {
		return "", fmt.Errorf("update product %s: %w", id, err)
	}
	return ProductsPath, nil
}
