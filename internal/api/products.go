// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/http"

	"wellnesshub/internal/apiclient"
	"wellnesshub/internal/models"
)

const (
	publicProductsPath = Base + "/public/wellness/products"
	adminProductsPath  = Base + "/admin/wellness/products"
)

// ProductService is the product catalogue as the pages see it. Products
// talks to the backend; MockProducts keeps a local demo catalogue.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, in models.ProductInput) (models.CreatedID, error)
	Update(ctx context.Context, id string, in models.ProductInput) error
	Delete(ctx context.Context, id string) error
}

// Products is the backend product resource.
type Products struct {
	api apiclient.Doer
}

// NewProducts creates the product resource on d.
func NewProducts(d apiclient.Doer) *Products {
	return &Products{api: d}
}

func (p *Products) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := p.api.Do(ctx, http.MethodGet, publicProductsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Products) Get(ctx context.Context, id string) (models.Product, error) {
	var out models.Product
	err := p.api.Do(ctx, http.MethodGet, idPath(publicProductsPath, id), nil, &out)
	return out, err
}

// Create returns the new id. The id is empty when the backend answers
// without a body.
func (p *Products) Create(ctx context.Context, in models.ProductInput) (models.CreatedID, error) {
	var out models.CreatedID
	err := p.api.Do(ctx, http.MethodPost, adminProductsPath, in, &out)
	return out, err
}

func (p *Products) Update(ctx context.Context, id string, in models.ProductInput) error {
	return p.api.Do(ctx, http.MethodPut, idPath(adminProductsPath, id), in, nil)
}

func (p *Products) Delete(ctx context.Context, id string) error {
	return p.api.Do(ctx, http.MethodDelete, idPath(adminProductsPath, id), nil, nil)
}
