// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import "net/url"

// Navigation targets returned by controllers after a successful action.
const (
	DashboardPath  = "/admin"
	ProductsPath   = "/admin/products"
	CategoriesPath = "/admin/categories"
	ArticlesPath   = "/admin/articles"
	AdminsPath     = "/admin/admins"
	SupportPath    = "/admin/support"
	StorefrontPath = "/admin/storefront"
	ProfilePath    = "/admin/profile"
	HubPath        = "/wellness-hub"
)

// ProductEditPath is the edit screen of the product with id.
func ProductEditPath(id string) string {
	return ProductsPath + "/" + url.PathEscape(id) + "/edit"
}

// ArticlePath is the public page of the article with id.
func ArticlePath(id string) string {
	return HubPath + "/" + url.PathEscape(id)
}
