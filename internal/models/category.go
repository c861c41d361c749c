// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is a storefront category managed in the back office. Count is
// derived by the backend.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// CategoryInput is the create payload.
type CategoryInput struct {
	Name        string `json:"name" schema:"name"`
	Slug        string `json:"slug" schema:"slug"`
	Description string `json:"description" schema:"description"`
}
