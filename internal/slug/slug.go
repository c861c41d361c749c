// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

// separators matches every run of characters outside [a-z0-9].
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string. Each run of
// characters other than lowercase ASCII letters and digits becomes a single
// hyphen, and leading or trailing hyphens are dropped. Generate is
// idempotent.
// Example: "Protein Powder!!" → "protein-powder"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
