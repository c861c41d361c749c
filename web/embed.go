// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package web provides the embedded static assets (CSS, images) served at
// /static/ for the storefront and the back office.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
