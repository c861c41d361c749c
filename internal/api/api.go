// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api maps the wellness backend's REST resources onto typed Go
// calls. Every module is a thin adapter over an apiclient.Doer: it builds
// the path, sends the DTO and returns the decoded response. Failures from
// the client propagate unchanged.
package api

import (
	"errors"
	"net/url"
)

// Base is the version prefix of every backend path.
const Base = "/api/v1"

// ErrNotFound is returned by stores that resolve unknown ids locally.
var ErrNotFound = errors.New("api: not found")

// idPath joins a collection path and an escaped id.
func idPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}
