// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any error caused by a 401 response.
	ErrUnauthorized = errors.New("apiclient: unauthorized")

	// ErrTransport matches failures where no HTTP response was received.
	ErrTransport = errors.New("apiclient: transport failure")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// errorMessage extracts the most useful message from an error body: the
// message or error field of a JSON body, then the plain text body, then a
// generic status line.
func errorMessage(status int, contentType string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if isJSON(contentType) || strings.HasPrefix(text, "{") {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
			Title   string `json:"title"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			switch {
			case payload.Message != "":
				return payload.Message
			case payload.Error != "":
				return payload.Error
			case payload.Title != "":
				return payload.Title
			}
		}
	}
	if text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "json")
}
