// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"wellnesshub/internal/apiclient"
)

// Recoverer turns a handler panic into a logged 500. It sits outside
// Logger, so the request id is read back from the response header Logger
// sets. A response that already started is left alone, and
// http.ErrAbortHandler is re-raised for net/http to handle.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracked := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"request_id", requestID(w, r),
				"committed", tracked.written,
				"stack", string(debug.Stack()),
			)
			if !tracked.written {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(tracked, r)
	})
}

func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := w.Header().Get(RequestIDHeader); id != "" {
		return id
	}
	return apiclient.RequestIDFromContext(r.Context())
}
