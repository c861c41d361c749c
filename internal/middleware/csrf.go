// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "wh_csrf"

	// CSRFHeaderName is the header scripted requests send the token in.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name.
	CSRFFormField = "csrf_token"

	csrfKey contextKey = "csrf"
)

// NewCSRF returns double-submit cookie CSRF protection. It issues a token
// cookie and requires state-changing requests (POST, PUT, PATCH, DELETE)
// to echo the same token in a header or form field. secure sets the
// cookie's Secure flag.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil {
				token = cookie.Value
			}
			if token == "" {
				fresh, err := generateCSRFToken()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    fresh,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
				token = fresh
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfKey, token))

			// Safe methods don't need CSRF validation.
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				submitted = r.FormValue(CSRFFormField)
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx returns the token for the current request, including
// one issued on this very request. Templates put it in hidden fields.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey).(string)
	return token
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
