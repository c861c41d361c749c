// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth holds the back office sign-in state of one visitor: the
// bearer token issued by the backend and the identity that came with it.
// A Session is the apiclient.Credentials of its visitor.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/golang-jwt/jwt/v5"

	"wellnesshub/internal/models"
	"wellnesshub/internal/persist"
)

const (
	// TokenKey is the persistence key of the bearer token.
	TokenKey = "wc_admin_token"
	// UserKey is the persistence key of the signed-in identity.
	UserKey = "wc_admin_user"

	// LoginPath is where unauthenticated admins are sent.
	LoginPath = "/login"
)

// ErrInvalidLogin is returned when Login is given an empty token or user.
var ErrInvalidLogin = errors.New("auth: token and user are required")

// stripes serialize token changes per visitor across concurrent requests
// in this process, so compare-and-clear in Expire is atomic.
var stripes [64]sync.Mutex

func stripe(id string) *sync.Mutex {
	return &stripes[xxhash.Sum64String(id)%uint64(len(stripes))]
}

// Session is one visitor's sign-in state.
type Session struct {
	store persist.Store
	lock  *sync.Mutex
	now   func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.AuthUser
}

// NewSession creates a signed-out session on store. id identifies the
// visitor and scopes the lock that guards token changes.
func NewSession(store persist.Store, id string) *Session {
	return &Session{store: store, lock: stripe(id), now: time.Now}
}

// Load reads the persisted token and user. An already expired JWT, a
// token without a user, or an unreadable user all load as signed out and
// the leftovers are removed.
func (s *Session) Load(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	token, _, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("auth load token: %w", err)
	}
	var user models.AuthUser
	hasUser, err := persist.GetJSON(ctx, s.store, UserKey, &user)
	if err != nil {
		slog.Warn("auth user unreadable, signing out", "error", err)
		hasUser = false
	}

	if token == "" || !hasUser || user.Username == "" || Expired(token, s.now()) {
		s.set("", nil)
		if token != "" || hasUser {
			return s.clear(ctx)
		}
		return nil
	}
	s.set(token, &user)
	return nil
}

// Login stores token and user, replacing any previous session.
func (s *Session) Login(ctx context.Context, token string, user models.AuthUser) error {
	if token == "" || user.Username == "" {
		return ErrInvalidLogin
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("auth login: %w", err)
	}
	if err := persist.SetJSON(ctx, s.store, UserKey, user); err != nil {
		return fmt.Errorf("auth login: %w", err)
	}
	s.set(token, &user)
	return nil
}

// Logout clears the session.
func (s *Session) Logout(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.set("", nil)
	return s.clear(ctx)
}

// Expire clears the session if token is still the persisted one and
// reports whether this call cleared it. Only one of several concurrent
// callers holding the same stale token sees true.
func (s *Session) Expire(token string) bool {
	if token == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.lock.Lock()
	defer s.lock.Unlock()

	current, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		slog.Warn("auth expire: read token", "error", err)
		return false
	}
	if !ok || current != token {
		s.mu.Lock()
		if s.token == token {
			s.token, s.user = "", nil
		}
		s.mu.Unlock()
		return false
	}
	s.set("", nil)
	if err := s.clear(ctx); err != nil {
		slog.Warn("auth expire: clear", "error", err)
	}
	return true
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in identity.
func (s *Session) User() (models.AuthUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.AuthUser{}, false
	}
	return *s.user, true
}

// Authenticated reports whether both token and user are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

func (s *Session) set(token string, user *models.AuthUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
}

func (s *Session) clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("auth clear: %w", err)
	}
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("auth clear: %w", err)
	}
	return nil
}

// Expired reports whether token is a JWT whose exp claim is in the past.
// The signature is not verified here; the backend remains the authority
// and opaque tokens are never considered expired.
func Expired(token string, now time.Time) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// LoginURL builds the login redirect for an admin page at from.
func LoginURL(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?from=" + url.QueryEscape(from)
}
