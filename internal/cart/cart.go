// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cart holds a visitor's shopping cart. The cart is a list of lines
// keyed by product id, persisted in full after every change. Writers to the
// same visitor's cart from parallel requests follow last-write-wins.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wellnesshub/internal/models"
	"wellnesshub/internal/persist"
)

// Key is the persistence key of the cart document.
const Key = "wc_cart_v1"

// ErrInvalidQuantity is returned when adding fewer than one unit.
var ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")

// ErrInvalidItem is returned when adding a line without a product id.
var ErrInvalidItem = errors.New("cart: item id is required")

// ErrUnavailable is returned by changes to a cart whose persisted copy
// could not be read. Saving it would overwrite the stored lines.
var ErrUnavailable = errors.New("cart: stored cart could not be read")

// Store is one visitor's cart.
type Store struct {
	store persist.Store

	mu      sync.Mutex
	items   []models.CartItem
	loadErr error
}

// New creates an empty cart on store. Call Load to read the persisted one.
func New(store persist.Store) *Store {
	return &Store{store: store, items: []models.CartItem{}}
}

// Load replaces the in-memory cart with the persisted one. A missing or
// undecodable document yields an empty cart. A failed read also leaves the
// cart empty but returns the error, and the cart refuses changes until a
// later Load succeeds.
func (s *Store) Load(ctx context.Context) error {
	var items []models.CartItem
	found, err := persist.GetJSON(ctx, s.store, Key, &items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.CartItem{}
	s.loadErr = nil
	switch {
	case err != nil && !found:
		s.loadErr = fmt.Errorf("%w: %w", ErrUnavailable, err)
		return s.loadErr
	case err != nil:
		slog.Warn("cart unreadable, starting empty", "error", err)
		return nil
	}
	if items != nil {
		s.items = items
	}
	return nil
}

// Add puts qty units of item in the cart, merging into an existing line
// with the same id.
func (s *Store) Add(ctx context.Context, item models.CartItem, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if item.ID == "" {
		return ErrInvalidItem
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Qty += qty
			return s.save(ctx)
		}
	}
	item.Qty = qty
	s.items = append(s.items, item)
	return s.save(ctx)
}

// Remove drops the line with id. Removing an absent id still persists.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	kept := make([]models.CartItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.save(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	s.items = []models.CartItem{}
	return s.save(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem{}, s.items...)
}

// Count is the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Qty
	}
	return n
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// LeadItems converts the cart into the lines of a cart lead.
func (s *Store) LeadItems() []models.LeadItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LeadItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, models.LeadItem{ProductID: it.ID, Quantity: it.Qty})
	}
	return out
}

// save must be called with mu held.
func (s *Store) save(ctx context.Context) error {
	if err := persist.SetJSON(ctx, s.store, Key, s.items); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}
	return nil
}
