// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist provides the small string key/value stores that hold
// per-visitor client state (auth session, cart, demo products). Values are
// opaque strings, usually JSON documents, and every write replaces the
// whole value. Concurrent writers to the same key follow last-write-wins.
package persist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Store is a string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Memory is a process-local Store. It is the default driver in
// development and the store most tests run against.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns every stored key in sorted order.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// namespaced prefixes every key with a fixed scope.
type namespaced struct {
	store  Store
	prefix string
}

// Namespace scopes store to keys beginning with prefix followed by a colon.
// Two namespaces with different prefixes never see each other's keys.
func Namespace(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.prefix+key)
}

// Driver names accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverValkey   = "valkey"
	DriverPostgres = "postgres"
)

// ValidDriver reports whether name is a known driver.
func ValidDriver(name string) bool {
	switch strings.ToLower(name) {
	case DriverMemory, DriverFile, DriverValkey, DriverPostgres:
		return true
	}
	return false
}

// errKey wraps a driver error with the operation and key.
func errKey(op, key string, err error) error {
	return fmt.Errorf("persist %s %q: %w", op, key, err)
}
