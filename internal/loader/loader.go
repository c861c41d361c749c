// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package loader tracks the lifecycle of one remote read on behalf of a
// page: idle, loading, then success or error, re-entering loading on every
// refetch. Each fetch runs under its own cancelable context; starting a
// new fetch cancels the previous one and any response from an older fetch
// is discarded, so the state always reflects the last fetch started.
package loader

import (
	"context"
	"errors"
	"reflect"
	"sync"
)

// State is the lifecycle phase of a query.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Snapshot is a consistent view of a query at one instant.
type Snapshot[V any] struct {
	Data      V
	Count     int
	IsLoading bool
	IsError   bool
	Err       error
	State     State
}

// Query holds the result of a fetch function and the state around it.
type Query[V any] struct {
	fetch func(ctx context.Context) (V, error)
	count func(V) int

	mu     sync.Mutex
	state  State
	data   V
	err    error
	prev   State
	prevEr error
	gen    uint64
	cancel context.CancelFunc
	deps   []any
	closed bool
}

// New creates an idle query whose data starts at initial.
func New[V any](fetch func(ctx context.Context) (V, error), initial V) *Query[V] {
	return &Query[V]{fetch: fetch, data: initial}
}

// NewList creates a query over a list endpoint. Every DTO is mapped through
// mapFn; the data is never nil, defaulting to an empty list.
func NewList[D, T any](fetch func(ctx context.Context) ([]D, error), mapFn func(D) T) *Query[[]T] {
	q := New(func(ctx context.Context) ([]T, error) {
		list, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]T, 0, len(list))
		for _, d := range list {
			out = append(out, mapFn(d))
		}
		return out, nil
	}, []T{})
	q.count = func(v []T) int { return len(v) }
	return q
}

// Identity is a mapFn that keeps DTOs as they are.
func Identity[T any](v T) T { return v }

// Start launches a fetch and returns a channel closed when that fetch has
// settled, whether its result was applied or discarded. After Close, Start
// returns an already closed channel.
func (q *Query[V]) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		close(done)
		return done
	}
	if q.cancel != nil {
		q.cancel()
	}
	q.gen++
	gen := q.gen
	fctx, cancel := context.WithCancel(ctx)
	q.cancel = cancel
	if q.state != StateLoading {
		q.prev, q.prevEr = q.state, q.err
	}
	q.state = StateLoading
	q.err = nil
	q.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		v, err := q.fetch(fctx)

		q.mu.Lock()
		defer q.mu.Unlock()
		if q.closed || gen != q.gen {
			return
		}
		q.cancel = nil
		switch {
		case err == nil:
			q.data = v
			q.state = StateSuccess
		case errors.Is(err, context.Canceled) && fctx.Err() != nil:
			// The caller went away; restore what was there before.
			q.state, q.err = q.prev, q.prevEr
		default:
			q.err = err
			q.state = StateError
		}
	}()
	return done
}

// Load starts a fetch and waits for it, returning the resulting snapshot.
// If ctx ends first Load returns the snapshot at that moment.
func (q *Query[V]) Load(ctx context.Context) Snapshot[V] {
	done := q.Start(ctx)
	select {
	case <-done:
	case <-ctx.Done():
	}
	return q.Snapshot()
}

// Refetch re-enters loading and fetches again.
func (q *Query[V]) Refetch(ctx context.Context) <-chan struct{} {
	return q.Start(ctx)
}

// Invalidate discards the current result and reloads it, waiting for the
// new snapshot. Pages call it after a mutation the server must reflect.
func (q *Query[V]) Invalidate(ctx context.Context) Snapshot[V] {
	return q.Load(ctx)
}

// SetDeps records the dependency values the fetch closes over. When they
// differ from the previous call a fetch starts and its done channel is
// returned; otherwise SetDeps returns nil.
func (q *Query[V]) SetDeps(ctx context.Context, deps ...any) <-chan struct{} {
	q.mu.Lock()
	same := q.deps != nil && reflect.DeepEqual(q.deps, deps)
	if !same {
		q.deps = append([]any{}, deps...)
	}
	q.mu.Unlock()
	if same {
		return nil
	}
	return q.Start(ctx)
}

// Patch rewrites the current data in place without a fetch. A fetch in
// flight still wins when it lands.
func (q *Query[V]) Patch(fn func(V) V) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.data = fn(q.data)
}

// Close cancels the fetch in flight and freezes the query; later results
// and patches are ignored.
func (q *Query[V]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}

// Snapshot returns the current state.
func (q *Query[V]) Snapshot() Snapshot[V] {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := Snapshot[V]{
		Data:      q.data,
		IsLoading: q.state == StateLoading,
		IsError:   q.state == StateError,
		Err:       q.err,
		State:     q.state,
	}
	if q.count != nil {
		s.Count = q.count(q.data)
	}
	return s
}
