// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package loader

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Loadable is any query that can be loaded and waited on.
type Loadable interface {
	Wait(ctx context.Context) error
}

// Wait loads q and returns the fetch error, if any.
func (q *Query[V]) Wait(ctx context.Context) error {
	return q.Load(ctx).Err
}

// Group loads every query concurrently. Each query keeps its own result;
// the first error is returned after all have settled, so one failing
// widget does not blank out the others.
func Group(ctx context.Context, queries ...Loadable) error {
	var g errgroup.Group
	for _, q := range queries {
		g.Go(func() error { return q.Wait(ctx) })
	}
	return g.Wait()
}
