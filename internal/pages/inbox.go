// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"sync"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
)

// Inbox is the support inquiry list with its open detail pane.
type Inbox struct {
	svc   InquiryService
	query *loader.Query[[]models.Inquiry]

	mu       sync.Mutex
	selected *models.Inquiry
}

// InboxView is what the support screen renders.
type InboxView struct {
	Items    []models.Inquiry
	Selected *models.Inquiry
	NewCount int
	Status   models.InquiryStatus
	Loading  bool
	Err      error
}

func NewInbox(svc InquiryService) *Inbox {
	return &Inbox{
		svc:   svc,
		query: loader.NewList(svc.List, loader.Identity[models.Inquiry]),
	}
}

func (b *Inbox) Load(ctx context.Context) error {
	return b.query.Load(ctx).Err
}

// Select opens the inquiry with id in the detail pane. It reports false
// when the list has no such inquiry.
func (b *Inbox) Select(id string) bool {
	for _, q := range b.query.Snapshot().Data {
		if q.ID == id {
			b.mu.Lock()
			sel := q
			b.selected = &sel
			b.mu.Unlock()
			return true
		}
	}
	return false
}

// Selected returns a copy of the open inquiry, or nil.
func (b *Inbox) Selected() *models.Inquiry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == nil {
		return nil
	}
	sel := *b.selected
	return &sel
}

// ChangeStatus moves the inquiry with id to status. Once the backend
// accepts it the list entry and the open detail are patched in place;
// other entries are left untouched.
func (b *Inbox) ChangeStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	if !status.Valid() {
		return invalid("status", "Unknown status %q.", status)
	}
	if err := b.svc.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update inquiry %s: %w", id, err)
	}
	b.query.Patch(func(list []models.Inquiry) []models.Inquiry {
		out := make([]models.Inquiry, len(list))
		for i, q := range list {
			if q.ID == id {
				q.Status = status
			}
			out[i] = q
		}
		return out
	})
	b.mu.Lock()
	if b.selected != nil && b.selected.ID == id {
		b.selected.Status = status
	}
	b.mu.Unlock()
	return nil
}

// NewCount is the number of inquiries nobody has opened yet.
func (b *Inbox) NewCount() int {
	n := 0
	for _, q := range b.query.Snapshot().Data {
		if q.Status == models.InquiryNew {
			n++
		}
	}
	return n
}

// View lists the inquiries matching status (empty for all) and q, newest
// first.
func (b *Inbox) View(status models.InquiryStatus, q string) InboxView {
	snap := b.query.Snapshot()
	match := func(i models.Inquiry) bool {
		if status != "" && i.Status != status {
			return false
		}
		return listing.Contains(q, i.Name, i.Email, i.Subject)
	}
	less := func(a, b models.Inquiry) bool { return a.Received().Before(b.Received()) }
	page := listing.Apply(snap.Data, match, less, listing.Desc, 1, max(len(snap.Data), 1))
	return InboxView{
		Items:    page.Items,
		Selected: b.Selected(),
		NewCount: b.NewCount(),
		Status:   status,
		Loading:  snap.IsLoading,
		Err:      snap.Err,
	}
}
