// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/creasty/defaults"

	"wellnesshub/internal/listing"
	"wellnesshub/internal/loader"
	"wellnesshub/internal/models"
)

// AdminPageSize is the number of rows per admin user page.
const AdminPageSize = 10

// minPasswordLen is the shortest password accepted for a new account.
const minPasswordLen = 8

// Admin list sort columns.
const (
	SortUsername = "username"
	SortRole     = "role"
)

// DefaultAdminState sorts accounts by username.
var DefaultAdminState = listing.State{
	Sort: listing.Sort{Column: SortUsername, Dir: listing.Asc},
	Page: 1,
}

var adminLess = map[string]func(a, b models.AdminUser) bool{
	SortUsername: func(a, b models.AdminUser) bool {
		return strings.ToLower(a.Username) < strings.ToLower(b.Username)
	},
	SortRole: func(a, b models.AdminUser) bool {
		return a.Role < b.Role
	},
}

// AdminUsers is the back office account list.
type AdminUsers struct {
	svc   AdminService
	query *loader.Query[[]models.AdminUser]
}

// AdminListView is what the account table renders.
type AdminListView struct {
	State   listing.State
	Page    listing.Page[models.AdminUser]
	Loading bool
	Err     error
}

func NewAdminUsers(svc AdminService) *AdminUsers {
	return &AdminUsers{
		svc:   svc,
		query: loader.NewList(svc.List, loader.Identity[models.AdminUser]),
	}
}

func (a *AdminUsers) Load(ctx context.Context) error {
	return a.query.Load(ctx).Err
}

// View searches username and email, sorts and paginates.
func (a *AdminUsers) View(st listing.State) AdminListView {
	snap := a.query.Snapshot()
	less, ok := adminLess[st.Sort.Column]
	if !ok {
		st.Sort = DefaultAdminState.Sort
		less = adminLess[st.Sort.Column]
	}
	match := func(u models.AdminUser) bool { return listing.Contains(st.Query, u.Username, u.Email) }
	page := listing.Apply(snap.Data, match, less, st.Sort.Dir, st.Page, AdminPageSize)
	st.Page = page.Page
	return AdminListView{State: st, Page: page, Loading: snap.IsLoading, Err: snap.Err}
}

// NewAdminInput returns the create form defaults.
func NewAdminInput() models.AdminCreateInput {
	var in models.AdminCreateInput
	_ = defaults.Set(&in)
	return in
}

func validateAccount(username, email string, role models.Role) error {
	if err := required("username", "Username", username); err != nil {
		return err
	}
	if err := validEmail("email", email); err != nil {
		return err
	}
	if !role.Valid() {
		return invalid("role", "Choose a role.")
	}
	return nil
}

func validatePassword(field, pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLen {
		return invalid(field, "Password must be at least %d characters.", minPasswordLen)
	}
	return nil
}

// ValidateAdminCreate checks a new account. The password is required.
func ValidateAdminCreate(in models.AdminCreateInput) error {
	if err := validateAccount(in.Username, in.Email, in.Role); err != nil {
		return err
	}
	if in.Password == "" {
		return invalid("password", "Password is required.")
	}
	return validatePassword("password", in.Password)
}

// ValidateAdminUpdate checks an account edit. An empty password keeps the
// current one.
func ValidateAdminUpdate(in models.AdminUpdateInput) error {
	if err := validateAccount(in.Username, in.Email, in.Role); err != nil {
		return err
	}
	if in.Password == "" {
		return nil
	}
	return validatePassword("password", in.Password)
}

// Get fetches one account for the edit form.
func (a *AdminUsers) Get(ctx context.Context, id string) (models.AdminUser, error) {
	u, err := a.svc.Get(ctx, id)
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("load admin %s: %w", id, err)
	}
	return u, nil
}

// Create validates and creates an account, then refetches.
func (a *AdminUsers) Create(ctx context.Context, in models.AdminCreateInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := ValidateAdminCreate(in); err != nil {
		return err
	}
	if _, err := a.svc.Create(ctx, in); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	a.query.Invalidate(ctx)
	return nil
}

// Update validates and saves an account, then refetches.
func (a *AdminUsers) Update(ctx context.Context, id string, in models.AdminUpdateInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := ValidateAdminUpdate(in); err != nil {
		return err
	}
	if _, err := a.svc.Update(ctx, id, in); err != nil {
		return fmt.Errorf("update admin %s: %w", id, err)
	}
	a.query.Invalidate(ctx)
	return nil
}

// Delete removes an account and refetches.
func (a *AdminUsers) Delete(ctx context.Context, id string) error {
	if err := a.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete admin %s: %w", id, err)
	}
	a.query.Invalidate(ctx)
	return nil
}
