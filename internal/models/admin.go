// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Role represents a back office user's permission level.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
	RoleEditor     Role = "Editor"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleAdmin, RoleSuperAdmin, RoleEditor}

// Valid reports whether r is an assignable role.
func (r Role) Valid() bool {
	for _, k := range Roles {
		if k == r {
			return true
		}
	}
	return false
}

// AdminUser is a back office account as returned by the backend. The
// password never travels in this direction.
type AdminUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsSuperAdmin returns true if the account holds the super admin role.
func (u AdminUser) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// AdminCreateInput is the create payload. Password is write-only.
type AdminCreateInput struct {
	Username string `json:"username" schema:"username"`
	Email    string `json:"email" schema:"email"`
	Password string `json:"password" schema:"password"`
	Role     Role   `json:"role" schema:"role" default:"Editor"`
}

// AdminUpdateInput is the update payload. An empty password keeps the
// current one.
type AdminUpdateInput struct {
	Username string `json:"username" schema:"username"`
	Email    string `json:"email" schema:"email"`
	Role     Role   `json:"role" schema:"role"`
	Password string `json:"password,omitempty" schema:"password"`
}

// AuthUser is the signed-in identity kept alongside the token.
type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// LoginResponse is the backend answer to a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Profile is the signed-in admin's own profile.
type Profile struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// ProfileInput is the profile update payload.
type ProfileInput struct {
	FullName  string `json:"fullName" schema:"full_name"`
	AvatarURL string `json:"avatarUrl" schema:"avatar_url"`
}

// PasswordChange is the password update payload.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" schema:"current_password"`
	NewPassword     string `json:"newPassword" schema:"new_password"`
}
