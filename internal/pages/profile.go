// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pages

import (
	"context"
	"fmt"
	"strings"

	"wellnesshub/internal/models"
)

type ProfileService interface {
	Get(ctx context.Context) (models.Profile, error)
	Update(ctx context.Context, in models.ProfileInput) (models.Profile, error)
	ChangePassword(ctx context.Context, in models.PasswordChange) error
}

// ValidateProfile checks a profile edit.
func ValidateProfile(in models.ProfileInput) error {
	if err := required("full_name", "Full name", in.FullName); err != nil {
		return err
	}
	if in.AvatarURL != "" && !absoluteURL(in.AvatarURL) {
		return invalid("avatar_url", "Avatar must be an absolute http(s) address.")
	}
	return nil
}

// ValidatePasswordChange checks a password change. confirm must repeat the
// new password.
func ValidatePasswordChange(in models.PasswordChange, confirm string) error {
	if in.CurrentPassword == "" {
		return invalid("current_password", "Current password is required.")
	}
	if err := validatePassword("new_password", in.NewPassword); err != nil {
		return err
	}
	if in.NewPassword != confirm {
		return invalid("confirm_password", "Passwords do not match.")
	}
	if in.NewPassword == in.CurrentPassword {
		return invalid("new_password", "New password must differ from the current one.")
	}
	return nil
}

// UpdateProfile validates and saves the signed-in admin's profile.
func UpdateProfile(ctx context.Context, svc ProfileService, in models.ProfileInput) (models.Profile, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	if err := ValidateProfile(in); err != nil {
		return models.Profile{}, err
	}
	p, err := svc.Update(ctx, in)
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// ChangePassword validates and submits a password change.
func ChangePassword(ctx context.Context, svc ProfileService, in models.PasswordChange, confirm string) error {
	if err := ValidatePasswordChange(in, confirm); err != nil {
		return err
	}
	if err := svc.ChangePassword(ctx, in); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
