// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements accounts, login and password recovery.

It defines the User entity and the use cases that sit in front of it. Admins
are ordinary accounts with the admin role; the role travels inside the access
token so the catalog can authorise writes without a lookup.
*/
package auth

import (
	"strings"
	"time"

	"github.com/joycdecor/joycdecor/internal/platform/sec"
)

// # Domain Entities

// User is a registered account.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID string       `json:"userId"`
	Role   sec.UserRole `json:"role"`
}

// IsAdmin reports whether the identity may manage the catalog.
func (identity Identity) IsAdmin() bool {
	return identity.Role.AtLeast(sec.RoleAdmin)
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldToken    = "token"
)

// NormalizeEmail lower-cases and trims an address so lookups are case-blind.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// defaultName derives a display name from the local part of an address.
func defaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
