// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Persistence Contracts

// UserRepository stores accounts.
type UserRepository interface {

	// Create inserts a user. A duplicate email yields a CONFLICT error.
	Create(context context.Context, user *User) error

	// FindByID returns the user or NOT_FOUND.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the user for a normalized address or NOT_FOUND.
	FindByEmail(context context.Context, email string) (*User, error)

	// List returns every account, newest first.
	List(context context.Context) ([]*User, error)

	// UpdatePassword replaces the stored hash.
	UpdatePassword(context context.Context, id, passwordHash string) error
}

// ResetTokenRepository keeps short-lived password reset tokens.
//
// Implementations receive the token digest, never the token itself.
type ResetTokenRepository interface {
	Set(context context.Context, tokenHash, userID string, ttl time.Duration) error

	// Get returns the owning user id or NOT_FOUND once expired.
	Get(context context.Context, tokenHash string) (string, error)

	Delete(context context.Context, tokenHash string) error
}
