// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is how long a login stays valid. There is no refresh flow.
	AccessTokenTTL = 7 * 24 * time.Hour

	// ResetTokenTTL bounds the password reset link.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random reset token.
	ResetTokenLength = 32

	// MinPasswordLength applies to registration and password reset.
	MinPasswordLength = 6
)
