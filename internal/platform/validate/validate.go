// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects field-level input errors into one [apperr.AppError].

Handlers and services build a [Validator], chain the rules a payload must
satisfy and return [Validator.Err]. Format rules (email, http URL) delegate
to go-playground/validator; length and membership rules are local.

	err := (&validate.Validator{}).
		Required("title", draft.Title).
		MaxLen("title", draft.Title, 120).
		Err()
*/
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
)

// engine is safe for concurrent use and caches nothing for Var calls.
var engine = validator.New()

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates failures. It is not safe for concurrent use; build
// one per payload.
type Validator struct {
	errs []apperr.FieldError
}

// # Presence & Length

// Required fails on an empty or whitespace-only value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen counts runes, so "Décor" is five characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// MinLen counts runes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) < min, fmt.Sprintf("Minimum %d characters", min))
}

// # Formats

// URL requires an absolute http or https URL with a host.
func (v *Validator) URL(field, value string) *Validator {
	return v.Custom(field, engine.Var(value, "required,http_url") != nil, "Must be a valid http(s) URL")
}

// Email requires a bare address such as "owner@joycdecor.in".
func (v *Validator) Email(field, value string) *Validator {
	return v.Custom(field, engine.Var(value, "required,email") != nil, "Must be a valid email address")
}

// OneOf fails unless value equals one of allowed exactly.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	return v.Custom(field, true, "Must be one of: "+strings.Join(allowed, ", "))
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// # Result

// HasErrors reports whether any rule failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns a VALIDATION_ERROR listing every failure, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
