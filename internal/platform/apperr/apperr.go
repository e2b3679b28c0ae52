// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type every JoycDecor layer returns.

An [AppError] pairs a client-safe message with a machine-readable code and
the HTTP status the API answers with. Storage and asset-host failures are
wrapped as [Internal] or [BadGateway] before they leave the service layer;
the wrapped error stays in Cause for logs and never reaches the client.

The console client decodes the same JSON shape back into an AppError, so a
code such as [CodeValidation] means the same thing on both sides.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Codes

const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadGateway   = "BAD_GATEWAY"
)

// AppError is the canonical error type of the API.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"error"`
	HTTPStatus int    `json:"-"`

	// Cause is logged server-side only.
	Cause error `json:"-"`

	// Details lists per-field failures of a [CodeValidation] error.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is one failed validation rule, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func build(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource, e.g. NotFound("Item") reads "Item not found".
func NotFound(resource string) *AppError {
	return build(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *AppError {
	return build(http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden reports a valid session without the required role.
func Forbidden(message string) *AppError {
	return build(http.StatusForbidden, CodeForbidden, message)
}

// Conflict reports a unique-constraint clash such as a registered email.
func Conflict(message string) *AppError {
	return build(http.StatusConflict, CodeConflict, message)
}

// ValidationError reports rejected input with optional per-field details.
func ValidationError(message string, details ...FieldError) *AppError {
	appError := build(http.StatusBadRequest, CodeValidation, message)
	appError.Details = details
	return appError
}

// RateLimited reports an exhausted request budget.
func RateLimited(retryAfterSeconds int) *AppError {
	return build(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal hides an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	appError := build(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// BadGateway reports that the asset host or mail relay failed the request.
func BadGateway(message string, cause error) *AppError {
	appError := build(http.StatusBadGateway, CodeBadGateway, message)
	appError.Cause = cause
	return appError
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// HasCode reports whether err carries an [*AppError] with code.
func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
