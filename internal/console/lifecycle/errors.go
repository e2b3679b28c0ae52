// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAdmin means the session token does not carry the admin role.
	ErrNotAdmin = errors.New("lifecycle: admin role required")

	// ErrCancelled means the user declined a confirmation prompt.
	ErrCancelled = errors.New("lifecycle: cancelled")
)

// ValidationError is a local check that failed before any request was sent.
type ValidationError struct {
	Err error
}

func (err *ValidationError) Error() string { return "validation: " + err.Err.Error() }
func (err *ValidationError) Unwrap() error { return err.Err }

// UploadError is a failed upload of one media slot. Other slots are unaffected.
type UploadError struct {
	FileName string
	Err      error
}

func (err *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", err.FileName, err.Err)
}
func (err *UploadError) Unwrap() error { return err.Err }

// PersistenceError is a rejected repository write or read.
type PersistenceError struct {
	Op  string
	Err error
}

func (err *PersistenceError) Error() string {
	return fmt.Sprintf("%s item: %v", err.Op, err.Err)
}
func (err *PersistenceError) Unwrap() error { return err.Err }

// CleanupError is a failed deletion of an orphaned asset. It is only logged.
type CleanupError struct {
	URL string
	Err error
}

func (err *CleanupError) Error() string {
	return fmt.Sprintf("cleanup %s: %v", err.URL, err.Err)
}
func (err *CleanupError) Unwrap() error { return err.Err }
