// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assetstore

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/h2non/filetype"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// sniffLength is enough of the header for every matcher filetype ships.
const sniffLength = 261

var (
	// ErrUnsupportedType is the cause of a rejected media type.
	ErrUnsupportedType = errors.New("assetstore: unsupported media type")

	// ErrTooLarge is the cause of a file over its kind's size limit.
	ErrTooLarge = errors.New("assetstore: file too large")

	// ErrEmptyFile is the cause of a zero-byte upload.
	ErrEmptyFile = errors.New("assetstore: empty file")
)

// allowedTypes lists the accepted MIME types per kind.
var allowedTypes = map[Kind][]string{
	KindImage: {"image/jpeg", "image/png", "image/webp"},
	KindVideo: {"video/mp4", "video/webm", "video/quicktime"},
}

// MaxBytes returns the upload limit for a kind.
func MaxBytes(kind Kind) int64 {
	if kind == KindVideo {
		return constants.MaxVideoBytes
	}
	return constants.MaxImageBytes
}

// Validate checks a file's size and MIME type against the limits for kind.
// The returned error is a VALIDATION_ERROR whose cause is one of the
// sentinel errors above.
func Validate(kind Kind, size int64, contentType string) error {
	if _, ok := allowedTypes[kind]; !ok {
		return invalid(fmt.Sprintf("Unknown media kind %q", kind), ErrUnsupportedType)
	}

	if size <= 0 {
		return invalid("File is empty", ErrEmptyFile)
	}

	if limit := MaxBytes(kind); size > limit {
		return invalid(fmt.Sprintf("%s exceeds the %d MB limit", kind, limit>>20), ErrTooLarge)
	}

	for _, allowed := range allowedTypes[kind] {
		if contentType == allowed {
			return nil
		}
	}

	return invalid(fmt.Sprintf("Unsupported %s type %q (allowed: %s)", kind, contentType, strings.Join(allowedTypes[kind], ", ")), ErrUnsupportedType)
}

// Inspect sniffs the content type from the bytes and validates it for kind.
// The client-declared content type is never trusted.
func Inspect(kind Kind, fileName string, data []byte) (File, error) {
	header := data
	if len(header) > sniffLength {
		header = header[:sniffLength]
	}

	detected, err := filetype.Match(header)
	if err != nil || detected == filetype.Unknown {
		if len(data) == 0 {
			return File{}, invalid("File is empty", ErrEmptyFile)
		}
		return File{}, invalid("Could not detect the file type", ErrUnsupportedType)
	}

	if err := Validate(kind, int64(len(data)), detected.MIME.Value); err != nil {
		return File{}, err
	}

	return File{
		Name:        path.Base(strings.ReplaceAll(fileName, "\\", "/")),
		Kind:        kind,
		ContentType: detected.MIME.Value,
		Extension:   detected.Extension,
		Data:        data,
	}, nil
}

func invalid(message string, cause error) error {
	appError := apperr.ValidationError(message, apperr.FieldError{Field: "file", Message: message})
	appError.Cause = cause
	return appError
}
