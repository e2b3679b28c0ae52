// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, body decoding
and multipart file reads, so handlers share one error vocabulary.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/ctxutil"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/platform/validate"
)

// maxJSONBody caps JSON request bodies; item payloads are small.
const maxJSONBody = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns validate.ErrInvalidJSON if decoding fails.
*/
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a trimmed query-string value.
*/
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

/*
FormFile reads one multipart file part fully into memory.

Parameters:
  - field: multipart field name
  - maxBytes: hard cap; larger parts fail with a VALIDATION_ERROR on field

Returns:
  - []byte: file content
  - string: the client-supplied file name
  - error: apperr.ValidationError on a missing or oversized part
*/
func FormFile(request *http.Request, field string, maxBytes int64) ([]byte, string, error) {
	// Leave room for the other multipart fields around the file part.
	request.Body = http.MaxBytesReader(nil, request.Body, maxBytes+(1<<20))
	if err := request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", validate.RequiredError(field, fmt.Sprintf("File exceeds %d MB", maxBytes>>20))
		}
		return nil, "", validate.RequiredError(field, "Invalid multipart form")
	}

	file, header, err := request.FormFile(field)
	if err != nil {
		return nil, "", validate.RequiredError(field, "File is required")
	}
	defer file.Close()

	if header.Size > maxBytes {
		return nil, "", validate.RequiredError(field, fmt.Sprintf("File exceeds %d MB", maxBytes>>20))
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", apperr.Internal(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > maxBytes {
		return nil, "", validate.RequiredError(field, fmt.Sprintf("File exceeds %d MB", maxBytes>>20))
	}

	return data, header.Filename, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.Claims(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.Claims(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}
