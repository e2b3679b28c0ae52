// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package assetstore is the client side of the hosted media store.

An upload is recorded as a tagged [Asset] {url, kind, publicId} at the point it
is stored, so later cleanup never has to guess what a URL refers to. The
[Locator] string heuristic only exists for URLs that predate that record or
were typed in by hand.

Two backends satisfy [Store]:

  - [CloudinaryStore]: the signed Cloudinary REST API.
  - [S3Store]: any S3-compatible bucket, laid out with the same path shape.
*/
package assetstore

import (
	"context"
	"strings"
)

// Kind is the media class of an asset. The values match the path segment
// used by the hosted URLs and the Cloudinary resource_type.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// ParseKind accepts "image" or "video" (case-insensitive).
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindImage:
		return KindImage, true
	case KindVideo:
		return KindVideo, true
	default:
		return "", false
	}
}

// Asset identifies one stored media file.
type Asset struct {
	URL      string `json:"url"`
	Kind     Kind   `json:"kind"`
	PublicID string `json:"publicId"`
}

// File is a validated upload ready to be handed to a [Store].
type File struct {
	// Name is the client file name; backends derive the public id from it.
	Name        string
	Kind        Kind
	ContentType string
	Extension   string
	Data        []byte
}

// Store uploads and deletes media on the asset host.
type Store interface {
	Upload(context context.Context, file File) (Asset, error)

	// Delete removes an asset. Deleting an id that is already gone succeeds.
	Delete(context context.Context, publicID string, kind Kind) error

	// Locator describes the URL shape produced by Upload.
	Locator() Locator
}
