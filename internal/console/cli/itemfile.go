// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joycdecor/joycdecor/internal/console/lifecycle"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
)

// itemFile is the YAML form of an item that "items show" prints and
// "items add/edit -f" reads. Media entries are URLs or local file paths.
type itemFile struct {
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Images      []string `yaml:"images"`
	Videos      []string `yaml:"videos,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Features    []string `yaml:"features,omitempty"`
	Rating      *float64 `yaml:"rating,omitempty"`
	Reviews     *int     `yaml:"reviews,omitempty"`
}

func readItemFile(path string) (itemFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return itemFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	var file itemFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return itemFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

func fileFromItem(item *catalog.Item) itemFile {
	rating, reviews := item.Rating, item.Reviews
	return itemFile{
		Title:       item.Title,
		Category:    string(item.Category),
		Images:      append([]string(nil), item.Images...),
		Videos:      append([]string(nil), item.Video...),
		Description: item.Description,
		Features:    append([]string(nil), item.Features...),
		Rating:      &rating,
		Reviews:     &reviews,
	}
}

func (file itemFile) draft() catalog.Draft {
	return catalog.Draft{
		Title:       file.Title,
		Category:    catalog.Category(file.Category),
		Images:      file.Images,
		Video:       file.Videos,
		Description: file.Description,
		Features:    file.Features,
		Rating:      file.Rating,
		Reviews:     file.Reviews,
	}
}

// # Media Resolution

// isLocalMedia reports whether an entry names a file to upload rather than a URL.
func isLocalMedia(entry string) bool {
	lower := strings.ToLower(strings.TrimSpace(entry))
	return lower != "" && !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://")
}

// uploader is the slice of the controller that media resolution needs.
type uploader interface {
	Upload(context context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error)
}

/*
resolveMedia uploads every local path in entries and substitutes its hosted
URL. Each slot stands alone: a file that fails validation or upload is
reported through warn and dropped, the other slots keep going.
*/
func resolveMedia(context context.Context, target uploader, kind assetstore.Kind, entries []string, warn func(string, ...any)) []string {
	resolved := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !isLocalMedia(entry) {
			resolved = append(resolved, entry)
			continue
		}

		data, err := os.ReadFile(entry)
		if err != nil {
			warn("skipped %s: %v", entry, err)
			continue
		}

		asset, err := target.Upload(context, kind, filepath.Base(entry), data)
		var validation *lifecycle.ValidationError
		var upload *lifecycle.UploadError
		switch {
		case errors.As(err, &validation):
			warn("skipped %s: %v", entry, validation.Err)
			continue
		case errors.As(err, &upload):
			warn("upload failed for %s: %v", entry, upload.Err)
			continue
		case err != nil:
			warn("skipped %s: %v", entry, err)
			continue
		}

		resolved = append(resolved, asset.URL)
	}

	return resolved
}
