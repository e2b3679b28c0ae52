// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the decoration catalog: items, their media, and the
service and HTTP layer that own them.

Core Responsibility:

  - Items: one decoration or service listing with images, videos and tags.
  - Media timeline: the ordered images+videos sequence a viewer rotates through.
  - Persistence: PostgreSQL is the source of truth; gallery pages are cached in Redis.

An item is publishable only when it carries at least one image.
*/
package catalog

import (
	"math"
	"strings"
	"time"

	"github.com/joycdecor/joycdecor/internal/platform/validate"
)

// # Categories

// Category is one entry of the fixed category set shown on the site.
type Category string

const (
	CategoryWedding      Category = "Wedding"
	CategoryBirthday     Category = "Birthday"
	CategoryCorporate    Category = "Corporate"
	CategoryEngagement   Category = "Engagement"
	CategoryAnniversary  Category = "Anniversary"
	CategoryBabyShower   Category = "Baby Shower"
	CategoryTable        Category = "Table"
	CategoryChair        Category = "Chair"
	CategoryCatering     Category = "Catering"
	CategoryPopcorn      Category = "Popcorn"
	CategoryCottonCandy  Category = "Cotton Candy"
	CategoryBalloonDecor Category = "Balloon Decor"
	CategoryStageDecor   Category = "Stage Decor"
	CategoryLighting     Category = "Lighting"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWedding, CategoryBirthday, CategoryCorporate, CategoryEngagement,
	CategoryAnniversary, CategoryBabyShower, CategoryTable, CategoryChair,
	CategoryCatering, CategoryPopcorn, CategoryCottonCandy, CategoryBalloonDecor,
	CategoryStageDecor, CategoryLighting,
}

// IsValid reports whether c is one of [Categories].
func (c Category) IsValid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func categoryNames() []string {
	names := make([]string, len(Categories))
	for index, category := range Categories {
		names[index] = string(category)
	}
	return names
}

// # Entities

// Item is a persisted catalog listing.
type Item struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	Video       []string  `json:"video"`
	Description string    `json:"description"`
	Features    []string  `json:"features"`
	Rating      float64   `json:"rating"`
	Reviews     int       `json:"reviews"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MediaURLs returns every image and video URL of the item.
func (item *Item) MediaURLs() []string {
	urls := make([]string, 0, len(item.Images)+len(item.Video))
	urls = append(urls, item.Images...)
	return append(urls, item.Video...)
}

// Draft returns the editable fields of the item.
func (item *Item) Draft() Draft {
	rating := item.Rating
	reviews := item.Reviews
	return Draft{
		Title:       item.Title,
		Category:    item.Category,
		Images:      append([]string(nil), item.Images...),
		Video:       append([]string(nil), item.Video...),
		Description: item.Description,
		Features:    append([]string(nil), item.Features...),
		Rating:      &rating,
		Reviews:     &reviews,
	}
}

// FeatureSummary is a display-truncated feature list.
type FeatureSummary struct {
	Shown  []string
	Hidden int
}

// SummarizeFeatures returns at most max features plus the count left out ("+N more").
func (item *Item) SummarizeFeatures(max int) FeatureSummary {
	if max < 0 {
		max = 0
	}
	if len(item.Features) <= max {
		return FeatureSummary{Shown: item.Features}
	}
	return FeatureSummary{Shown: item.Features[:max], Hidden: len(item.Features) - max}
}

// # Drafts

// Field names used in validation errors.
const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldImages   = "images"
	FieldVideo    = "video"
	FieldFeatures = "features"
)

const (
	// DefaultRating is applied when a draft carries no usable rating.
	DefaultRating = 5.0

	maxTitleLength   = 200
	maxFeatureLength = 80
	maxFeatures      = 30
)

// Draft is the full editable field set of an item, as submitted by an admin.
// Rating and Reviews are pointers so that "absent" can be told apart from zero.
type Draft struct {
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Images      []string `json:"images"`
	Video       []string `json:"video"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Rating      *float64 `json:"rating,omitempty"`
	Reviews     *int     `json:"reviews,omitempty"`
}

// Normalize trims text, drops empty URLs and features, and applies the
// rating (5.0) and reviews (0) defaults.
func (draft Draft) Normalize() Draft {
	normalized := Draft{
		Title:       strings.TrimSpace(draft.Title),
		Category:    Category(strings.TrimSpace(string(draft.Category))),
		Images:      compact(draft.Images),
		Video:       compact(draft.Video),
		Description: strings.TrimSpace(draft.Description),
		Features:    compact(draft.Features),
	}

	rating := DefaultRating
	if draft.Rating != nil && !math.IsNaN(*draft.Rating) && *draft.Rating >= 0 && *draft.Rating <= 5 {
		rating = *draft.Rating
	}
	normalized.Rating = &rating

	reviews := 0
	if draft.Reviews != nil && *draft.Reviews > 0 {
		reviews = *draft.Reviews
	}
	normalized.Reviews = &reviews

	return normalized
}

// Validate checks the publishability rules on a normalized draft: a title,
// a known category and at least one image. It makes no network calls.
func (draft Draft) Validate() error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, draft.Title).MaxLen(FieldTitle, draft.Title, maxTitleLength)
	validator.Required(FieldCategory, string(draft.Category))
	if draft.Category != "" {
		validator.OneOf(FieldCategory, string(draft.Category), categoryNames()...)
	}
	validator.Custom(FieldImages, len(draft.Images) == 0, "At least one image is required")

	validator.Custom(FieldFeatures, len(draft.Features) > maxFeatures, "Too many features")
	for _, feature := range draft.Features {
		validator.MaxLen(FieldFeatures, feature, maxFeatureLength)
	}

	return validator.Err()
}

// ValidateURLs checks that every media URL is an absolute http(s) URL.
func (draft Draft) ValidateURLs() error {
	validator := &validate.Validator{}
	for _, image := range draft.Images {
		validator.URL(FieldImages, image)
	}
	for _, video := range draft.Video {
		validator.URL(FieldVideo, video)
	}
	return validator.Err()
}

// RemovedMedia lists the URLs of before that are absent from after,
// images first, in their original order.
func RemovedMedia(before *Item, after Draft) []string {
	kept := make(map[string]struct{}, len(after.Images)+len(after.Video))
	for _, url := range after.Images {
		kept[url] = struct{}{}
	}
	for _, url := range after.Video {
		kept[url] = struct{}{}
	}

	var removed []string
	seen := make(map[string]struct{})
	for _, url := range before.MediaURLs() {
		if _, ok := kept[url]; ok {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		removed = append(removed, url)
	}
	return removed
}

func compact(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
