// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
)

func ptr[T any](value T) *T { return &value }

/*
TestDraft_Normalize applies trimming and the rating/reviews defaults.
*/
func TestDraft_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		rating  *float64
		reviews *int
		want    float64
		wantRev int
	}{
		{"absent", nil, nil, 5.0, 0},
		{"valid", ptr(4.2), ptr(17), 4.2, 17},
		{"zero_is_valid", ptr(0.0), ptr(0), 0, 0},
		{"out_of_range", ptr(7.5), ptr(-3), 5.0, 0},
		{"nan", ptr(math.NaN()), nil, 5.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := catalog.Draft{
				Title:    "  Royal Stage ",
				Images:   []string{" https://a/1.jpg ", "", "  "},
				Features: []string{"LED", " ", "Floral"},
				Rating:   tt.rating,
				Reviews:  tt.reviews,
			}.Normalize()

			assert.Equal(t, "Royal Stage", draft.Title)
			assert.Equal(t, []string{"https://a/1.jpg"}, draft.Images)
			assert.Equal(t, []string{}, draft.Video)
			assert.Equal(t, []string{"LED", "Floral"}, draft.Features)
			assert.InDelta(t, tt.want, *draft.Rating, 1e-9)
			assert.Equal(t, tt.wantRev, *draft.Reviews)
		})
	}
}

/*
TestDraft_Validate enforces title, category and at least one image.
*/
func TestDraft_Validate(t *testing.T) {
	valid := catalog.Draft{Title: "Royal Stage", Category: catalog.CategoryStageDecor, Images: []string{"https://a/1.jpg"}}

	tests := []struct {
		name   string
		mutate func(*catalog.Draft)
		field  string
	}{
		{"valid", func(*catalog.Draft) {}, ""},
		{"blank_title", func(d *catalog.Draft) { d.Title = "" }, catalog.FieldTitle},
		{"missing_category", func(d *catalog.Draft) { d.Category = "" }, catalog.FieldCategory},
		{"unknown_category", func(d *catalog.Draft) { d.Category = "Funeral" }, catalog.FieldCategory},
		{"no_images", func(d *catalog.Draft) { d.Images = nil; d.Video = []string{"https://a/v.mp4"} }, catalog.FieldImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := valid
			tt.mutate(&draft)

			err := draft.Normalize().Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			require.NotEmpty(t, appError.Details)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestRemovedMedia reports only URLs that disappeared.
*/
func TestRemovedMedia(t *testing.T) {
	before := &catalog.Item{
		Images: []string{"https://a/1.jpg", "https://a/2.jpg"},
		Video:  []string{"https://a/v.mp4"},
	}

	removed := catalog.RemovedMedia(before, catalog.Draft{Images: []string{"https://a/2.jpg"}, Video: []string{"https://a/v.mp4"}})
	assert.Equal(t, []string{"https://a/1.jpg"}, removed)

	removed = catalog.RemovedMedia(before, catalog.Draft{Images: []string{"https://a/3.jpg"}})
	assert.Equal(t, []string{"https://a/1.jpg", "https://a/2.jpg", "https://a/v.mp4"}, removed)

	assert.Empty(t, catalog.RemovedMedia(before, before.Draft()))
}

/*
TestItem_SummarizeFeatures truncates with a hidden count.
*/
func TestItem_SummarizeFeatures(t *testing.T) {
	item := &catalog.Item{Features: []string{"LED", "Floral", "Drapes", "Carpet"}}

	summary := item.SummarizeFeatures(3)
	assert.Equal(t, []string{"LED", "Floral", "Drapes"}, summary.Shown)
	assert.Equal(t, 1, summary.Hidden)

	summary = item.SummarizeFeatures(10)
	assert.Len(t, summary.Shown, 4)
	assert.Zero(t, summary.Hidden)
}

/*
TestTimeline orders media per view.
*/
func TestTimeline(t *testing.T) {
	item := &catalog.Item{Images: []string{"a", "b"}, Video: []string{"v1"}}

	gallery := item.Timeline(catalog.ImagesFirst)
	require.Len(t, gallery, 3)
	assert.Equal(t, catalog.MediaRef{Kind: assetstore.KindImage, URL: "a", Index: 0}, gallery[0])
	assert.Equal(t, catalog.MediaRef{Kind: assetstore.KindVideo, URL: "v1", Index: 0}, gallery[2])

	detail := item.Timeline(catalog.VideosFirst)
	assert.True(t, detail[0].IsVideo())
	assert.Equal(t, "b", detail[2].URL)
	assert.Equal(t, 1, detail[2].Index)

	assert.Empty(t, (&catalog.Item{}).Timeline(catalog.ImagesFirst))
}

/*
TestCategory_IsValid accepts the fixed set only.
*/
func TestCategory_IsValid(t *testing.T) {
	assert.True(t, catalog.CategoryBabyShower.IsValid())
	assert.False(t, catalog.Category("baby shower").IsValid())
	assert.Len(t, catalog.Categories, 14)
}
