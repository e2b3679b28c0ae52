// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "github.com/joycdecor/joycdecor/internal/platform/assetstore"

// Ordering decides whether a view lists images or videos first.
type Ordering int

const (
	// ImagesFirst is used by gallery cards.
	ImagesFirst Ordering = iota
	// VideosFirst is used by the item detail view.
	VideosFirst
)

// MediaRef is one entry of an item's media timeline.
type MediaRef struct {
	Kind assetstore.Kind `json:"kind"`
	URL  string          `json:"url"`
	// Index is the position within the item's Images or Video slice.
	Index int `json:"index"`
}

// IsVideo reports whether the entry is a video.
func (ref MediaRef) IsVideo() bool {
	return ref.Kind == assetstore.KindVideo
}

// Timeline concatenates the item's images and videos in the given order.
// A view must use the same ordering for display and navigation.
func Timeline(images, videos []string, order Ordering) []MediaRef {
	timeline := make([]MediaRef, 0, len(images)+len(videos))

	appendAll := func(kind assetstore.Kind, urls []string) {
		for index, url := range urls {
			timeline = append(timeline, MediaRef{Kind: kind, URL: url, Index: index})
		}
	}

	if order == VideosFirst {
		appendAll(assetstore.KindVideo, videos)
		appendAll(assetstore.KindImage, images)
	} else {
		appendAll(assetstore.KindImage, images)
		appendAll(assetstore.KindVideo, videos)
	}

	return timeline
}

// Timeline returns the item's media timeline.
func (item *Item) Timeline(order Ordering) []MediaRef {
	return Timeline(item.Images, item.Video, order)
}
