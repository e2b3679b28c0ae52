// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Filter narrows a gallery listing.
type Filter struct {
	// Category is empty for "all categories".
	Category Category
}

// Repository is the persistence contract for items. Listings are always
// ordered by creation time, newest first.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error)
	FindByID(context context.Context, id string) (*Item, error)
	FindBySlug(context context.Context, slug string) (*Item, error)
	Create(context context.Context, item *Item) error

	// Update replaces every editable field of the item with the given ID and
	// refreshes its timestamps from the database.
	Update(context context.Context, item *Item) error
	Delete(context context.Context, id string) error
}

// ListCache stores serialized gallery pages.
type ListCache interface {
	Get(context context.Context, key string) ([]byte, bool)
	Set(context context.Context, key string, payload []byte)
	// Invalidate drops every cached page.
	Invalidate(context context.Context)
}
