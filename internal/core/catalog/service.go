// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/pkg/pointer"
	"github.com/joycdecor/joycdecor/pkg/slug"
	"github.com/joycdecor/joycdecor/pkg/uuid"
)

// # Service Layer

// Service is the server-side authority for catalog items and their media.
type Service struct {
	repository Repository
	cache      ListCache
	assets     assetstore.Store
	logger     *slog.Logger
}

// NewService wires the service. cache may be nil to disable list caching.
func NewService(repository Repository, cache ListCache, assets assetstore.Store, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, assets: assets, logger: logger}
}

// # Lookups

// Page is one gallery page.
type Page struct {
	Items []*Item `json:"items"`
	Total int     `json:"total"`
}

/*
ListItems returns one page of items, newest first.

Pages are served from the list cache when present; every write invalidates it.
*/
func (service *Service) ListItems(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, 0, apperr.ValidationError("Unknown category", apperr.FieldError{Field: FieldCategory, Message: "Unknown category"})
	}

	cacheKey := fmt.Sprintf("%s:%d:%d", filter.Category, limit, offset)
	if service.cache != nil {
		if payload, ok := service.cache.Get(context, cacheKey); ok {
			var page Page
			if err := json.Unmarshal(payload, &page); err == nil {
				return page.Items, page.Total, nil
			}
		}
	}

	items, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if service.cache != nil {
		if payload, err := json.Marshal(Page{Items: items, Total: total}); err == nil {
			service.cache.Set(context, cacheKey, payload)
		}
	}

	return items, total, nil
}

// GetItem resolves an identifier as a UUID first, otherwise as a slug.
func (service *Service) GetItem(context context.Context, identifier string) (*Item, error) {
	if uuid.Valid(identifier) {
		return service.repository.FindByID(context, identifier)
	}
	return service.repository.FindBySlug(context, identifier)
}

// # Management

/*
CreateItem validates and persists a new item.

Parameters:
  - draft: the submitted fields (normalized here)
  - createdBy: user id of the acting admin, may be empty

Returns:
  - *Item: the persisted record with its id, slug and timestamps
  - error: VALIDATION_ERROR or persistence errors
*/
func (service *Service) CreateItem(context context.Context, draft Draft, createdBy string) (*Item, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := draft.ValidateURLs(); err != nil {
		return nil, err
	}

	item := &Item{ID: uuid.New(), CreatedBy: createdBy}
	apply(item, draft)

	if err := service.repository.Create(context, item); err != nil {
		return nil, err
	}
	service.invalidate(context)

	service.logger.InfoContext(context, "item_created",
		slog.String("item_id", item.ID),
		slog.String("title", item.Title),
		slog.Int("media", len(item.Images)+len(item.Video)),
	)
	return item, nil
}

// UpdateItem replaces every editable field of an existing item.
func (service *Service) UpdateItem(context context.Context, id string, draft Draft) (*Item, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceItem)
	}

	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := draft.ValidateURLs(); err != nil {
		return nil, err
	}

	item := &Item{ID: id}
	apply(item, draft)

	if err := service.repository.Update(context, item); err != nil {
		return nil, err
	}
	service.invalidate(context)

	service.logger.InfoContext(context, "item_updated", slog.String("item_id", id))
	return item, nil
}

// DeleteItem removes an item record. Media cleanup is the caller's job.
func (service *Service) DeleteItem(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceItem)
	}

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}
	service.invalidate(context)

	service.logger.InfoContext(context, "item_deleted", slog.String("item_id", id))
	return nil
}

func (service *Service) invalidate(context context.Context) {
	if service.cache != nil {
		service.cache.Invalidate(context)
	}
}

// apply copies a normalized draft onto the item and derives its slug.
// The slug ends with part of the id so equal titles never collide.
func apply(item *Item, draft Draft) {
	item.Title = draft.Title
	item.Category = draft.Category
	item.Images = draft.Images
	item.Video = draft.Video
	item.Description = draft.Description
	item.Features = draft.Features
	item.Rating = pointer.Fallback(draft.Rating, DefaultRating)
	item.Reviews = pointer.Val(draft.Reviews)

	suffix := item.ID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	base := slug.From(draft.Title)
	if base == "" {
		base = "item"
	}
	item.Slug = base + "-" + suffix
}
