// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// memoryRepository is an in-memory [catalog.Repository].
type memoryRepository struct {
	mu    sync.Mutex
	items map[string]*catalog.Item
	clock time.Time
	lists int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{items: map[string]*catalog.Item{}, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (repository *memoryRepository) List(ctx context.Context, filter catalog.Filter, limit, offset int) ([]*catalog.Item, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.lists++

	var matched []*catalog.Item
	for _, item := range repository.items {
		if filter.Category == "" || item.Category == filter.Category {
			copied := *item
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	if offset >= total {
		return []*catalog.Item{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (repository *memoryRepository) FindByID(ctx context.Context, id string) (*catalog.Item, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, ok := repository.items[id]
	if !ok {
		return nil, apperr.NotFound("Item")
	}
	copied := *item
	return &copied, nil
}

func (repository *memoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Item, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, item := range repository.items {
		if item.Slug == slug {
			copied := *item
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Item")
}

func (repository *memoryRepository) Create(ctx context.Context, item *catalog.Item) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.clock = repository.clock.Add(time.Minute)
	item.CreatedAt, item.UpdatedAt = repository.clock, repository.clock
	copied := *item
	repository.items[item.ID] = &copied
	return nil
}

func (repository *memoryRepository) Update(ctx context.Context, item *catalog.Item) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.items[item.ID]
	if !ok {
		return apperr.NotFound("Item")
	}
	repository.clock = repository.clock.Add(time.Minute)
	item.CreatedAt, item.CreatedBy, item.UpdatedAt = existing.CreatedAt, existing.CreatedBy, repository.clock
	copied := *item
	repository.items[item.ID] = &copied
	return nil
}

func (repository *memoryRepository) Delete(ctx context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[id]; !ok {
		return apperr.NotFound("Item")
	}
	delete(repository.items, id)
	return nil
}

// memoryCache is an in-memory [catalog.ListCache].
type memoryCache struct {
	pages         map[string][]byte
	invalidations int
}

func newMemoryCache() *memoryCache { return &memoryCache{pages: map[string][]byte{}} }

func (cache *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, ok := cache.pages[key]
	return payload, ok
}

func (cache *memoryCache) Set(ctx context.Context, key string, payload []byte) {
	cache.pages[key] = payload
}

func (cache *memoryCache) Invalidate(ctx context.Context) {
	cache.pages = map[string][]byte{}
	cache.invalidations++
}

// fakeStore is a [assetstore.Store] recording calls.
type fakeStore struct {
	uploads  []assetstore.File
	deletes  []string
	failWith error
	locator  assetstore.Locator
}

func (store *fakeStore) Upload(ctx context.Context, file assetstore.File) (assetstore.Asset, error) {
	if store.failWith != nil {
		return assetstore.Asset{}, store.failWith
	}
	store.uploads = append(store.uploads, file)
	return assetstore.Asset{
		URL:      "https://res.cloudinary.com/joycdecor/" + string(file.Kind) + "/upload/v1/x." + file.Extension,
		Kind:     file.Kind,
		PublicID: "x",
	}, nil
}

func (store *fakeStore) Delete(ctx context.Context, publicID string, kind assetstore.Kind) error {
	if store.failWith != nil {
		return store.failWith
	}
	store.deletes = append(store.deletes, string(kind)+":"+publicID)
	return nil
}

func (store *fakeStore) Locator() assetstore.Locator { return store.locator }

var errHostDown = errors.New("host down")
