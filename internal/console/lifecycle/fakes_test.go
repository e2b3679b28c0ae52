// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/joycdecor/joycdecor/internal/console/lifecycle"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/users/auth"
)

const host = "https://res.cloudinary.com/joycdecor"

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func imageURL(name string) string { return host + "/image/upload/v1/" + name + ".jpg" }
func videoURL(name string) string { return host + "/video/upload/v1/" + name + ".mp4" }

// callLog records repository and asset calls in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (log *callLog) add(format string, args ...any) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.calls = append(log.calls, fmt.Sprintf(format, args...))
}

func (log *callLog) snapshot() []string {
	log.mu.Lock()
	defer log.mu.Unlock()
	return append([]string(nil), log.calls...)
}

func (log *callLog) reset() {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.calls = nil
}

type fakeRepository struct {
	log      *callLog
	items    map[string]*catalog.Item
	order    []string
	next     int
	failWith error
	onCreate func()
}

func newFakeRepository(log *callLog) *fakeRepository {
	return &fakeRepository{log: log, items: map[string]*catalog.Item{}}
}

func (repository *fakeRepository) seed(item catalog.Item) {
	repository.items[item.ID] = &item
	repository.order = append([]string{item.ID}, repository.order...)
}

func (repository *fakeRepository) Create(ctx context.Context, draft catalog.Draft) (*catalog.Item, error) {
	repository.log.add("repo.create")
	if repository.onCreate != nil {
		repository.onCreate()
	}
	if repository.failWith != nil {
		return nil, repository.failWith
	}
	repository.next++
	item := catalog.Item{
		ID:       fmt.Sprintf("item-%d", repository.next),
		Title:    draft.Title,
		Category: draft.Category,
		Images:   draft.Images,
		Video:    draft.Video,
		Rating:   *draft.Rating,
	}
	repository.seed(item)
	return &item, nil
}

func (repository *fakeRepository) Read(ctx context.Context, id string) (*catalog.Item, error) {
	repository.log.add("repo.read:%s", id)
	item, ok := repository.items[id]
	if !ok {
		return nil, apperr.NotFound("Item")
	}
	copied := *item
	return &copied, nil
}

func (repository *fakeRepository) List(ctx context.Context) ([]*catalog.Item, error) {
	repository.log.add("repo.list")
	items := make([]*catalog.Item, 0, len(repository.order))
	for _, id := range repository.order {
		copied := *repository.items[id]
		items = append(items, &copied)
	}
	return items, nil
}

func (repository *fakeRepository) Update(ctx context.Context, id string, draft catalog.Draft) (*catalog.Item, error) {
	repository.log.add("repo.update:%s", id)
	if repository.failWith != nil {
		return nil, repository.failWith
	}
	item, ok := repository.items[id]
	if !ok {
		return nil, apperr.NotFound("Item")
	}
	item.Title, item.Category, item.Images, item.Video = draft.Title, draft.Category, draft.Images, draft.Video
	copied := *item
	return &copied, nil
}

func (repository *fakeRepository) Delete(ctx context.Context, id string) error {
	repository.log.add("repo.delete:%s", id)
	if repository.failWith != nil {
		return repository.failWith
	}
	if _, ok := repository.items[id]; !ok {
		return apperr.NotFound("Item")
	}
	delete(repository.items, id)
	return nil
}

type fakeAssets struct {
	log         *callLog
	failDeletes bool
	failUploads bool
}

func (assets *fakeAssets) UploadAsset(ctx context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error) {
	assets.log.add("asset.upload:%s", fileName)
	if assets.failUploads {
		return assetstore.Asset{}, errors.New("host unavailable")
	}
	return assetstore.Asset{URL: host + "/" + string(kind) + "/upload/v1/" + fileName, Kind: kind, PublicID: fileName}, nil
}

func (assets *fakeAssets) DeleteAsset(ctx context.Context, publicID string, kind assetstore.Kind) error {
	assets.log.add("asset.delete:%s:%s", kind, publicID)
	if assets.failDeletes {
		return errors.New("host unavailable")
	}
	return nil
}

type fakeVerifier struct {
	role sec.UserRole
	err  error
}

func (verifier fakeVerifier) Verify(ctx context.Context, token string) (auth.Identity, error) {
	if verifier.err != nil {
		return auth.Identity{}, verifier.err
	}
	return auth.Identity{UserID: "admin-1", Role: verifier.role}, nil
}

type harness struct {
	controller *lifecycle.Controller
	repository *fakeRepository
	assets     *fakeAssets
	log        *callLog
}

func newHarness() harness {
	log := &callLog{}
	repository := newFakeRepository(log)
	assets := &fakeAssets{log: log}

	controller, err := lifecycle.New(context.Background(), lifecycle.Dependencies{
		Repository: repository,
		Assets:     assets,
		Verifier:   fakeVerifier{role: sec.RoleAdmin},
		Token:      "token",
		Locator:    assetstore.Locator{BaseURL: host},
		Logger:     discard,
	})
	if err != nil {
		panic(err)
	}
	return harness{controller: controller, repository: repository, assets: assets, log: log}
}

func validDraft(title string, images, videos []string) catalog.Draft {
	return catalog.Draft{Title: title, Category: catalog.CategoryWedding, Images: images, Video: videos}
}
