// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lifecycle keeps a local catalog list in step with the repository
while an admin creates, edits and deletes items.

# Ordering

Every write goes to the [Repository] first. The local [List] changes only
after the repository answers, with one exception: a create shows a
[PendingRef] row immediately and removes it again if the repository rejects
the record. Media that an update or delete leaves orphaned is handed to a
[Cleaner] after the local list is updated; cleanup never blocks or fails
the write that caused it.

# Authorization

[New] refuses to build a Controller unless the session verifies as admin.
This only keeps write commands away from members; the API enforces the role
on every request.
*/
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/validate"
	"github.com/joycdecor/joycdecor/internal/users/auth"
	"github.com/joycdecor/joycdecor/pkg/pointer"
	"github.com/joycdecor/joycdecor/pkg/uuid"
)

// # Collaborators

// Repository is the authoritative catalog store.
type Repository interface {
	Create(context context.Context, draft catalog.Draft) (*catalog.Item, error)
	Read(context context.Context, id string) (*catalog.Item, error)
	// List returns every item, most recent first.
	List(context context.Context) ([]*catalog.Item, error)
	// Update replaces the whole record.
	Update(context context.Context, id string, draft catalog.Draft) (*catalog.Item, error)
	Delete(context context.Context, id string) error
}

// Assets uploads and deletes hosted media. [catalog.Service] and the REST
// client both satisfy it.
type Assets interface {
	AssetDeleter
	UploadAsset(context context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error)
}

// Verifier resolves a session token into an identity.
type Verifier interface {
	Verify(context context.Context, token string) (auth.Identity, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer func(item catalog.Item) bool

// Dependencies wires a Controller.
type Dependencies struct {
	Repository Repository
	Assets     Assets
	Verifier   Verifier
	Token      string

	// Locator recognises media hosted by the asset store.
	Locator assetstore.Locator

	// CleanupDelay spaces asset deletions; negative means the default.
	CleanupDelay time.Duration
	Logger       *slog.Logger
}

// # Controller

// Controller orchestrates catalog writes for one admin session.
type Controller struct {
	repository Repository
	assets     Assets
	locator    assetstore.Locator
	cleaner    *Cleaner
	identity   auth.Identity
	list       *List
	logger     *slog.Logger
}

/*
New verifies the session and builds a Controller.

Returns:
  - ErrNotAdmin when the token belongs to a member
  - the verifier's error when the token is rejected outright
*/
func New(context context.Context, dependencies Dependencies) (*Controller, error) {
	identity, err := dependencies.Verifier.Verify(context, dependencies.Token)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: verify session: %w", err)
	}
	if !identity.IsAdmin() {
		return nil, ErrNotAdmin
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		repository: dependencies.Repository,
		assets:     dependencies.Assets,
		locator:    dependencies.Locator,
		cleaner:    NewCleaner(dependencies.Assets, dependencies.Locator, dependencies.CleanupDelay, logger),
		identity:   identity,
		list:       &List{},
		logger:     logger,
	}, nil
}

// Identity returns the verified admin.
func (controller *Controller) Identity() auth.Identity {
	return controller.identity
}

// List returns the local catalog view.
func (controller *Controller) List() *List {
	return controller.list
}

// Cleaner exposes the background cleanup worker, mainly to wait on it.
func (controller *Controller) Cleaner() *Cleaner {
	return controller.cleaner
}

// Close drains pending cleanup.
func (controller *Controller) Close() {
	controller.cleaner.Close()
}

// Load replaces the local list with the repository's, most recent first.
func (controller *Controller) Load(context context.Context) error {
	items, err := controller.repository.List(context)
	if err != nil {
		return &PersistenceError{Op: "list", Err: err}
	}
	controller.list.reset(items)
	return nil
}

// # Create

/*
Create validates a draft, shows it optimistically and persists it.

Every image and video URL must be hosted by the asset store; a single
foreign URL aborts the create before the repository is called. On success
the pending row is replaced by the persisted record, on failure it is
removed and a [PersistenceError] is returned.
*/
func (controller *Controller) Create(context context.Context, draft catalog.Draft) (*catalog.Item, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if err := controller.checkHosted(draft); err != nil {
		return nil, &ValidationError{Err: err}
	}

	pending := PendingRef{TempID: uuid.New()}
	controller.list.prepend(Entry{Ref: pending, Item: draftItem(draft)})

	item, err := controller.repository.Create(context, draft)
	if err != nil {
		controller.list.remove(pending)
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	if !controller.list.replace(pending, Entry{Ref: PersistedRef{ID: item.ID}, Item: *item}) {
		controller.list.prepend(Entry{Ref: PersistedRef{ID: item.ID}, Item: *item})
	}
	controller.logger.InfoContext(context, "item_created", slog.String("item_id", item.ID))
	return item, nil
}

// checkHosted rejects any media URL the asset store does not serve.
func (controller *Controller) checkHosted(draft catalog.Draft) error {
	validator := &validate.Validator{}
	for _, url := range draft.Images {
		validator.Custom(catalog.FieldImages, !controller.locator.Owns(url), "Not an uploaded image: "+url)
	}
	for _, url := range draft.Video {
		validator.Custom(catalog.FieldVideo, !controller.locator.Owns(url), "Not an uploaded video: "+url)
	}
	return validator.Err()
}

// # Update

/*
Update replaces an item and schedules cleanup of the media it dropped.

Media URLs are only trimmed and de-blanked here; unlike Create there is no
hosted-URL check. The previous media set comes from the local row, or from
the repository when the item is not loaded. Cleanup is queued only after
the repository accepted the update and the local row was merged.
*/
func (controller *Controller) Update(context context.Context, id string, draft catalog.Draft) (*catalog.Item, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, &ValidationError{Err: err}
	}

	ref := PersistedRef{ID: id}
	previous, err := controller.current(context, ref)
	if err != nil {
		return nil, err
	}
	removed := catalog.RemovedMedia(&previous, draft)

	item, err := controller.repository.Update(context, id, draft)
	if err != nil {
		return nil, &PersistenceError{Op: "update", Err: err}
	}

	controller.list.replace(ref, Entry{Ref: ref, Item: *item})
	controller.cleaner.Enqueue(removed...)

	controller.logger.InfoContext(context, "item_updated", slog.String("item_id", id), slog.Int("orphaned_media", len(removed)))
	return item, nil
}

// # Delete

/*
Delete removes an item after the user confirms, then cleans up its media.

A declined confirmation returns [ErrCancelled] without any request. The
local row disappears as soon as the repository delete succeeds.
*/
func (controller *Controller) Delete(context context.Context, id string, confirm Confirmer) error {
	ref := PersistedRef{ID: id}
	item, err := controller.current(context, ref)
	if err != nil {
		return err
	}

	if confirm == nil || !confirm(item) {
		return ErrCancelled
	}

	media := item.MediaURLs()
	if err := controller.repository.Delete(context, id); err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}

	controller.list.remove(ref)
	controller.cleaner.Enqueue(media...)

	controller.logger.InfoContext(context, "item_deleted", slog.String("item_id", id), slog.Int("orphaned_media", len(media)))
	return nil
}

// current returns the local row for ref, falling back to the repository.
func (controller *Controller) current(context context.Context, ref PersistedRef) (catalog.Item, error) {
	if entry, ok := controller.list.Find(ref); ok {
		return entry.Item, nil
	}

	item, err := controller.repository.Read(context, ref.ID)
	if err != nil {
		return catalog.Item{}, &PersistenceError{Op: "read", Err: err}
	}
	return *item, nil
}

// # Upload

/*
Upload checks a file locally and sends it to the asset store.

Type and size problems are a [ValidationError] raised before any request.
A host failure is an [UploadError] for this file only.
*/
func (controller *Controller) Upload(context context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error) {
	if _, err := assetstore.Inspect(kind, fileName, data); err != nil {
		return assetstore.Asset{}, &ValidationError{Err: err}
	}

	asset, err := controller.assets.UploadAsset(context, kind, fileName, data)
	if err != nil {
		return assetstore.Asset{}, &UploadError{FileName: fileName, Err: err}
	}
	return asset, nil
}

// # Helpers

// draftItem renders a draft as the optimistic row shown while creating.
func draftItem(draft catalog.Draft) catalog.Item {
	return catalog.Item{
		Title:       draft.Title,
		Category:    draft.Category,
		Images:      draft.Images,
		Video:       draft.Video,
		Description: draft.Description,
		Features:    draft.Features,
		Rating:      pointer.Val(draft.Rating),
		Reviews:     pointer.Val(draft.Reviews),
	}
}
