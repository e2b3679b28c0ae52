// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joycdecor/joycdecor/internal/console/lifecycle"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
)

/*
TestNew_AdminGate only builds a controller for admin sessions.
*/
func TestNew_AdminGate(t *testing.T) {
	rejected := apperr.Unauthorized("Invalid or expired token")

	tests := []struct {
		name     string
		verifier fakeVerifier
		wantErr  error
	}{
		{"admin", fakeVerifier{role: sec.RoleAdmin}, nil},
		{"member", fakeVerifier{role: sec.RoleMember}, lifecycle.ErrNotAdmin},
		{"bad_token", fakeVerifier{err: rejected}, rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, err := lifecycle.New(context.Background(), lifecycle.Dependencies{
				Repository: newFakeRepository(&callLog{}),
				Assets:     &fakeAssets{log: &callLog{}},
				Verifier:   tt.verifier,
				Logger:     discard,
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, controller)
				return
			}
			require.NoError(t, err)
			assert.True(t, controller.Identity().IsAdmin())
			controller.Close()
		})
	}
}

/*
TestController_Create swaps the pending row for the persisted record.
*/
func TestController_Create(t *testing.T) {
	h := newHarness()
	defer h.controller.Close()

	h.repository.seed(catalog.Item{ID: "old", Title: "Old", Images: []string{imageURL("old")}})
	require.NoError(t, h.controller.Load(context.Background()))

	var during []lifecycle.Entry
	h.repository.onCreate = func() { during = h.controller.List().Entries() }

	item, err := h.controller.Create(context.Background(), validDraft("  Royal Mandap ", []string{imageURL("a")}, []string{videoURL("v")}))
	require.NoError(t, err)
	assert.Equal(t, "Royal Mandap", item.Title)
	assert.Equal(t, catalog.DefaultRating, item.Rating)

	require.Len(t, during, 2)
	assert.True(t, during[0].IsPending(), "optimistic row is shown first")
	assert.Equal(t, "Royal Mandap", during[0].Item.Title)

	entries := h.controller.List().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, lifecycle.PersistedRef{ID: item.ID}, entries[0].Ref)
	assert.Equal(t, lifecycle.PersistedRef{ID: "old"}, entries[1].Ref)
}

/*
TestController_Create_Rejects fails locally without touching the repository.
*/
func TestController_Create_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		draft catalog.Draft
	}{
		{"blank_title", validDraft("   ", []string{imageURL("a")}, nil)},
		{"no_image", validDraft("Arch", nil, []string{videoURL("v")})},
		{"unknown_category", catalog.Draft{Title: "Arch", Category: "Picnic", Images: []string{imageURL("a")}}},
		{"foreign_image", validDraft("Arch", []string{imageURL("a"), "https://example.com/b.jpg"}, nil)},
		{"foreign_video", validDraft("Arch", []string{imageURL("a")}, []string{"https://youtube.com/watch?v=1"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			defer h.controller.Close()

			_, err := h.controller.Create(context.Background(), tt.draft)

			var validation *lifecycle.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Empty(t, h.log.snapshot(), "no repository call")
			assert.Zero(t, h.controller.List().Len())
		})
	}
}

/*
TestController_Create_Rollback removes the pending row when the repository rejects it.
*/
func TestController_Create_Rollback(t *testing.T) {
	h := newHarness()
	defer h.controller.Close()

	var pending lifecycle.Ref
	h.repository.onCreate = func() { pending = h.controller.List().Entries()[0].Ref }
	h.repository.failWith = apperr.Internal(errors.New("db down"))

	_, err := h.controller.Create(context.Background(), validDraft("Arch", []string{imageURL("a")}, nil))

	var persistence *lifecycle.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "create", persistence.Op)

	require.IsType(t, lifecycle.PendingRef{}, pending)
	_, found := h.controller.List().Find(pending)
	assert.False(t, found)
	assert.Zero(t, h.controller.List().Len())
}

/*
TestController_Update_CleansRemovedMedia deletes exactly the dropped URL,
whether or not the host accepts the delete.
*/
func TestController_Update_CleansRemovedMedia(t *testing.T) {
	for _, failing := range []bool{false, true} {
		h := newHarness()
		h.assets.failDeletes = failing

		h.repository.seed(catalog.Item{ID: "item-1", Title: "Arch", Category: catalog.CategoryWedding, Images: []string{imageURL("keep"), imageURL("drop")}})
		require.NoError(t, h.controller.Load(context.Background()))
		h.log.reset()

		item, err := h.controller.Update(context.Background(), "item-1", validDraft("Arch v2", []string{imageURL("keep"), " "}, nil))
		require.NoError(t, err, "cleanup failures never surface")
		assert.Equal(t, []string{imageURL("keep")}, item.Images)

		entry, ok := h.controller.List().Find(lifecycle.PersistedRef{ID: "item-1"})
		require.True(t, ok)
		assert.Equal(t, "Arch v2", entry.Item.Title)

		h.controller.Close()
		assert.Equal(t, []string{"repo.update:item-1", "asset.delete:image:drop"}, h.log.snapshot(), "failing=%v", failing)
	}
}

/*
TestController_Update_SkipsHostCheck accepts media the create path would refuse.
*/
func TestController_Update_SkipsHostCheck(t *testing.T) {
	h := newHarness()
	defer h.controller.Close()

	h.repository.seed(catalog.Item{ID: "item-1", Title: "Arch", Category: catalog.CategoryWedding, Images: []string{imageURL("a")}})

	item, err := h.controller.Update(context.Background(), "item-1", validDraft("Arch", []string{imageURL("a"), "https://example.com/b.jpg"}, nil))
	require.NoError(t, err)
	assert.Len(t, item.Images, 2)
	assert.Equal(t, []string{"repo.read:item-1", "repo.update:item-1"}, h.log.snapshot(), "previous media read from the repository")
}

/*
TestController_Update_Failure leaves local state and assets alone.
*/
func TestController_Update_Failure(t *testing.T) {
	h := newHarness()

	h.repository.seed(catalog.Item{ID: "item-1", Title: "Arch", Category: catalog.CategoryWedding, Images: []string{imageURL("a"), imageURL("b")}})
	require.NoError(t, h.controller.Load(context.Background()))
	h.log.reset()
	h.repository.failWith = apperr.Internal(errors.New("db down"))

	_, err := h.controller.Update(context.Background(), "item-1", validDraft("Arch v2", []string{imageURL("a")}, nil))
	var persistence *lifecycle.PersistenceError
	require.ErrorAs(t, err, &persistence)

	entry, _ := h.controller.List().Find(lifecycle.PersistedRef{ID: "item-1"})
	assert.Equal(t, "Arch", entry.Item.Title)

	h.controller.Close()
	assert.Equal(t, []string{"repo.update:item-1"}, h.log.snapshot())

	_, err = h.controller.Update(context.Background(), "item-1", validDraft("", nil, nil))
	require.ErrorAs(t, err, new(*lifecycle.ValidationError))
}

/*
TestController_Delete deletes the record before any of its three assets.
*/
func TestController_Delete(t *testing.T) {
	h := newHarness()

	h.repository.seed(catalog.Item{
		ID: "item-1", Title: "Arch", Category: catalog.CategoryWedding,
		Images: []string{imageURL("a"), imageURL("b")},
		Video:  []string{videoURL("v")},
	})
	h.repository.seed(catalog.Item{ID: "item-2", Title: "Stage", Images: []string{imageURL("c")}})
	require.NoError(t, h.controller.Load(context.Background()))
	h.log.reset()

	var asked string
	err := h.controller.Delete(context.Background(), "item-1", func(item catalog.Item) bool {
		asked = item.Title
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "Arch", asked)

	_, found := h.controller.List().Find(lifecycle.PersistedRef{ID: "item-1"})
	assert.False(t, found, "gone locally as soon as the repository delete succeeds")
	assert.Equal(t, 1, h.controller.List().Len())

	h.controller.Cleaner().Wait()
	calls := h.log.snapshot()
	require.Len(t, calls, 4)
	assert.Equal(t, "repo.delete:item-1", calls[0])
	assert.ElementsMatch(t, []string{
		"asset.delete:image:a",
		"asset.delete:image:b",
		"asset.delete:video:v",
	}, calls[1:])
	h.controller.Close()
}

/*
TestController_Delete_NeedsConfirmation makes no call when the user declines.
*/
func TestController_Delete_NeedsConfirmation(t *testing.T) {
	h := newHarness()
	defer h.controller.Close()

	h.repository.seed(catalog.Item{ID: "item-1", Title: "Arch", Images: []string{imageURL("a")}})
	require.NoError(t, h.controller.Load(context.Background()))
	h.log.reset()

	err := h.controller.Delete(context.Background(), "item-1", func(catalog.Item) bool { return false })
	assert.ErrorIs(t, err, lifecycle.ErrCancelled)

	err = h.controller.Delete(context.Background(), "item-1", nil)
	assert.ErrorIs(t, err, lifecycle.ErrCancelled)

	assert.Empty(t, h.log.snapshot())
	assert.Equal(t, 1, h.controller.List().Len())
}

/*
TestController_Delete_Failure keeps the row and skips cleanup.
*/
func TestController_Delete_Failure(t *testing.T) {
	h := newHarness()

	h.repository.seed(catalog.Item{ID: "item-1", Title: "Arch", Images: []string{imageURL("a")}})
	require.NoError(t, h.controller.Load(context.Background()))
	h.log.reset()
	h.repository.failWith = apperr.Internal(errors.New("db down"))

	err := h.controller.Delete(context.Background(), "item-1", func(catalog.Item) bool { return true })
	require.ErrorAs(t, err, new(*lifecycle.PersistenceError))
	assert.Equal(t, 1, h.controller.List().Len())

	h.controller.Close()
	assert.Equal(t, []string{"repo.delete:item-1"}, h.log.snapshot())
}

/*
TestController_Upload validates locally and reports host failures per file.
*/
func TestController_Upload(t *testing.T) {
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	h := newHarness()
	defer h.controller.Close()

	asset, err := h.controller.Upload(context.Background(), assetstore.KindImage, "arch.png", encoded.Bytes())
	require.NoError(t, err)
	assert.Equal(t, assetstore.KindImage, asset.Kind)

	_, err = h.controller.Upload(context.Background(), assetstore.KindImage, "notes.txt", []byte("plain text"))
	require.ErrorAs(t, err, new(*lifecycle.ValidationError))

	_, err = h.controller.Upload(context.Background(), assetstore.KindVideo, "arch.png", encoded.Bytes())
	require.ErrorAs(t, err, new(*lifecycle.ValidationError))

	h.assets.failUploads = true
	_, err = h.controller.Upload(context.Background(), assetstore.KindImage, "arch.png", encoded.Bytes())
	var upload *lifecycle.UploadError
	require.ErrorAs(t, err, &upload)
	assert.Equal(t, "arch.png", upload.FileName)

	assert.Equal(t, []string{"asset.upload:arch.png", "asset.upload:arch.png"}, h.log.snapshot())
}
