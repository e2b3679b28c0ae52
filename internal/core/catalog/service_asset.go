// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/joycdecor/joycdecor/internal/platform/apperr"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
)

// # Media

/*
UploadAsset sniffs, validates and stores one media file.

Photos larger than the configured dimension are downscaled first. A failure
on the asset host surfaces as BAD_GATEWAY so the client can tell it apart
from a rejected file.
*/
func (service *Service) UploadAsset(context context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error) {
	file, err := assetstore.Inspect(kind, fileName, data)
	if err != nil {
		return assetstore.Asset{}, err
	}

	optimized, resized, err := assetstore.Optimize(file, constants.MaxImageDimension)
	if err != nil {
		// A photo the decoder cannot read is still uploaded as-is.
		service.logger.WarnContext(context, "asset_optimize_skipped", slog.String("file", fileName), slog.Any("error", err))
	} else if resized {
		service.logger.InfoContext(context, "asset_downscaled",
			slog.String("file", fileName),
			slog.Int("from_bytes", len(file.Data)),
			slog.Int("to_bytes", len(optimized.Data)),
		)
		file = optimized
	}

	asset, err := service.assets.Upload(context, file)
	if err != nil {
		return assetstore.Asset{}, apperr.BadGateway("Media upload failed", err)
	}

	service.logger.InfoContext(context, "asset_uploaded",
		slog.String("public_id", asset.PublicID),
		slog.String("kind", string(asset.Kind)),
	)
	return asset, nil
}

// DeleteAsset removes one asset from the host. Already-gone assets succeed.
func (service *Service) DeleteAsset(context context.Context, publicID string, kind assetstore.Kind) error {
	if err := service.assets.Delete(context, publicID, kind); err != nil {
		return apperr.BadGateway("Media delete failed", err)
	}

	service.logger.InfoContext(context, "asset_deleted",
		slog.String("public_id", publicID),
		slog.String("kind", string(kind)),
	)
	return nil
}

// AssetLocator describes the hosted URL shape.
func (service *Service) AssetLocator() assetstore.Locator {
	return service.assets.Locator()
}
