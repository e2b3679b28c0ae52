// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
	"github.com/joycdecor/joycdecor/internal/platform/constants"
	"github.com/joycdecor/joycdecor/internal/platform/middleware"
	requestutil "github.com/joycdecor/joycdecor/internal/platform/request"
	"github.com/joycdecor/joycdecor/internal/platform/respond"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/internal/platform/validate"
)

// AssetRoutes returns the /assets router.
//
//   - GET /locator (Public): the hosted URL prefix clients use for host checks.
//   - POST / (Admin): multipart upload with fields "file" and "kind".
//   - POST /delete (Admin): destroy by {publicId, resourceType} or by {url};
//     resourceType defaults to "image".
func (handler *Handler) AssetRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/locator", handler.assetLocator)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.uploadAsset)
		admin.Post("/delete", handler.deleteAsset)
	})

	return router
}

func (handler *Handler) assetLocator(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.AssetLocator())
}

func (handler *Handler) uploadAsset(writer http.ResponseWriter, request *http.Request) {
	data, fileName, err := requestutil.FormFile(request, "file", constants.MaxVideoBytes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind, ok := assetstore.ParseKind(request.FormValue("kind"))
	if !ok {
		respond.Error(writer, request, validate.RequiredError("kind", "Must be one of: image, video"))
		return
	}

	asset, err := handler.service.UploadAsset(request.Context(), kind, fileName, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, asset)
}

// deleteAssetRequest mirrors the destroy body sent by the admin client.
type deleteAssetRequest struct {
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
	URL          string `json:"url"`
}

func (handler *Handler) deleteAsset(writer http.ResponseWriter, request *http.Request) {
	var input deleteAssetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publicID := strings.TrimSpace(input.PublicID)
	kind, kindOK := assetstore.KindImage, true
	if input.ResourceType != "" {
		kind, kindOK = assetstore.ParseKind(input.ResourceType)
	}

	if publicID == "" && input.URL != "" {
		asset, ok := handler.service.AssetLocator().Parse(input.URL)
		if !ok {
			respond.Error(writer, request, validate.RequiredError("url", "Not a hosted media URL"))
			return
		}
		publicID, kind, kindOK = asset.PublicID, asset.Kind, true
	}

	validator := &validate.Validator{}
	validator.Required("publicId", publicID)
	validator.Custom("resourceType", !kindOK, "Must be one of: image, video")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAsset(request.Context(), publicID, kind); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"result": "ok"})
}
