// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
)

// # Assets

// UploadAsset sends one file as multipart form data.
func (client *Client) UploadAsset(context context.Context, kind assetstore.Kind, fileName string, data []byte) (assetstore.Asset, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("kind", string(kind)); err != nil {
		return assetstore.Asset{}, fmt.Errorf("client: build upload: %w", err)
	}
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		return assetstore.Asset{}, fmt.Errorf("client: build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return assetstore.Asset{}, fmt.Errorf("client: build upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return assetstore.Asset{}, fmt.Errorf("client: build upload: %w", err)
	}

	request := call{
		method:      http.MethodPost,
		path:        "/assets",
		body:        body.Bytes(),
		contentType: form.FormDataContentType(),
	}

	var asset assetstore.Asset
	if err := client.do(context, request, &asset); err != nil {
		return assetstore.Asset{}, err
	}
	return asset, nil
}

// DeleteAsset destroys one hosted asset by public id.
func (client *Client) DeleteAsset(context context.Context, publicID string, kind assetstore.Kind) error {
	request, err := jsonCall(http.MethodPost, "/assets/delete", map[string]string{
		"publicId":     publicID,
		"resourceType": string(kind),
	})
	if err != nil {
		return err
	}
	return client.do(context, request, nil)
}

// Locator fetches the prefix the API uses to recognise hosted media.
func (client *Client) Locator(context context.Context) (assetstore.Locator, error) {
	var locator assetstore.Locator
	if err := client.do(context, call{method: http.MethodGet, path: "/assets/locator"}, &locator); err != nil {
		return assetstore.Locator{}, err
	}
	return locator, nil
}
