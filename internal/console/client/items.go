// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/pkg/pagination"
)

// # Items

// Create posts a new item.
func (client *Client) Create(context context.Context, draft catalog.Draft) (*catalog.Item, error) {
	request, err := jsonCall(http.MethodPost, "/items", draft)
	if err != nil {
		return nil, err
	}

	var item catalog.Item
	if err := client.do(context, request, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Read fetches one item by id or slug.
func (client *Client) Read(context context.Context, identifier string) (*catalog.Item, error) {
	var item catalog.Item
	if err := client.do(context, call{method: http.MethodGet, path: "/items/" + url.PathEscape(identifier)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// pageEnvelope is the paginated listing body.
type pageEnvelope struct {
	Data []*catalog.Item `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// List walks every page of /items, most recent first.
func (client *Client) List(context context.Context) ([]*catalog.Item, error) {
	var items []*catalog.Item

	for page := 1; ; page++ {
		path := fmt.Sprintf("/items?page=%d&limit=%d", page, pagination.MaxLimit)

		var envelope pageEnvelope
		if err := client.do(context, call{method: http.MethodGet, path: path, whole: true}, &envelope); err != nil {
			return nil, err
		}
		items = append(items, envelope.Data...)

		if page >= envelope.Meta.TotalPages || len(envelope.Data) == 0 {
			return items, nil
		}
	}
}

// Update replaces an item.
func (client *Client) Update(context context.Context, id string, draft catalog.Draft) (*catalog.Item, error) {
	request, err := jsonCall(http.MethodPut, "/items/"+url.PathEscape(id), draft)
	if err != nil {
		return nil, err
	}

	var item catalog.Item
	if err := client.do(context, request, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item record. Its media is not touched.
func (client *Client) Delete(context context.Context, id string) error {
	return client.do(context, call{method: http.MethodDelete, path: "/items/" + url.PathEscape(id)}, nil)
}

// Categories lists the fixed category set.
func (client *Client) Categories(context context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := client.do(context, call{method: http.MethodGet, path: "/categories"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
