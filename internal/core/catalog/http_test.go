// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/core/lead"
	"github.com/joycdecor/joycdecor/internal/platform/ctxutil"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
)

// withRole injects claims the way middleware.Authenticate would.
func withRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if role != "" {
				claims := &sec.AuthClaims{UserID: "admin-1", Role: string(role)}
				request = request.WithContext(ctxutil.WithClaims(request.Context(), claims))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newRouter(role sec.UserRole) (http.Handler, *memoryRepository, *fakeStore) {
	service, repository, _, store := newService()
	handler := catalog.NewHandler(service, lead.NewLinker("918072287335"))

	router := chi.NewRouter()
	router.Use(withRole(role))
	router.Mount("/items", handler.Routes())
	router.Mount("/assets", handler.AssetRoutes())
	router.Get("/categories", handler.ListCategories)
	return router, repository, store
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_ItemLifecycle drives create, read, list, replace and delete over HTTP.
*/
func TestHandler_ItemLifecycle(t *testing.T) {
	router, repository, _ := newRouter(sec.RoleAdmin)

	created := serve(router, http.MethodPost, "/items",
		`{"title":"Royal Mandap","category":"Wedding","images":["https://res.cloudinary.com/joycdecor/image/upload/v1/a.jpg"]}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var envelope struct {
		Data catalog.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))
	item := envelope.Data
	assert.Equal(t, "admin-1", item.CreatedBy)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/items/"+item.ID, "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/items/"+item.Slug, "").Code)

	listed := serve(router, http.MethodGet, "/items?category=Wedding&limit=5", "")
	require.Equal(t, http.StatusOK, listed.Code)
	var page struct {
		Data []catalog.Item `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Meta.Total)
	assert.Equal(t, 5, page.Meta.Limit)

	updated := serve(router, http.MethodPut, "/items/"+item.ID,
		`{"title":"Royal Mandap XL","category":"Wedding","images":["https://res.cloudinary.com/joycdecor/image/upload/v1/b.jpg"],"rating":4.5}`)
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	assert.Equal(t, 4.5, repository.items[item.ID].Rating)

	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/items/"+item.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/items/"+item.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/items/"+item.ID, "").Code)
}

/*
TestHandler_CreateValidation answers 400 for missing title or category.
*/
func TestHandler_CreateValidation(t *testing.T) {
	router, repository, _ := newRouter(sec.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/items", `{"category":"Wedding","images":["https://a/1.jpg"]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/items", `{"title":"x","images":["https://a/1.jpg"]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/items", `{not json`).Code)
	assert.Empty(t, repository.items)
}

/*
TestHandler_AdminGate keeps writes away from members and visitors.
*/
func TestHandler_AdminGate(t *testing.T) {
	body := `{"title":"x","category":"Wedding","images":["https://a/1.jpg"]}`

	member, _, _ := newRouter(sec.RoleMember)
	assert.Equal(t, http.StatusForbidden, serve(member, http.MethodPost, "/items", body).Code)
	assert.Equal(t, http.StatusOK, serve(member, http.MethodGet, "/items", "").Code)

	visitor, _, _ := newRouter("")
	assert.Equal(t, http.StatusUnauthorized, serve(visitor, http.MethodPost, "/items", body).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(visitor, http.MethodPost, "/assets/delete", `{"publicId":"x"}`).Code)
	assert.Equal(t, http.StatusOK, serve(visitor, http.MethodGet, "/assets/locator", "").Code)
	assert.Equal(t, http.StatusOK, serve(visitor, http.MethodGet, "/categories", "").Code)
}

/*
TestHandler_Enquiry redirects to WhatsApp with the item title.
*/
func TestHandler_Enquiry(t *testing.T) {
	router, _, _ := newRouter(sec.RoleAdmin)

	created := serve(router, http.MethodPost, "/items", `{"title":"Balloon Arch","category":"Balloon Decor","images":["https://a/1.jpg"]}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var envelope struct {
		Data catalog.Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))

	redirect := serve(router, http.MethodGet, "/items/"+envelope.Data.ID+"/enquiry", "")
	assert.Equal(t, http.StatusFound, redirect.Code)
	assert.Contains(t, redirect.Header().Get("Location"), "https://wa.me/918072287335?text=Hi%21%20I%27m%20interested%20in%20%22Balloon%20Arch%22")
}

/*
TestHandler_Assets covers multipart upload and delete by URL.
*/
func TestHandler_Assets(t *testing.T) {
	router, _, store := newRouter(sec.RoleAdmin)

	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, blank(4)))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("kind", "image"))
	part, err := writer.CreateFormFile("file", "stage.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/assets", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Len(t, store.uploads, 1)

	deleted := serve(router, http.MethodPost, "/assets/delete", `{"url":"https://res.cloudinary.com/joycdecor/video/upload/v9/reel.mp4"}`)
	require.Equal(t, http.StatusOK, deleted.Code, deleted.Body.String())

	byID := serve(router, http.MethodPost, "/assets/delete", `{"publicId":"stage"}`)
	require.Equal(t, http.StatusOK, byID.Code)
	assert.Equal(t, []string{"video:reel", "image:stage"}, store.deletes)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/assets/delete", `{"url":"https://example.com/x.jpg"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, "/assets/delete", `{"publicId":"x","resourceType":"raw"}`).Code)
}

func blank(size int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, size, size))
}
