// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/joycdecor/joycdecor/internal/console/cli"
	"github.com/joycdecor/joycdecor/internal/core/catalog"
	"github.com/joycdecor/joycdecor/internal/platform/assetstore"
)

const host = "https://res.cloudinary.com/joycdecor"

func hosted(kind, name string) string { return host + "/" + kind + "/upload/v1/" + name }

// fakeAPI is an in-memory stand-in for the JoycDecor REST API.
type fakeAPI struct {
	mu     sync.Mutex
	role   string
	items  map[string]*catalog.Item
	order  []string
	calls  []string
	next   int
	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{role: "admin", items: map[string]*catalog.Item{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", api.login)
	mux.HandleFunc("POST /api/v1/auth/verify", api.verify)
	mux.HandleFunc("GET /api/v1/assets/locator", func(writer http.ResponseWriter, request *http.Request) {
		reply(writer, http.StatusOK, assetstore.Locator{BaseURL: host})
	})
	mux.HandleFunc("POST /api/v1/assets", api.upload)
	mux.HandleFunc("POST /api/v1/assets/delete", api.deleteAsset)
	mux.HandleFunc("GET /api/v1/items", api.list)
	mux.HandleFunc("POST /api/v1/items", api.create)
	mux.HandleFunc("GET /api/v1/items/{id}", api.read)
	mux.HandleFunc("PUT /api/v1/items/{id}", api.update)
	mux.HandleFunc("DELETE /api/v1/items/{id}", api.remove)

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func reply(writer http.ResponseWriter, status int, data any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]any{"data": data})
}

func fail(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{"error": message, "code": code})
}

func (api *fakeAPI) record(format string, args ...any) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.calls = append(api.calls, fmt.Sprintf(format, args...))
}

func (api *fakeAPI) snapshot() []string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]string(nil), api.calls...)
}

func (api *fakeAPI) seed(item catalog.Item) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.items[item.ID] = &item
	api.order = append([]string{item.ID}, api.order...)
}

func (api *fakeAPI) setRole(role string) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.role = role
}

func (api *fakeAPI) currentRole() string {
	api.mu.Lock()
	defer api.mu.Unlock()
	return api.role
}

func (api *fakeAPI) login(writer http.ResponseWriter, request *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(request.Body).Decode(&body)
	if body["password"] != "secret1" {
		fail(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
		return
	}
	reply(writer, http.StatusOK, map[string]any{
		"token": "tok-" + api.currentRole(),
		"user":  map[string]string{"id": "admin-1", "email": body["email"], "role": api.currentRole()},
	})
}

func (api *fakeAPI) verify(writer http.ResponseWriter, request *http.Request) {
	reply(writer, http.StatusOK, map[string]string{"userId": "admin-1", "role": api.currentRole()})
}

func (api *fakeAPI) upload(writer http.ResponseWriter, request *http.Request) {
	_, header, err := request.FormFile("file")
	if err != nil {
		fail(writer, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	kind := request.FormValue("kind")
	api.record("upload:%s", header.Filename)
	reply(writer, http.StatusCreated, assetstore.Asset{URL: hosted(kind, header.Filename), Kind: assetstore.Kind(kind), PublicID: header.Filename})
}

func (api *fakeAPI) deleteAsset(writer http.ResponseWriter, request *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(request.Body).Decode(&body)
	api.record("asset.delete:%s:%s", body["resourceType"], body["publicId"])
	reply(writer, http.StatusOK, map[string]string{"result": "ok"})
}

func (api *fakeAPI) list(writer http.ResponseWriter, request *http.Request) {
	api.mu.Lock()
	items := make([]*catalog.Item, 0, len(api.order))
	for _, id := range api.order {
		items = append(items, api.items[id])
	}
	api.mu.Unlock()

	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(map[string]any{
		"data": items,
		"meta": map[string]int{"page": 1, "limit": 100, "total": len(items), "total_pages": 1},
	})
}

func (api *fakeAPI) find(identifier string) (*catalog.Item, bool) {
	api.mu.Lock()
	defer api.mu.Unlock()
	if item, ok := api.items[identifier]; ok {
		return item, true
	}
	for _, item := range api.items {
		if item.Slug == identifier {
			return item, true
		}
	}
	return nil, false
}

func (api *fakeAPI) read(writer http.ResponseWriter, request *http.Request) {
	item, ok := api.find(request.PathValue("id"))
	if !ok {
		fail(writer, http.StatusNotFound, "NOT_FOUND", "Item not found")
		return
	}
	reply(writer, http.StatusOK, item)
}

func (api *fakeAPI) create(writer http.ResponseWriter, request *http.Request) {
	var draft catalog.Draft
	_ = json.NewDecoder(request.Body).Decode(&draft)
	api.record("create:%s", strings.Join(append(draft.Images, draft.Video...), ","))

	api.mu.Lock()
	api.next++
	id := fmt.Sprintf("item-%d", api.next)
	api.mu.Unlock()

	item := catalog.Item{ID: id, Slug: id, Title: draft.Title, Category: draft.Category, Images: draft.Images, Video: draft.Video}
	api.seed(item)
	reply(writer, http.StatusCreated, item)
}

func (api *fakeAPI) update(writer http.ResponseWriter, request *http.Request) {
	id := request.PathValue("id")
	var draft catalog.Draft
	_ = json.NewDecoder(request.Body).Decode(&draft)
	api.record("update:%s", id)

	item, ok := api.find(id)
	if !ok {
		fail(writer, http.StatusNotFound, "NOT_FOUND", "Item not found")
		return
	}

	api.mu.Lock()
	item.Title, item.Category, item.Images, item.Video = draft.Title, draft.Category, draft.Images, draft.Video
	copied := *item
	api.mu.Unlock()
	reply(writer, http.StatusOK, copied)
}

func (api *fakeAPI) remove(writer http.ResponseWriter, request *http.Request) {
	id := request.PathValue("id")
	api.record("delete:%s", id)

	api.mu.Lock()
	delete(api.items, id)
	api.mu.Unlock()
	writer.WriteHeader(http.StatusNoContent)
}

// # Command Runner

type session struct {
	api          *fakeAPI
	settingsPath string
}

func newSession(t *testing.T, token string) *session {
	t.Helper()
	color.NoColor = true
	for _, name := range []string{"DECOR_TOKEN", "DECOR_API_URL", "DATABASE_URL"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if token != "" {
		require.NoError(t, cli.Settings{Token: token}.Save(path))
	}
	return &session{api: newFakeAPI(t), settingsPath: path}
}

// run executes decorctl with stdin and returns stdout, stderr and the error.
func (session *session) run(stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	app := &cli.App{
		Stdin:      strings.NewReader(stdin),
		Stdout:     &stdout,
		Stderr:     &stderr,
		HTTPClient: session.api.server.Client(),
	}

	command := app.Command()
	command.SetArgs(append([]string{"--config", session.settingsPath, "--api-url", session.api.server.URL + "/api/v1"}, args...))
	err := command.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
