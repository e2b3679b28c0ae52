// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joycdecor/joycdecor/internal/platform/middleware"
	requestutil "github.com/joycdecor/joycdecor/internal/platform/request"
	"github.com/joycdecor/joycdecor/internal/platform/respond"
	"github.com/joycdecor/joycdecor/internal/platform/sec"
	"github.com/joycdecor/joycdecor/pkg/pagination"
)

// EnquiryLinker builds the WhatsApp enquiry link for an item title.
type EnquiryLinker interface {
	EnquiryURL(title string) string
}

// # Handler Implementation

// Handler implements the HTTP layer for items, media and categories.
type Handler struct {
	service *Service
	enquiry EnquiryLinker
}

// NewHandler constructs a catalog [Handler].
func NewHandler(service *Service, enquiry EnquiryLinker) *Handler {
	return &Handler{service: service, enquiry: enquiry}
}

// Routes returns the /items router.
//
//   - Gallery (Public): listing, detail and enquiry redirect.
//   - Management (Admin): create, replace and delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listItems)
	router.Get("/{identifier}", handler.getItem)
	router.Get("/{identifier}/enquiry", handler.enquire)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createItem)
		admin.Put("/{id}", handler.updateItem)
		admin.Delete("/{id}", handler.deleteItem)
	})

	return router
}

// ListCategories serves GET /categories.
func (handler *Handler) ListCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Categories)
}

// # Gallery

func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Category: Category(requestutil.Query(request, "category"))}

	items, total, err := handler.service.ListItems(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetItem(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

// enquire redirects to a WhatsApp chat prefilled with the item title.
func (handler *Handler) enquire(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetItem(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Redirect(writer, request, handler.enquiry.EnquiryURL(item.Title))
}

// # Management

func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	createdBy := ""
	if claims := requestutil.Claims(request); claims != nil {
		createdBy = claims.UserID
	}

	item, err := handler.service.CreateItem(request.Context(), draft, createdBy)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	var draft Draft
	if err := requestutil.DecodeJSON(request, &draft); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateItem(request.Context(), requestutil.Param(request, "id"), draft)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteItem(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
