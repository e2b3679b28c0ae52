// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joycdecor/joycdecor/internal/platform/constants"
	"github.com/joycdecor/joycdecor/internal/platform/ctxutil"
	requestutil "github.com/joycdecor/joycdecor/internal/platform/request"
	"github.com/joycdecor/joycdecor/internal/platform/respond"
)

// Handler serves the public lead endpoints.
type Handler struct {
	linker Linker
}

// NewHandler constructs a lead [Handler].
func NewHandler(linker Linker) *Handler {
	return &Handler{linker: linker}
}

// Routes returns the /leads router.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/contact", handler.contact)
	router.Get("/whatsapp", handler.whatsapp)

	return router
}

// contact validates the form and answers {redirect_url}.
func (handler *Handler) contact(writer http.ResponseWriter, request *http.Request) {
	var form ContactForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := form.Validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.Logger(request.Context()).InfoContext(request.Context(), "lead_contact_submitted",
		slog.String("event_type", orDefault(form.EventType)),
	)

	respond.OK(writer, map[string]string{constants.FieldURL: handler.linker.URL(form.Text())})
}

// whatsapp redirects to a chat with the general greeting.
func (handler *Handler) whatsapp(writer http.ResponseWriter, request *http.Request) {
	respond.Redirect(writer, request, handler.linker.URL(GeneralMessage))
}
