package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	"taskboard/internal/service"
)

// AuthorHandler serves the read-only author endpoints.
type AuthorHandler struct {
	authors *service.AuthorService
	tracer  trace.Tracer
}

func NewAuthorHandler(authors *service.AuthorService, tracer trace.Tracer) *AuthorHandler {
	return &AuthorHandler{authors: authors, tracer: tracer}
}

func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthorHandler.List")
	defer span.End()

	authors, err := h.authors.List(ctx)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": authors})
}

func (h *AuthorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthorHandler.Get")
	defer span.End()

	author, err := h.authors.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, author)
}
