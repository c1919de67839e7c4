// Package server wires the HTTP transport: a gorilla/mux router over the
// query and mutation services, JSON in and out.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"taskboard/internal/seed"
	"taskboard/internal/service"
)

// AdminHandler serves maintenance endpoints outside the task contract.
type AdminHandler struct {
	db    *gorm.DB
	tasks *service.TaskService
}

func NewAdminHandler(db *gorm.DB, tasks *service.TaskService) *AdminHandler {
	return &AdminHandler{db: db, tasks: tasks}
}

// Reset drops all data and reloads the demo dataset, then invalidates the
// query cache since the reset writes outside the mutation surface.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := seed.Reset(r.Context(), h.db); err != nil {
		writeErrorResp(err, w)
		return
	}
	h.tasks.InvalidateQueries()
	writeJSON(w, http.StatusOK, map[string]string{"status": "database reset"})
}

// NewRouter builds the route table for every exposed operation.
func NewRouter(query *service.QueryService, tasks *service.TaskService, authors *service.AuthorService, db *gorm.DB, tracer trace.Tracer) *mux.Router {
	taskHandler := NewTaskHandler(query, tasks, tracer)
	authorHandler := NewAuthorHandler(authors, tracer)
	adminHandler := NewAdminHandler(db, tasks)

	router := mux.NewRouter()

	router.HandleFunc("/tasks", taskHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/tasks/count", taskHandler.Count).Methods(http.MethodGet)
	router.HandleFunc("/tasks/slug/{slug}", taskHandler.GetBySlug).Methods(http.MethodGet)
	router.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	router.HandleFunc("/tasks", taskHandler.BulkUpdate).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPatch)
	router.HandleFunc("/tasks", taskHandler.BulkDelete).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)

	router.HandleFunc("/authors", authorHandler.List).Methods(http.MethodGet)
	router.HandleFunc("/authors/{id}", authorHandler.Get).Methods(http.MethodGet)

	router.HandleFunc("/admin/reset", adminHandler.Reset).Methods(http.MethodPost)

	return router
}
