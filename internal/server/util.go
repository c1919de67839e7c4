package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"taskboard/internal/service"
)

func readReq(req any, r *http.Request, w http.ResponseWriter) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeErrorResp maps the service error taxonomy onto HTTP statuses:
// validation failures carry their per-field messages, slug collisions are
// conflicts attributable to the title, vanished targets are not found, and
// everything else collapses to a logged 500.
func writeErrorResp(err error, w http.ResponseWriter) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrDuplicateSlug):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  service.ErrDuplicateSlug.Error(),
			"fields": map[string]string{"title": "a task with this title already exists"},
		})
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrAuthorNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "something went wrong"})
	}
}
