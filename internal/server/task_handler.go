package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskHandler serves the task endpoints: filtered listing and counting,
// slug lookup, and every mutation.
type TaskHandler struct {
	query  *service.QueryService
	tasks  *service.TaskService
	tracer trace.Tracer
}

func NewTaskHandler(query *service.QueryService, tasks *service.TaskService, tracer trace.Tracer) *TaskHandler {
	return &TaskHandler{query: query, tasks: tasks, tracer: tracer}
}

// parseFilter reads the filter predicates from query parameters. Absent
// parameters leave the corresponding predicate unconstrained; present ones
// must carry a known value.
func parseFilter(r *http.Request) (model.TaskFilter, error) {
	q := r.URL.Query()
	f := model.TaskFilter{
		Search:    q.Get("search"),
		Status:    model.Status(q.Get("status")),
		Priority:  model.Priority(q.Get("priority")),
		Type:      model.TaskType(q.Get("type")),
		AuthorID:  q.Get("authorId"),
		SortField: q.Get("sort"),
		SortOrder: model.SortOrder(q.Get("order")),
	}

	if f.Status != "" && !f.Status.IsValid() {
		return f, fmt.Errorf("invalid status %q", f.Status)
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return f, fmt.Errorf("invalid priority %q", f.Priority)
	}
	if f.Type != "" && !f.Type.IsValid() {
		return f, fmt.Errorf("invalid type %q", f.Type)
	}
	if f.SortField != "" && !model.IsSortableField(f.SortField) {
		return f, fmt.Errorf("invalid sort field %q", f.SortField)
	}
	if f.SortOrder != "" && f.SortOrder != model.SortAsc && f.SortOrder != model.SortDesc {
		return f, fmt.Errorf("invalid sort order %q", f.SortOrder)
	}

	if v := q.Get("date"); v != "" {
		day, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return f, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
		}
		f.Date = &day
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid offset %q", v)
		}
		f.Offset = n
	}
	return f, nil
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.List")
	defer span.End()

	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	tasks, err := h.query.List(ctx, filter)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": tasks})
}

func (h *TaskHandler) Count(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Count")
	defer span.End()

	filter, err := parseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	n, err := h.query.Count(ctx, filter)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"count": n})
}

func (h *TaskHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.GetBySlug")
	defer span.End()

	task, err := h.query.GetBySlug(ctx, mux.Vars(r)["slug"])
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Create")
	defer span.End()

	req := &struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Status      model.Status   `json:"status"`
		Priority    model.Priority `json:"priority"`
		Type        model.TaskType `json:"type"`
		AuthorID    string         `json:"authorId"`
		Deadline    *time.Time     `json:"deadline"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	task, err := h.tasks.Create(ctx, service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
		AuthorID:    req.AuthorID,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Update")
	defer span.End()

	req := &struct {
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Status      *model.Status   `json:"status"`
		Priority    *model.Priority `json:"priority"`
		Type        *model.TaskType `json:"type"`
		Deadline    *time.Time      `json:"deadline"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	task, err := h.tasks.Update(ctx, mux.Vars(r)["id"], service.TaskUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.BulkUpdate")
	defer span.End()

	req := &struct {
		IDs      []string       `json:"ids"`
		Status   model.Status   `json:"status"`
		Priority model.Priority `json:"priority"`
		Type     model.TaskType `json:"type"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	n, err := h.tasks.BulkUpdate(ctx, req.IDs, service.BulkPatch{
		Status:   req.Status,
		Priority: req.Priority,
		Type:     req.Type,
	})
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.Delete")
	defer span.End()

	if err := h.tasks.Delete(ctx, mux.Vars(r)["id"]); err != nil {
		writeErrorResp(err, w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *TaskHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "TaskHandler.BulkDelete")
	defer span.End()

	req := &struct {
		IDs []string `json:"ids"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	outcomes, err := h.tasks.BulkDelete(ctx, req.IDs)
	if err != nil {
		writeErrorResp(err, w)
		return
	}

	type outcomeResp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	resp := make([]outcomeResp, 0, len(outcomes))
	for _, o := range outcomes {
		status := "deleted"
		switch {
		case o.Err == nil:
		case o.Err == service.ErrTaskNotFound:
			status = "not_found"
		default:
			status = "error"
		}
		resp = append(resp, outcomeResp{ID: o.ID, Status: status})
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": resp})
}
