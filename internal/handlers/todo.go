package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"todoapp/internal/models"
)

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	IsCompleted bool   `json:"isCompleted"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"isCompleted"`
}

// ListTodos returns todos newest first, optionally filtered by the
// isCompleted and search query parameters.
func (h *Handlers) ListTodos(w http.ResponseWriter, r *http.Request) {
	var filter models.ListFilter
	if err := h.decoder.Decode(&filter, r.URL.Query()); err != nil {
		respondError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondServerError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// GetTodo returns a single todo by id.
func (h *Handlers) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// CreateTodo creates a new todo from a JSON body.
func (h *Handlers) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	item, err := h.svc.Create(r.Context(), req.Title, req.IsCompleted)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", "/api/todos/"+item.ID.String())
	respondJSON(w, http.StatusCreated, item)
}

// UpdateTodo applies a partial patch to an existing todo.
func (h *Handlers) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.svc.Update(r.Context(), id, models.UpdatePatch{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DeleteTodo removes a single todo.
func (h *Handlers) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCompletedTodos removes every completed todo. The count is surfaced
// in the X-Deleted-Count header since the response has no body.
func (h *Handlers) DeleteCompletedTodos(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.DeleteCompleted(r.Context())
	if err != nil {
		respondServerError(w, err)
		return
	}

	w.Header().Set("X-Deleted-Count", strconv.Itoa(count))
	w.WriteHeader(http.StatusNoContent)
}
