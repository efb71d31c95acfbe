// Package handlers is the REST adapter: it parses requests into todo
// service calls and serializes results. No business rules live here.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"todoapp/internal/todo"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	svc      todo.API
	decoder  *schema.Decoder
	validate *validator.Validate
}

// New creates a new Handlers instance.
func New(svc todo.API) *Handlers {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handlers{
		svc:      svc,
		decoder:  decoder,
		validate: validator.New(),
	}
}

// Routes mounts the REST API onto a fresh router, rooted at the mount
// point. The literal /completed route is registered alongside /{id}; chi
// matches literals first.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListTodos)
	r.Post("/", h.CreateTodo)
	r.Delete("/completed", h.DeleteCompletedTodos)
	r.Get("/{id}", h.GetTodo)
	r.Put("/{id}", h.UpdateTodo)
	r.Delete("/{id}", h.DeleteTodo)

	return r
}

// parseID extracts and parses the UUID id from URL parameters.
func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// respondError sends a JSON error body with the given status.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func respondServerError(w http.ResponseWriter, err error) {
	log.Printf("internal server error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// respondServiceError maps service errors onto protocol status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *todo.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, todo.ErrNotFound):
		respondError(w, http.StatusNotFound, "todo not found")
	default:
		respondServerError(w, err)
	}
}
