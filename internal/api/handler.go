// ABOUTME: HTTP handlers translating todo requests into service calls.
// ABOUTME: Mutations answer with the affected todo plus the full current list.

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/service"
	"github.com/harper/todo/internal/validate"
)

// Handler serves the todo REST API.
type Handler struct {
	svc    *service.Service
	logger *log.Logger
}

// NewHandler creates a Handler over svc.
func NewHandler(svc *service.Service, logger *log.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// CreateRequest is the body of POST /todos.
type CreateRequest struct {
	TextBody string `json:"textBody"`
}

// UpdateRequest is the body of PUT /todos/{id}. A nil TextBody toggles completion.
type UpdateRequest struct {
	TextBody *string `json:"textBody"`
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// CreateTodo handles POST /todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	todo, err := h.svc.Create(r.Context(), req.TextBody)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondWithList(w, r, http.StatusCreated, "Todo added", todo)
}

// ReadTodos handles GET /todos
func (h *Handler) ReadTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.ReadAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TodosResponse{Todos: todos})
}

// ReadTodo handles GET /todos/{id}
func (h *Handler) ReadTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := h.svc.ReadByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if todo == nil {
		writeMessage(w, http.StatusNotFound, messageNotFound)
		return
	}
	writeJSON(w, http.StatusOK, TodoResponse{Todo: todo})
}

// UpdateTodo handles PUT /todos/{id}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	update := service.UpdateFromText(req.TextBody)
	todo, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if todo == nil {
		writeMessage(w, http.StatusNotFound, messageNotFound)
		return
	}
	h.respondWithList(w, r, http.StatusOK, update.Message(), todo)
}

// DeleteTodo handles DELETE /todos/{id}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := h.svc.DeleteByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if todo == nil {
		writeMessage(w, http.StatusNotFound, messageNotFound)
		return
	}
	h.respondWithList(w, r, http.StatusOK, "Todo deleted", todo)
}

// MissingID handles PUT and DELETE on /todos, which need an id.
func (h *Handler) MissingID(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, validate.ID(""))
}

// CreateWithID handles POST /todos/{id}. Creation never takes an id, so the
// request fails even when its body is valid.
func (h *Handler) CreateWithID(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.TextBody(req.TextBody); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusBadRequest, "Todos are created with POST /todos")
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondWithList writes a mutation response carrying the current list.
func (h *Handler) respondWithList(w http.ResponseWriter, r *http.Request, status int, message string, todo *models.Todo) {
	todos, err := h.svc.ReadAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, MutationResponse{Message: message, Todo: todo, Todos: todos})
}
