// ABOUTME: JSON response helpers and error-to-status mapping for the HTTP API.
// ABOUTME: Validation errors become 400, everything unexpected becomes 500.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/validate"
)

const messageNotFound = "Todo not found"

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// TodoResponse is the body of GET /todos/{id}.
type TodoResponse struct {
	Todo *models.Todo `json:"todo"`
}

// MutationResponse is the body of create, update and delete responses.
type MutationResponse struct {
	Message string         `json:"message"`
	Todo    *models.Todo   `json:"todo"`
	Todos   []*models.Todo `json:"todos"`
}

// TodosResponse is the body of GET /todos.
type TodosResponse struct {
	Todos []*models.Todo `json:"todos"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeError maps err to a status code and writes it.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Message: verr.Msg,
			Errors: []FieldError{{
				Location: verr.Location,
				Param:    verr.Field,
				Value:    verr.Value,
				Msg:      verr.Msg,
			}},
		})
		return
	}

	h.logger.Error("request failed", "method", r.Method, "url", r.URL.String(), "err", err)
	writeMessage(w, http.StatusInternalServerError, err.Error())
}
