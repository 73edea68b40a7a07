// ABOUTME: Router wiring for the todo REST API.
// ABOUTME: Middleware wraps the whole router so mux's own 404 and 405 replies are logged too.

package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes builds the router serving the API.
func (h *Handler) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/todos", h.CreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos", h.ReadTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", h.MissingID).Methods(http.MethodPut, http.MethodDelete)

	router.HandleFunc("/todos/{id}", h.ReadTodo).Methods(http.MethodGet)
	router.HandleFunc("/todos/{id}", h.UpdateTodo).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}", h.DeleteTodo).Methods(http.MethodDelete)
	router.HandleFunc("/todos/{id}", h.CreateWithID).Methods(http.MethodPost)

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	return h.requestID(h.logRequests(router))
}
