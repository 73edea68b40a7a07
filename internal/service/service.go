// ABOUTME: Todo service orchestrating validation and persistence per operation.
// ABOUTME: Validation failures abort before any store call; not found is a nil todo.

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harper/todo/internal/logging"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
	"github.com/harper/todo/internal/validate"
)

// Service implements the todo operations on top of an injected store.
//
// Lookups, updates and deletes of a well-formed id that matches nothing return
// (nil, nil). Validation errors are *validate.Error values; every other error
// comes from the store unchanged.
type Service struct {
	store  store.Store
	logger *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a service over st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates textBody and stores a new incomplete todo.
func (s *Service) Create(ctx context.Context, textBody string) (*models.Todo, error) {
	if err := validate.TextBody(textBody); err != nil {
		return nil, err
	}

	todo, err := s.store.Insert(ctx, models.NewTodo(textBody))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("created todo", "id", todo.ID)
	return todo, nil
}

// ReadAll returns every todo in store order. The slice is never nil.
func (s *Service) ReadAll(ctx context.Context) ([]*models.Todo, error) {
	todos, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []*models.Todo{}
	}
	return todos, nil
}

// ReadByID returns the todo with id, or nil when none exists.
func (s *Service) ReadByID(ctx context.Context, id string) (*models.Todo, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}
	return absent(s.store.FindByID(ctx, id))
}

// UpdateCompleteByID flips the completion flag of the todo with id.
//
// The read and the write are separate store calls, so a concurrent toggle of the
// same todo between them can be lost.
func (s *Service) UpdateCompleteByID(ctx context.Context, id string) (*models.Todo, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}

	original, err := absent(s.store.FindByID(ctx, id))
	if err != nil || original == nil {
		return nil, err
	}

	isComplete := !original.IsComplete
	todo, err := absent(s.store.UpdateByID(ctx, id, store.Patch{IsComplete: &isComplete}))
	if err != nil || todo == nil {
		return nil, err
	}
	s.logger.Debug("toggled todo", "id", id, "isComplete", todo.IsComplete)
	return todo, nil
}

// UpdateTextByID replaces the text of the todo with id. The id is checked before the text.
func (s *Service) UpdateTextByID(ctx context.Context, id, textBody string) (*models.Todo, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}
	if err := validate.TextBody(textBody); err != nil {
		return nil, err
	}

	todo, err := absent(s.store.UpdateByID(ctx, id, store.Patch{TextBody: &textBody}))
	if err != nil || todo == nil {
		return nil, err
	}
	s.logger.Debug("updated todo text", "id", id)
	return todo, nil
}

// DeleteByID removes the todo with id and returns it, or nil when none existed.
func (s *Service) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	id, err := checkID(id)
	if err != nil {
		return nil, err
	}

	todo, err := absent(s.store.DeleteByID(ctx, id))
	if err != nil || todo == nil {
		return nil, err
	}
	s.logger.Debug("deleted todo", "id", id)
	return todo, nil
}

// checkID validates id and returns the lowercase form every store keys on.
func checkID(id string) (string, error) {
	if err := validate.ID(id); err != nil {
		return "", err
	}
	return strings.ToLower(id), nil
}

// absent turns store.ErrNotFound into a nil todo.
func absent(todo *models.Todo, err error) (*models.Todo, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}
