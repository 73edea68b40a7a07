// ABOUTME: In-process todo store guarded by a read/write mutex.
// ABOUTME: Keeps insertion order in a side slice; used by tests and --store memory.

package memory

import (
	"context"
	"sync"

	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
)

func init() {
	store.Register(config.BackendMemory, func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return New(), nil
	})
}

// Store implements store.Store in memory.
type Store struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
	order []string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		todos: make(map[string]*models.Todo),
	}
}

func (s *Store) Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := todo.Clone()
	stored.Stamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return stored.Clone(), nil
}

func (s *Store) FindAll(ctx context.Context) ([]*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*models.Todo, 0, len(s.order))
	for _, id := range s.order {
		todos = append(todos, s.todos[id].Clone())
	}
	return todos, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return todo.Clone(), nil
}

func (s *Store) UpdateByID(ctx context.Context, id string, patch store.Patch) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	patch.Apply(todo)
	return todo.Clone(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.todos, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return todo, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
