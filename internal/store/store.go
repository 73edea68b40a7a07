// ABOUTME: Persistence contract consumed by the todo service.
// ABOUTME: Defines the Store interface, partial updates and backend registration.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/harper/todo/internal/config"
	"github.com/harper/todo/internal/models"
)

var (
	ErrNotFound       = errors.New("todo not found")
	ErrUnknownBackend = errors.New("unknown store backend")
)

// Patch lists the fields an update replaces. Nil fields are left alone.
type Patch struct {
	TextBody   *string
	IsComplete *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.TextBody == nil && p.IsComplete == nil
}

// Apply writes the patch onto t and refreshes its UpdatedAt.
func (p Patch) Apply(t *models.Todo) {
	if p.TextBody != nil {
		t.TextBody = *p.TextBody
	}
	if p.IsComplete != nil {
		t.IsComplete = *p.IsComplete
	}
	t.Touch()
}

// Store is a document store holding todos. Lookups by id return ErrNotFound
// when no document matches. UpdateByID returns the post-update state.
type Store interface {
	Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	FindAll(ctx context.Context) ([]*models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	UpdateByID(ctx context.Context, id string, patch Patch) (*models.Todo, error)
	DeleteByID(ctx context.Context, id string) (*models.Todo, error)
	Close() error
}

// OpenFunc opens a backend from its configuration.
type OpenFunc func(ctx context.Context, cfg config.StoreConfig) (Store, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]OpenFunc{}
)

// Register makes a backend available to Open. Backend packages call it from init.
func Register(name string, open OpenFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if _, dup := backends[name]; dup {
		panic("store: Register called twice for backend " + name)
	}
	backends[name] = open
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the backend named in cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	backendsMu.RLock()
	open, ok := backends[cfg.Backend]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	st, err := open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return st, nil
}
