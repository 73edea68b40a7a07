// ABOUTME: Resolution of abbreviated todo ids typed by people.
// ABOUTME: Full ids pass through; shorter references match on the id tail.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/todo/internal/validate"
)

var (
	ErrNoMatch   = errors.New("no todo matches")
	ErrAmbiguous = errors.New("reference matches more than one todo")
)

// ResolveID expands ref into a full todo id. A well-formed id is returned as is,
// even if no todo carries it.
func (s *Service) ResolveID(ctx context.Context, ref string) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if validate.ID(ref) == nil {
		return ref, nil
	}
	if ref == "" {
		return "", validate.ID(ref)
	}

	todos, err := s.ReadAll(ctx)
	if err != nil {
		return "", err
	}

	var match string
	for _, todo := range todos {
		if !strings.HasSuffix(todo.ID, ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguous, ref)
		}
		match = todo.ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, ref)
	}
	return match, nil
}
