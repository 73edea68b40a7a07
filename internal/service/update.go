// ABOUTME: Tagged update requests routed to exactly one update operation.
// ABOUTME: TextUpdate replaces the text; ToggleComplete flips completion.

package service

import (
	"context"
	"fmt"

	"github.com/harper/todo/internal/models"
)

// Update is either a TextUpdate or a ToggleComplete.
type Update interface {
	// Message describes the change for API responses.
	Message() string
	isUpdate()
}

// TextUpdate replaces a todo's text body verbatim.
type TextUpdate struct {
	TextBody string
}

func (TextUpdate) Message() string { return "Todo text updated" }
func (TextUpdate) isUpdate()       {}

// ToggleComplete flips a todo's completion flag.
type ToggleComplete struct{}

func (ToggleComplete) Message() string { return "Todo completion status updated" }
func (ToggleComplete) isUpdate()       {}

// UpdateFromText picks the update a request body implies: a missing or empty
// text body toggles completion, anything else replaces the text.
func UpdateFromText(textBody *string) Update {
	if textBody == nil || *textBody == "" {
		return ToggleComplete{}
	}
	return TextUpdate{TextBody: *textBody}
}

// Update applies u to the todo with id.
func (s *Service) Update(ctx context.Context, id string, u Update) (*models.Todo, error) {
	switch u := u.(type) {
	case TextUpdate:
		return s.UpdateTextByID(ctx, id, u.TextBody)
	case ToggleComplete:
		return s.UpdateCompleteByID(ctx, id)
	default:
		return nil, fmt.Errorf("unknown update %T", u)
	}
}
