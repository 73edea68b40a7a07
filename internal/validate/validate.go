// ABOUTME: Precondition checks for todo ids and text bodies.
// ABOUTME: Pure functions returning typed errors that wrap package sentinels.

package validate

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/harper/todo/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidTextBody = errors.New("invalid text body")
)

// Location of the offending value in a request.
const (
	LocationParams = "params"
	LocationBody   = "body"
)

// Error describes a single failed check.
type Error struct {
	Field    string
	Location string
	Value    string
	Msg      string
	kind     error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// ID fails unless id is a 24-character hex identifier.
func ID(id string) error {
	if id == "" {
		return &Error{
			Field:    "id",
			Location: LocationParams,
			Msg:      `The request parameter "id" is required`,
			kind:     ErrInvalidID,
		}
	}
	if !primitive.IsValidObjectID(id) {
		return &Error{
			Field:    "id",
			Location: LocationParams,
			Value:    id,
			Msg:      `The request parameter "id" is invalid`,
			kind:     ErrInvalidID,
		}
	}
	return nil
}

// TextBody fails when text is blank or longer than models.MaxTextBodyLength characters.
func TextBody(text string) error {
	if strings.TrimSpace(text) == "" {
		return &Error{
			Field:    "textBody",
			Location: LocationBody,
			Value:    text,
			Msg:      `The request body property "textBody" is required`,
			kind:     ErrInvalidTextBody,
		}
	}
	if utf8.RuneCountInString(text) > models.MaxTextBodyLength {
		return &Error{
			Field:    "textBody",
			Location: LocationBody,
			Value:    text,
			Msg:      `The request body property "textBody" should be between 1 - 255 characters`,
			kind:     ErrInvalidTextBody,
		}
	}
	return nil
}
