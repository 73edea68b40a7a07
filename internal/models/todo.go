// ABOUTME: Todo model representing a short text item with a completion flag.
// ABOUTME: Provides constructor, id generation and timestamp maintenance.

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxTextBodyLength is the longest text body, in characters, a stored todo may carry.
const MaxTextBodyLength = 255

type Todo struct {
	ID         string    `json:"id" yaml:"id"`
	TextBody   string    `json:"textBody" yaml:"text_body"`
	IsComplete bool      `json:"isComplete" yaml:"is_complete"`
	CreatedAt  time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updated_at"`
}

// NewID returns a fresh 24-character hex identifier. Ids from one process sort in creation order.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// NewTodo builds an incomplete todo. ID and timestamps are left for the store to assign.
func NewTodo(textBody string) *Todo {
	return &Todo{
		TextBody:   textBody,
		IsComplete: false,
	}
}

// Stamp assigns an id (when missing) and creation timestamps.
func (t *Todo) Stamp() {
	if t.ID == "" {
		t.ID = NewID()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
}

// Touch moves UpdatedAt forward. It is strictly increasing even on coarse clocks.
func (t *Todo) Touch() {
	now := time.Now().UTC()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Millisecond)
	}
	t.UpdatedAt = now
}

// Clone returns a copy safe to hand out of a store.
func (t *Todo) Clone() *Todo {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// ShortIDLength is how many trailing id characters ShortID shows.
const ShortIDLength = 6

// ShortID returns the tail of the id. ObjectID prefixes are timestamps and
// repeat across todos created close together; the tail carries the counter.
func (t *Todo) ShortID() string {
	if len(t.ID) <= ShortIDLength {
		return t.ID
	}
	return t.ID[len(t.ID)-ShortIDLength:]
}
