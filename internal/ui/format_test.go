// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates todo display and markdown rendering.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/harper/todo/internal/models"
)

func newTodo(done bool) *models.Todo {
	return &models.Todo{
		ID:         "507f1f77bcf86cd799439011",
		TextBody:   "Buy milk",
		IsComplete: done,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestFormatTodoListItem(t *testing.T) {
	output := FormatTodoListItem(newTodo(false))

	if !strings.Contains(output, "439011") {
		t.Error("expected output to contain short ID")
	}
	if !strings.Contains(output, "Buy milk") {
		t.Error("expected output to contain text body")
	}
	if !strings.Contains(output, "[ ]") {
		t.Error("expected open check mark")
	}
}

func TestFormatTodoListItemDone(t *testing.T) {
	output := FormatTodoListItem(newTodo(true))

	if !strings.Contains(output, "[x]") {
		t.Error("expected done check mark")
	}
}

func TestFormatTodoHeader(t *testing.T) {
	output := FormatTodoHeader(newTodo(true))

	if !strings.Contains(output, "507f1f77bcf86cd799439011") {
		t.Error("expected header to contain full ID")
	}
	if !strings.Contains(output, "done") {
		t.Error("expected header to contain status")
	}
}

func TestFormatTextBody(t *testing.T) {
	output, err := FormatTextBody("Buy **oat** milk")
	if err != nil {
		t.Fatalf("failed to format text: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestFormatSummary(t *testing.T) {
	output := FormatSummary([]*models.Todo{newTodo(true), newTodo(false), newTodo(false)})

	if !strings.Contains(output, "2 open, 1 done") {
		t.Errorf("unexpected summary %q", output)
	}
}
