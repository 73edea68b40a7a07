// ABOUTME: Tests for tagged update selection and dispatch.
// ABOUTME: Checks that each variant reaches exactly one update operation.

package service

import (
	"context"
	"testing"
)

func ptr(s string) *string { return &s }

func TestUpdateFromText(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  Update
	}{
		{"absent", nil, ToggleComplete{}},
		{"empty", ptr(""), ToggleComplete{}},
		{"text", ptr("new text"), TextUpdate{TextBody: "new text"}},
		{"whitespace", ptr("  "), TextUpdate{TextBody: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpdateFromText(tt.input); got != tt.want {
				t.Errorf("UpdateFromText() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestUpdateMessages(t *testing.T) {
	if got := (TextUpdate{}).Message(); got != "Todo text updated" {
		t.Errorf("unexpected text message %q", got)
	}
	if got := (ToggleComplete{}).Message(); got != "Todo completion status updated" {
		t.Errorf("unexpected toggle message %q", got)
	}
}

func TestUpdateTextLeavesCompletion(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "before")
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, ToggleComplete{}); err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, TextUpdate{TextBody: "after"})
	if err != nil {
		t.Fatalf("failed to update: %v", err)
	}
	if !updated.IsComplete {
		t.Error("text update should not change completion")
	}
	if updated.TextBody != "after" {
		t.Errorf("expected text 'after', got %q", updated.TextBody)
	}
}

func TestUpdateRejectsNil(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Update(context.Background(), missingID, nil); err == nil {
		t.Error("expected an error for a nil update")
	}
}
