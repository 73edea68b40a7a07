// ABOUTME: Shared behavioural tests every store backend must pass.
// ABOUTME: Backend test files call Run with a constructor for a fresh store.

package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises st against the store.Store contract. newStore must return an
// empty store; Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, st store.Store)
	}{
		{"InsertAssignsIDAndTimestamps", testInsert},
		{"FindAllEmpty", testFindAllEmpty},
		{"FindAllInsertionOrder", testFindAllOrder},
		{"FindAllInsertionOrderUnsortedIDs", testFindAllOrderUnsortedIDs},
		{"FindByID", testFindByID},
		{"FindByIDMissing", testFindByIDMissing},
		{"UpdateByIDText", testUpdateText},
		{"UpdateByIDComplete", testUpdateComplete},
		{"UpdateByIDMissing", testUpdateMissing},
		{"DeleteByID", testDelete},
		{"DeleteByIDTwice", testDeleteTwice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t)
			defer func() { _ = st.Close() }()
			tt.fn(t, st)
		})
	}
}

func insert(t *testing.T, st store.Store, text string) *models.Todo {
	t.Helper()
	todo, err := st.Insert(context.Background(), models.NewTodo(text))
	require.NoError(t, err)
	return todo
}

func testInsert(t *testing.T, st store.Store) {
	todo := insert(t, st, "test")

	assert.Len(t, todo.ID, 24)
	assert.Equal(t, "test", todo.TextBody)
	assert.False(t, todo.IsComplete)
	assert.False(t, todo.CreatedAt.IsZero())
	assert.False(t, todo.UpdatedAt.IsZero())
}

func testFindAllEmpty(t *testing.T, st store.Store) {
	todos, err := st.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func testFindAllOrder(t *testing.T, st store.Store) {
	a := insert(t, st, "testA")
	b := insert(t, st, "testB")
	c := insert(t, st, "testC")

	todos, err := st.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, a.ID, todos[0].ID)
	assert.Equal(t, b.ID, todos[1].ID)
	assert.Equal(t, c.ID, todos[2].ID)
}

// Ids from different processes do not sort by creation time.
func testFindAllOrderUnsortedIDs(t *testing.T, st store.Store) {
	ids := []string{"ffffffffffffffffffffff01", "000000000000000000000002", "888888888888888888888803"}
	for _, id := range ids {
		todo := models.NewTodo("todo " + id)
		todo.ID = id
		_, err := st.Insert(context.Background(), todo)
		require.NoError(t, err)
	}

	todos, err := st.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, todos[i].ID, "position %d", i)
	}
}

func testFindByID(t *testing.T, st store.Store) {
	want := insert(t, st, "test")

	got, err := st.FindByID(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.TextBody, got.TextBody)
	assert.Equal(t, want.IsComplete, got.IsComplete)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt %v != %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %v != %v", want.UpdatedAt, got.UpdatedAt)
}

func testFindByIDMissing(t *testing.T, st store.Store) {
	_, err := st.FindByID(context.Background(), models.NewID())
	assert.True(t, errors.Is(err, store.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func testUpdateText(t *testing.T, st store.Store) {
	original := insert(t, st, "test")

	text := "update"
	updated, err := st.UpdateByID(context.Background(), original.ID, store.Patch{TextBody: &text})
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "update", updated.TextBody)
	assert.Equal(t, original.IsComplete, updated.IsComplete)
	assert.True(t, original.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(original.UpdatedAt))

	stored, err := st.FindByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "update", stored.TextBody)
}

func testUpdateComplete(t *testing.T, st store.Store) {
	original := insert(t, st, "test")

	done := true
	updated, err := st.UpdateByID(context.Background(), original.ID, store.Patch{IsComplete: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsComplete)
	assert.Equal(t, "test", updated.TextBody)
}

func testUpdateMissing(t *testing.T, st store.Store) {
	text := "x"
	_, err := st.UpdateByID(context.Background(), models.NewID(), store.Patch{TextBody: &text})
	assert.True(t, errors.Is(err, store.ErrNotFound), "expected ErrNotFound, got %v", err)

	todos, err := st.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos, "update of a missing id must not insert")
}

func testDelete(t *testing.T, st store.Store) {
	original := insert(t, st, "test")
	keep := insert(t, st, "keep")

	deleted, err := st.DeleteByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, deleted.ID)
	assert.Equal(t, original.TextBody, deleted.TextBody)

	todos, err := st.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, keep.ID, todos[0].ID)
}

func testDeleteTwice(t *testing.T, st store.Store) {
	original := insert(t, st, "test")

	_, err := st.DeleteByID(context.Background(), original.ID)
	require.NoError(t, err)

	_, err = st.DeleteByID(context.Background(), original.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound), "expected ErrNotFound, got %v", err)
}
