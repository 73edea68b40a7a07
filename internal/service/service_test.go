// ABOUTME: Tests for the todo service against the in-memory store.
// ABOUTME: Covers validation ordering, not-found semantics and error propagation.

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/todo/internal/models"
	"github.com/harper/todo/internal/store"
	"github.com/harper/todo/internal/store/memory"
	"github.com/harper/todo/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingID = "507f1f77bcf86cd799439011"

// recordingStore counts calls and fails every one with err.
type recordingStore struct {
	calls int
	err   error
}

func (r *recordingStore) Insert(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.calls++
	return nil, r.err
}

func (r *recordingStore) FindAll(ctx context.Context) ([]*models.Todo, error) {
	r.calls++
	return nil, r.err
}

func (r *recordingStore) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	r.calls++
	return nil, r.err
}

func (r *recordingStore) UpdateByID(ctx context.Context, id string, p store.Patch) (*models.Todo, error) {
	r.calls++
	return nil, r.err
}

func (r *recordingStore) DeleteByID(ctx context.Context, id string) (*models.Todo, error) {
	r.calls++
	return nil, r.err
}

func (r *recordingStore) Close() error { return nil }

func newService(t *testing.T) *Service {
	t.Helper()
	return New(memory.New())
}

func TestCreate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", todo.TextBody)
	assert.False(t, todo.IsComplete)
	assert.Len(t, todo.ID, 24)
	assert.True(t, todo.UpdatedAt.Equal(todo.CreatedAt))

	todos, err := svc.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.ID, todos[0].ID)
}

func TestCreateBoundaryLengths(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	todo, err := svc.Create(ctx, strings.Repeat("x", 255))
	require.NoError(t, err)
	assert.Len(t, todo.TextBody, 255)

	_, err = svc.Create(ctx, strings.Repeat("x", 256))
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)

	_, err = svc.Create(ctx, "")
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)

	todos, err := svc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1, "rejected creates must not persist")
}

func TestCreateDuplicateTextsAreDistinct(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "same")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "same")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestReadAllEmptyIsNotNil(t *testing.T) {
	svc := newService(t)

	todos, err := svc.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestReadAllKeepsInsertionOrder(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		todo, err := svc.Create(ctx, text)
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}

	todos, err := svc.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 3)
	for i, todo := range todos {
		assert.Equal(t, ids[i], todo.ID)
	}
}

func TestReadByID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "find me")
	require.NoError(t, err)

	got, err := svc.ReadByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	got, err = svc.ReadByID(ctx, missingID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateCompleteByIDTogglesTwice(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "toggle me")
	require.NoError(t, err)

	once, err := svc.UpdateCompleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, once.IsComplete)
	assert.True(t, once.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.TextBody, once.TextBody)
	assert.True(t, once.CreatedAt.Equal(created.CreatedAt))

	twice, err := svc.UpdateCompleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, twice.IsComplete)
	assert.True(t, twice.UpdatedAt.After(once.UpdatedAt))
}

func TestUpdateTextByID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)

	updated, err := svc.UpdateTextByID(ctx, created.ID, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.TextBody)
	assert.Equal(t, created.IsComplete, updated.IsComplete)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateTextByIDValidatesIDFirst(t *testing.T) {
	svc := newService(t)

	_, err := svc.UpdateTextByID(context.Background(), "nope", "")
	assert.ErrorIs(t, err, validate.ErrInvalidID)
}

func TestUpdateTextByIDRejectsOversizedText(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "short")
	require.NoError(t, err)

	_, err = svc.UpdateTextByID(ctx, created.ID, strings.Repeat("x", 256))
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)

	got, err := svc.ReadByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "short", got.TextBody)
	assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestDeleteByID(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "remove me")
	require.NoError(t, err)

	removed, err := svc.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, removed)

	got, err := svc.ReadByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	again, err := svc.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestUppercaseIDMatchesStoredTodo(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Shout")
	require.NoError(t, err)
	upper := strings.ToUpper(created.ID)

	got, err := svc.ReadByID(ctx, upper)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	toggled, err := svc.UpdateCompleteByID(ctx, upper)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.True(t, toggled.IsComplete)

	edited, err := svc.UpdateTextByID(ctx, upper, "Whisper")
	require.NoError(t, err)
	require.NotNil(t, edited)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, "Whisper", edited.TextBody)

	removed, err := svc.DeleteByID(ctx, upper)
	require.NoError(t, err)
	require.NotNil(t, removed)
	assert.Equal(t, created.ID, removed.ID)

	todos, err := svc.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestMissingIDReturnsNil(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	todo, err := svc.UpdateCompleteByID(ctx, missingID)
	require.NoError(t, err)
	assert.Nil(t, todo)

	todo, err = svc.UpdateTextByID(ctx, missingID, "text")
	require.NoError(t, err)
	assert.Nil(t, todo)

	todo, err = svc.DeleteByID(ctx, missingID)
	require.NoError(t, err)
	assert.Nil(t, todo)
}

func TestValidationHappensBeforeStore(t *testing.T) {
	rec := &recordingStore{err: errors.New("should not be called")}
	svc := New(rec)
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)
	_, err = svc.ReadByID(ctx, "")
	assert.ErrorIs(t, err, validate.ErrInvalidID)
	_, err = svc.UpdateCompleteByID(ctx, "xyz")
	assert.ErrorIs(t, err, validate.ErrInvalidID)
	_, err = svc.UpdateTextByID(ctx, missingID, "")
	assert.ErrorIs(t, err, validate.ErrInvalidTextBody)
	_, err = svc.DeleteByID(ctx, "not-hex-but-twenty-four!")
	assert.ErrorIs(t, err, validate.ErrInvalidID)

	assert.Zero(t, rec.calls)
}

func TestValidationErrorDetails(t *testing.T) {
	svc := newService(t)

	_, err := svc.ReadByID(context.Background(), "abc")
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
	assert.Equal(t, validate.LocationParams, verr.Location)
	assert.Equal(t, "abc", verr.Value)
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("store unavailable")
	svc := New(&recordingStore{err: boom})
	ctx := context.Background()

	_, err := svc.Create(ctx, "text")
	assert.ErrorIs(t, err, boom)
	_, err = svc.ReadAll(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.ReadByID(ctx, missingID)
	assert.ErrorIs(t, err, boom)
	_, err = svc.UpdateCompleteByID(ctx, missingID)
	assert.ErrorIs(t, err, boom)
	_, err = svc.UpdateTextByID(ctx, missingID, "text")
	assert.ErrorIs(t, err, boom)
	_, err = svc.DeleteByID(ctx, missingID)
	assert.ErrorIs(t, err, boom)
}

func TestToggleDoesNotWriteWhenMissing(t *testing.T) {
	rec := &recordingStore{err: store.ErrNotFound}
	svc := New(rec)

	todo, err := svc.UpdateCompleteByID(context.Background(), missingID)
	require.NoError(t, err)
	assert.Nil(t, todo)
	assert.Equal(t, 1, rec.calls, "only the lookup should reach the store")
}

func TestCreateUpdateDeleteScenario(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, TextUpdate{TextBody: "Buy oat milk"})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.TextBody)

	toggled, err := svc.Update(ctx, created.ID, ToggleComplete{})
	require.NoError(t, err)
	assert.True(t, toggled.IsComplete)
	assert.Equal(t, "Buy oat milk", toggled.TextBody)

	removed, err := svc.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	got, err := svc.ReadByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
