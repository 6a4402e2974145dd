package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/joebanks10/todo-api/internal/model"
)

func TestTodoRepository_ListByOwner_ScopesAndOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTodoRepository(db)

	userOne := createTestUser(t, db, "joeb@example.com")
	userTwo := createTestUser(t, db, "gaby@example.com")

	for _, seed := range []struct {
		text  string
		owner uuid.UUID
	}{
		{"Get the milk", userOne.ID},
		{"Throw out garbage", userTwo.ID},
		{"Buy flowers", userOne.ID},
	} {
		require.NoError(t, repo.Create(ctx, &model.Todo{Text: seed.text, OwnerID: seed.owner}))
	}

	todos, err := repo.ListByOwner(ctx, userOne.ID)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "Get the milk", todos[0].Text)
	assert.Equal(t, "Buy flowers", todos[1].Text)

	todos, err = repo.ListByOwner(ctx, userTwo.ID)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Throw out garbage", todos[0].Text)
}

func TestTodoRepository_FindByOwnerAndID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTodoRepository(db)

	userOne := createTestUser(t, db, "joeb@example.com")
	userTwo := createTestUser(t, db, "gaby@example.com")

	todo := &model.Todo{Text: "Get the milk", OwnerID: userOne.ID}
	require.NoError(t, repo.Create(ctx, todo))

	found, err := repo.FindByOwnerAndID(ctx, userOne.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, found.ID)

	// Another user's lookup of the same id must look like a missing record.
	_, err = repo.FindByOwnerAndID(ctx, userTwo.ID, todo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByOwnerAndID(ctx, userOne.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTodoRepository_DeleteByOwnerAndID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTodoRepository(db)

	userOne := createTestUser(t, db, "joeb@example.com")
	userTwo := createTestUser(t, db, "gaby@example.com")

	todo := &model.Todo{Text: "Get the milk", OwnerID: userOne.ID}
	require.NoError(t, repo.Create(ctx, todo))

	// A foreign owner cannot delete; the record survives.
	_, err := repo.DeleteByOwnerAndID(ctx, userTwo.ID, todo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	removed, err := repo.DeleteByOwnerAndID(ctx, userOne.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, removed.ID)
	assert.Equal(t, "Get the milk", removed.Text)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = repo.FindByOwnerAndID(ctx, userOne.ID, todo.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTodoRepository_UpdatePersistsCompletedAt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewTodoRepository(db)

	user := createTestUser(t, db, "joeb@example.com")
	todo := &model.Todo{Text: "Buy flowers", OwnerID: user.ID}
	require.NoError(t, repo.Create(ctx, todo))

	stamp := int64(123)
	todo.Completed = true
	todo.CompletedAt = &stamp
	require.NoError(t, repo.Update(ctx, todo))

	found, err := repo.FindByOwnerAndID(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, found.Completed)
	require.NotNil(t, found.CompletedAt)
	assert.Equal(t, int64(123), *found.CompletedAt)

	todo.Completed = false
	todo.CompletedAt = nil
	require.NoError(t, repo.Update(ctx, todo))

	found, err = repo.FindByOwnerAndID(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, found.Completed)
	assert.Nil(t, found.CompletedAt)
}
