package storage

import (
	"testing"

	"todostore/internal/models"
	"todostore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseCreateList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	t.Run("successfully creates a list", func(t *testing.T) {
		list, err := store.CreateList(models.CreateListRequest{Title: "Work Tasks"})
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.NotZero(t, list.ID)
		assert.Equal(t, "Work Tasks", list.Title)
	})

	t.Run("fails when list title already exists", func(t *testing.T) {
		_, err := store.CreateList(models.CreateListRequest{Title: "Work"})
		require.NoError(t, err)

		_, err = store.CreateList(models.CreateListRequest{Title: "Work"})
		assert.ErrorIs(t, err, ErrDuplicateTitle)
	})

	t.Run("fails when title is empty", func(t *testing.T) {
		_, err := store.CreateList(models.CreateListRequest{Title: ""})
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestDatabaseGetAllLists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	for _, title := range []string{"Groceries", "Work", "Home"} {
		_, err := store.CreateList(models.CreateListRequest{Title: title})
		require.NoError(t, err)
	}

	t.Run("returns lists ordered by id ascending", func(t *testing.T) {
		lists, err := store.GetAllLists()
		require.NoError(t, err)
		require.Len(t, lists, 3)
		assert.Equal(t, "Groceries", lists[0].Title)
		for i := 1; i < len(lists); i++ {
			assert.Greater(t, lists[i].ID, lists[i-1].ID)
		}
	})

	t.Run("includes todo counts", func(t *testing.T) {
		lists, err := store.GetAllLists()
		require.NoError(t, err)

		_, err = store.CreateTodo(lists[0].ID, models.CreateTodoRequest{Title: "Milk"})
		require.NoError(t, err)
		todo, err := store.CreateTodo(lists[0].ID, models.CreateTodoRequest{Title: "Eggs"})
		require.NoError(t, err)
		_, err = store.UpdateTodo(todo.ID, models.UpdateTodoRequest{Completed: testutil.BoolPtr(true)})
		require.NoError(t, err)

		lists, err = store.GetAllLists()
		require.NoError(t, err)
		assert.Equal(t, 2, lists[0].TodoCount)
		assert.Equal(t, 1, lists[0].Remaining)
		assert.Equal(t, 0, lists[1].TodoCount)
	})
}

func TestDatabaseGetListByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	created, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)

	t.Run("successfully retrieves list", func(t *testing.T) {
		list, err := store.GetListByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, list.ID)
		assert.Equal(t, created.Title, list.Title)
	})

	t.Run("fails when list not found", func(t *testing.T) {
		_, err := store.GetListByID(9999)
		assert.ErrorIs(t, err, ErrListNotFound)
	})
}

func TestDatabaseUpdateList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	created, err := store.CreateList(models.CreateListRequest{Title: "Original"})
	require.NoError(t, err)

	t.Run("successfully renames list", func(t *testing.T) {
		updated, err := store.UpdateList(created.ID, models.UpdateListRequest{
			Title: testutil.StringPtr("Renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("fails when list not found", func(t *testing.T) {
		_, err := store.UpdateList(9999, models.UpdateListRequest{
			Title: testutil.StringPtr("Name"),
		})
		assert.ErrorIs(t, err, ErrListNotFound)
	})

	t.Run("fails when new title conflicts", func(t *testing.T) {
		_, err := store.CreateList(models.CreateListRequest{Title: "Taken"})
		require.NoError(t, err)

		_, err = store.UpdateList(created.ID, models.UpdateListRequest{
			Title: testutil.StringPtr("Taken"),
		})
		assert.ErrorIs(t, err, ErrDuplicateTitle)
	})

	t.Run("fails when new title is invalid", func(t *testing.T) {
		_, err := store.UpdateList(created.ID, models.UpdateListRequest{
			Title: testutil.StringPtr(""),
		})
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestDatabaseDeleteList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	t.Run("cascades to all todos in the list", func(t *testing.T) {
		list, err := store.CreateList(models.CreateListRequest{Title: "Groceries"})
		require.NoError(t, err)

		milk, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Milk"})
		require.NoError(t, err)
		eggs, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Eggs"})
		require.NoError(t, err)

		err = store.DeleteList(list.ID)
		require.NoError(t, err)

		_, err = store.GetListByID(list.ID)
		assert.ErrorIs(t, err, ErrListNotFound)
		_, err = store.GetTodoByID(milk.ID)
		assert.ErrorIs(t, err, ErrTodoNotFound)
		_, err = store.GetTodoByID(eggs.ID)
		assert.ErrorIs(t, err, ErrTodoNotFound)

		todos, err := store.GetTodosByList(list.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("deleting an empty list affects nothing else", func(t *testing.T) {
		empty, err := store.CreateList(models.CreateListRequest{Title: "Empty"})
		require.NoError(t, err)
		other, err := store.CreateList(models.CreateListRequest{Title: "Other"})
		require.NoError(t, err)
		todo, err := store.CreateTodo(other.ID, models.CreateTodoRequest{Title: "Keep me"})
		require.NoError(t, err)

		err = store.DeleteList(empty.ID)
		require.NoError(t, err)

		_, err = store.GetListByID(other.ID)
		assert.NoError(t, err)
		_, err = store.GetTodoByID(todo.ID)
		assert.NoError(t, err)
	})

	t.Run("repeated deletion is an error both times", func(t *testing.T) {
		list, err := store.CreateList(models.CreateListRequest{Title: "Once"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteList(list.ID))
		assert.ErrorIs(t, store.DeleteList(list.ID), ErrListNotFound)
		assert.ErrorIs(t, store.DeleteList(list.ID), ErrListNotFound)
	})
}

func TestDatabaseCreateTodo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	list, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)

	t.Run("successfully creates todo", func(t *testing.T) {
		todo, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Test Todo"})
		require.NoError(t, err)
		assert.NotZero(t, todo.ID)
		assert.Equal(t, list.ID, todo.ListID)
		assert.Equal(t, "Test Todo", todo.Title)
		assert.False(t, todo.Completed)
	})

	t.Run("duplicate todo titles are allowed", func(t *testing.T) {
		_, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Twice"})
		require.NoError(t, err)
		_, err = store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Twice"})
		assert.NoError(t, err)
	})

	t.Run("fails when parent list not found", func(t *testing.T) {
		_, err := store.CreateTodo(9999, models.CreateTodoRequest{Title: "Orphan"})
		assert.ErrorIs(t, err, ErrListNotFound)
	})

	t.Run("fails when title is empty", func(t *testing.T) {
		_, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: ""})
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})
}

func TestDatabaseGetTodosByList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	list, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: title})
		require.NoError(t, err)
	}

	t.Run("returns todos ordered by id ascending", func(t *testing.T) {
		todos, err := store.GetTodosByList(list.ID, nil)
		require.NoError(t, err)
		require.Len(t, todos, 3)
		assert.Equal(t, "First", todos[0].Title)
		assert.Equal(t, "Third", todos[2].Title)
	})

	t.Run("filters by completion status", func(t *testing.T) {
		todos, err := store.GetTodosByList(list.ID, nil)
		require.NoError(t, err)
		_, err = store.UpdateTodo(todos[0].ID, models.UpdateTodoRequest{Completed: testutil.BoolPtr(true)})
		require.NoError(t, err)

		done, err := store.GetTodosByList(list.ID, testutil.BoolPtr(true))
		require.NoError(t, err)
		assert.Len(t, done, 1)

		open, err := store.GetTodosByList(list.ID, testutil.BoolPtr(false))
		require.NoError(t, err)
		assert.Len(t, open, 2)
	})

	t.Run("unknown list yields an empty slice, not an error", func(t *testing.T) {
		todos, err := store.GetTodosByList(9999, nil)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})
}

func TestDatabaseUpdateTodo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	list, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)
	todo, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Original"})
	require.NoError(t, err)

	t.Run("marks todo as completed", func(t *testing.T) {
		updated, err := store.UpdateTodo(todo.ID, models.UpdateTodoRequest{
			Completed: testutil.BoolPtr(true),
		})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
	})

	t.Run("marks todo as incomplete", func(t *testing.T) {
		updated, err := store.UpdateTodo(todo.ID, models.UpdateTodoRequest{
			Completed: testutil.BoolPtr(false),
		})
		require.NoError(t, err)
		assert.False(t, updated.Completed)
	})

	t.Run("updates title", func(t *testing.T) {
		updated, err := store.UpdateTodo(todo.ID, models.UpdateTodoRequest{
			Title: testutil.StringPtr("Updated"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated", updated.Title)
	})

	t.Run("fails when todo not found", func(t *testing.T) {
		_, err := store.UpdateTodo(9999, models.UpdateTodoRequest{})
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})
}

func TestDatabaseDeleteTodo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	list, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)
	todo, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: "Test"})
	require.NoError(t, err)

	t.Run("successfully deletes todo", func(t *testing.T) {
		err := store.DeleteTodo(todo.ID)
		require.NoError(t, err)

		_, err = store.GetTodoByID(todo.ID)
		assert.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("repeated deletion is an error, not a no-op", func(t *testing.T) {
		assert.ErrorIs(t, store.DeleteTodo(todo.ID), ErrTodoNotFound)
		assert.ErrorIs(t, store.DeleteTodo(todo.ID), ErrTodoNotFound)
	})
}

func TestDatabaseMarkAllCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	list, err := store.CreateList(models.CreateListRequest{Title: "Test List"})
	require.NoError(t, err)
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := store.CreateTodo(list.ID, models.CreateTodoRequest{Title: title})
		require.NoError(t, err)
	}

	t.Run("marks every todo completed", func(t *testing.T) {
		err := store.MarkAllCompleted(list.ID)
		require.NoError(t, err)

		todos, err := store.GetTodosByList(list.ID, nil)
		require.NoError(t, err)
		for _, todo := range todos {
			assert.True(t, todo.Completed)
		}

		updated, err := store.GetListByID(list.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Remaining)
		assert.True(t, updated.AllDone())
	})

	t.Run("fails when list not found", func(t *testing.T) {
		err := store.MarkAllCompleted(9999)
		assert.ErrorIs(t, err, ErrListNotFound)
	})
}

func TestDatabaseIdentityNotReused(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	store := NewDatabaseStorage(db)

	first, err := store.CreateList(models.CreateListRequest{Title: "First"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteList(first.ID))

	second, err := store.CreateList(models.CreateListRequest{Title: "Second"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
