package storage

import (
	"todostore/internal/models"
)

// ListStore defines the operations for todo lists. It is the sole
// authority for list identity and title uniqueness.
type ListStore interface {
	CreateList(req models.CreateListRequest) (*models.List, error)
	GetAllLists() ([]models.List, error)
	GetListByID(id uint) (*models.List, error)
	UpdateList(id uint, req models.UpdateListRequest) (*models.List, error)
	DeleteList(id uint) error
}

// TodoStore defines the operations for todos. Every write that names a
// list checks that the list still exists.
type TodoStore interface {
	CreateTodo(listID uint, req models.CreateTodoRequest) (*models.Todo, error)
	GetTodosByList(listID uint, completed *bool) ([]models.Todo, error)
	GetTodoByID(id uint) (*models.Todo, error)
	UpdateTodo(id uint, req models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(id uint) error
	MarkAllCompleted(listID uint) error
}

// Store combines both halves of the storage contract.
type Store interface {
	ListStore
	TodoStore
}

var (
	_ Store = (*Storage)(nil)
	_ Store = (*DatabaseStorage)(nil)
)
