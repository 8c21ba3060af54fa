package models

import (
	"time"
)

// MaxTitleLength mirrors the varchar(100) column constraint on both
// lists and todos.
const MaxTitleLength = 100

// List represents a named todo list. Titles are unique across all lists;
// uniqueness is an exact byte match, no trimming or case folding.
type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null;size:100" json:"title" binding:"required,min=1,max=100"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Todos     []Todo    `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
	TodoCount int       `gorm:"-" json:"todoCount"`
	Remaining int       `gorm:"-" json:"remaining"`
}

// AllDone reports whether the list has todos and every one of them is
// completed. Empty lists are not considered done.
func (l *List) AllDone() bool {
	return l.TodoCount > 0 && l.Remaining == 0
}

// Todo represents a todo item belonging to exactly one list.
type Todo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListID    uint      `gorm:"not null;index" json:"listId"`
	Title     string    `gorm:"not null;size:100" json:"title" binding:"required,min=1,max=100"`
	Completed bool      `gorm:"not null;default:false;index" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CreateListRequest represents the request to create a new list
type CreateListRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// UpdateListRequest represents the request to rename a list
type UpdateListRequest struct {
	Title *string `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
}

// CreateTodoRequest represents the request to create a new todo
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// UpdateTodoRequest represents a partial update of a todo's mutable fields
type UpdateTodoRequest struct {
	Title     *string `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	Completed *bool   `json:"completed,omitempty"`
}

// ErrorResponse represents an error response for consuming layers
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
