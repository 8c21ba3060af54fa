package storage

import (
	"errors"
	"sort"
	"sync"
	"time"

	"todostore/internal/models"
)

var (
	ErrListNotFound   = errors.New("todo list not found")
	ErrTodoNotFound   = errors.New("todo not found")
	ErrDuplicateTitle = errors.New("list with this title already exists")
	ErrInvalidTitle   = errors.New("title must be between 1 and 100 characters")
)

// validateTitle enforces the title constraint shared by lists and todos.
func validateTitle(title string) error {
	if len(title) == 0 || len(title) > models.MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

// Storage provides in-memory storage for todo lists and todos
type Storage struct {
	mu         sync.RWMutex
	lists      map[uint]*models.List
	todos      map[uint]*models.Todo
	nextListID uint // monotonic, ids are never reused
	nextTodoID uint
}

// NewStorage creates a new in-memory storage instance
func NewStorage() *Storage {
	return &Storage{
		lists: make(map[uint]*models.List),
		todos: make(map[uint]*models.Todo),
	}
}

// CreateList creates a new todo list
func (s *Storage) CreateList(req models.CreateListRequest) (*models.List, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Check if list with same title exists
	for _, list := range s.lists {
		if list.Title == req.Title {
			return nil, ErrDuplicateTitle
		}
	}

	s.nextListID++
	now := time.Now()
	list := &models.List{
		ID:        s.nextListID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.lists[list.ID] = list

	listCopy := *list
	return &listCopy, nil
}

// GetAllLists retrieves all todo lists ordered by id ascending
func (s *Storage) GetAllLists() ([]models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lists := make([]models.List, 0, len(s.lists))
	for _, list := range s.lists {
		listCopy := *list
		listCopy.TodoCount, listCopy.Remaining = s.countTodosInList(list.ID)
		lists = append(lists, listCopy)
	}

	sort.Slice(lists, func(i, j int) bool {
		return lists[i].ID < lists[j].ID
	})

	return lists, nil
}

// GetListByID retrieves a todo list by ID
func (s *Storage) GetListByID(id uint) (*models.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, exists := s.lists[id]
	if !exists {
		return nil, ErrListNotFound
	}

	listCopy := *list
	listCopy.TodoCount, listCopy.Remaining = s.countTodosInList(id)
	return &listCopy, nil
}

// UpdateList renames an existing todo list
func (s *Storage) UpdateList(id uint, req models.UpdateListRequest) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, exists := s.lists[id]
	if !exists {
		return nil, ErrListNotFound
	}

	if req.Title != nil && *req.Title != list.Title {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		for _, l := range s.lists {
			if l.ID != id && l.Title == *req.Title {
				return nil, ErrDuplicateTitle
			}
		}
		list.Title = *req.Title
		list.UpdatedAt = time.Now()
	}

	listCopy := *list
	listCopy.TodoCount, listCopy.Remaining = s.countTodosInList(id)
	return &listCopy, nil
}

// DeleteList deletes a todo list and all its todos. Both removals happen
// under one lock, so no caller can observe the list gone with todos left.
func (s *Storage) DeleteList(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[id]; !exists {
		return ErrListNotFound
	}

	for todoID, todo := range s.todos {
		if todo.ListID == id {
			delete(s.todos, todoID)
		}
	}

	delete(s.lists, id)
	return nil
}

// CreateTodo creates a new todo in a list
func (s *Storage) CreateTodo(listID uint, req models.CreateTodoRequest) (*models.Todo, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[listID]; !exists {
		return nil, ErrListNotFound
	}

	s.nextTodoID++
	now := time.Now()
	todo := &models.Todo{
		ID:        s.nextTodoID,
		ListID:    listID,
		Title:     req.Title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.todos[todo.ID] = todo

	todoCopy := *todo
	return &todoCopy, nil
}

// GetTodosByList retrieves the todos in a list ordered by id ascending,
// optionally filtered by completion status. An unknown list yields an
// empty slice, not an error; list existence is the caller's concern.
func (s *Storage) GetTodosByList(listID uint, completed *bool) ([]models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Todo, 0)
	for _, todo := range s.todos {
		if todo.ListID != listID {
			continue
		}
		if completed != nil && todo.Completed != *completed {
			continue
		}
		result = append(result, *todo)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// GetTodoByID retrieves a todo by ID
func (s *Storage) GetTodoByID(id uint) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	todoCopy := *todo
	return &todoCopy, nil
}

// UpdateTodo updates the mutable fields of an existing todo
func (s *Storage) UpdateTodo(id uint, req models.UpdateTodoRequest) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, exists := s.todos[id]
	if !exists {
		return nil, ErrTodoNotFound
	}

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		todo.Title = *req.Title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	todo.UpdatedAt = time.Now()

	todoCopy := *todo
	return &todoCopy, nil
}

// DeleteTodo deletes a todo. Deleting an id that is already gone is an
// error, the second attempt included.
func (s *Storage) DeleteTodo(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return ErrTodoNotFound
	}

	delete(s.todos, id)
	return nil
}

// MarkAllCompleted marks every todo in a list as completed
func (s *Storage) MarkAllCompleted(listID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lists[listID]; !exists {
		return ErrListNotFound
	}

	now := time.Now()
	for _, todo := range s.todos {
		if todo.ListID == listID && !todo.Completed {
			todo.Completed = true
			todo.UpdatedAt = now
		}
	}

	return nil
}

// countTodosInList counts todos in a list (must be called with lock held)
func (s *Storage) countTodosInList(listID uint) (total, remaining int) {
	for _, todo := range s.todos {
		if todo.ListID == listID {
			total++
			if !todo.Completed {
				remaining++
			}
		}
	}
	return total, remaining
}
