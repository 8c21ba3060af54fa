package storage

import (
	"errors"

	"todostore/internal/logging"
	"todostore/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DatabaseStorage implements the storage contract on a relational engine
// through GORM. Production runs PostgreSQL; tests and development run
// SQLite. The session must be opened with error translation enabled so
// constraint violations surface as gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
type DatabaseStorage struct {
	db *gorm.DB
}

// NewDatabaseStorage creates a new database-backed storage instance
func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

// logOp records a storage operation at debug level when logging is
// initialized.
func logOp(op string, fields logrus.Fields) {
	if logging.Logger == nil {
		return
	}
	logging.Logger.WithFields(fields).Debug(op)
}

// CreateList creates a new todo list
func (s *DatabaseStorage) CreateList(req models.CreateListRequest) (*models.List, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	logOp("create list", logrus.Fields{"title": req.Title})

	// Check if list with same title exists
	var existing models.List
	result := s.db.Where("title = ?", req.Title).First(&existing)
	if result.Error == nil {
		return nil, ErrDuplicateTitle
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	list := &models.List{
		Title: req.Title,
	}

	if err := s.db.Create(list).Error; err != nil {
		// The unique index decides races the pre-check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}

	return list, nil
}

// GetAllLists retrieves all todo lists ordered by id ascending
func (s *DatabaseStorage) GetAllLists() ([]models.List, error) {
	logOp("get all lists", nil)

	var lists []models.List
	if err := s.db.Order("id ASC").Find(&lists).Error; err != nil {
		return nil, err
	}

	for i := range lists {
		if err := s.fillCounts(&lists[i]); err != nil {
			return nil, err
		}
	}

	return lists, nil
}

// GetListByID retrieves a todo list by ID
func (s *DatabaseStorage) GetListByID(id uint) (*models.List, error) {
	logOp("get list", logrus.Fields{"list_id": id})

	var list models.List
	if err := s.db.First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	if err := s.fillCounts(&list); err != nil {
		return nil, err
	}

	return &list, nil
}

// UpdateList renames an existing todo list
func (s *DatabaseStorage) UpdateList(id uint, req models.UpdateListRequest) (*models.List, error) {
	logOp("update list", logrus.Fields{"list_id": id})

	var list models.List
	if err := s.db.First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	if req.Title != nil && *req.Title != list.Title {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}

		var existing models.List
		result := s.db.Where("title = ? AND id != ?", *req.Title, id).First(&existing)
		if result.Error == nil {
			return nil, ErrDuplicateTitle
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}

		list.Title = *req.Title
		if err := s.db.Save(&list).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateTitle
			}
			return nil, err
		}
	}

	if err := s.fillCounts(&list); err != nil {
		return nil, err
	}

	return &list, nil
}

// DeleteList deletes a todo list and all its todos in one transaction.
// The schema also declares ON DELETE CASCADE, so either side of the
// two-step removal failing rolls back the whole unit.
func (s *DatabaseStorage) DeleteList(id uint) error {
	logOp("delete list", logrus.Fields{"list_id": id})

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&models.Todo{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.List{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListNotFound
		}
		return nil
	})
}

// CreateTodo creates a new todo in a list
func (s *DatabaseStorage) CreateTodo(listID uint, req models.CreateTodoRequest) (*models.Todo, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	logOp("create todo", logrus.Fields{"list_id": listID, "title": req.Title})

	// Check if the parent list exists
	var list models.List
	if err := s.db.First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	todo := &models.Todo{
		ListID:    listID,
		Title:     req.Title,
		Completed: false,
	}

	if err := s.db.Create(todo).Error; err != nil {
		// The list was deleted between the check and the insert; the
		// foreign key catches it.
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	return todo, nil
}

// GetTodosByList retrieves the todos in a list ordered by id ascending,
// optionally filtered by completion status. An unknown list yields an
// empty slice, not an error.
func (s *DatabaseStorage) GetTodosByList(listID uint, completed *bool) ([]models.Todo, error) {
	logOp("get todos", logrus.Fields{"list_id": listID})

	query := s.db.Where("list_id = ?", listID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	todos := make([]models.Todo, 0)
	if err := query.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, err
	}

	return todos, nil
}

// GetTodoByID retrieves a todo by ID
func (s *DatabaseStorage) GetTodoByID(id uint) (*models.Todo, error) {
	logOp("get todo", logrus.Fields{"todo_id": id})

	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return &todo, nil
}

// UpdateTodo updates the mutable fields of an existing todo
func (s *DatabaseStorage) UpdateTodo(id uint, req models.UpdateTodoRequest) (*models.Todo, error) {
	logOp("update todo", logrus.Fields{"todo_id": id})

	var todo models.Todo
	if err := s.db.First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
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

	if err := s.db.Save(&todo).Error; err != nil {
		return nil, err
	}

	return &todo, nil
}

// DeleteTodo deletes a todo
func (s *DatabaseStorage) DeleteTodo(id uint) error {
	logOp("delete todo", logrus.Fields{"todo_id": id})

	result := s.db.Delete(&models.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// MarkAllCompleted marks every todo in a list as completed
func (s *DatabaseStorage) MarkAllCompleted(listID uint) error {
	logOp("mark all completed", logrus.Fields{"list_id": listID})

	var list models.List
	if err := s.db.First(&list, "id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return err
	}

	return s.db.Model(&models.Todo{}).
		Where("list_id = ? AND completed = ?", listID, false).
		Update("completed", true).Error
}

// fillCounts populates the computed todo counters on a list
func (s *DatabaseStorage) fillCounts(list *models.List) error {
	var total, remaining int64
	if err := s.db.Model(&models.Todo{}).Where("list_id = ?", list.ID).Count(&total).Error; err != nil {
		return err
	}
	if err := s.db.Model(&models.Todo{}).
		Where("list_id = ? AND completed = ?", list.ID, false).
		Count(&remaining).Error; err != nil {
		return err
	}
	list.TodoCount = int(total)
	list.Remaining = int(remaining)
	return nil
}
