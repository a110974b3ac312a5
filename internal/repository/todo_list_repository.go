package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
)

// TodoListRepository defines the data operations on TodoLists.
type TodoListRepository interface {
	List(ctx context.Context, page Page) ([]domain.TodoList, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, list *domain.TodoList) error
	// Replace overwrites Name, Description and UserId of the list with
	// list.ListID. Nil optional fields are stored as NULL.
	Replace(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error)
	Delete(ctx context.Context, id int64) (*domain.TodoList, error)
}

type gormTodoListRepository struct {
	db *gorm.DB
}

func NewGormTodoListRepository(db *gorm.DB) TodoListRepository {
	return &gormTodoListRepository{db: db}
}

func listIDIs(id int64) clause.Eq {
	return clause.Eq{Column: column("ListId"), Value: id}
}

func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *gormTodoListRepository) List(ctx context.Context, page Page) ([]domain.TodoList, error) {
	lists := make([]domain.TodoList, 0, page.Limit)
	result := r.db.WithContext(ctx).
		Clauses(newestFirst("ListId")).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&lists)
	if result.Error != nil {
		return nil, result.Error
	}
	return lists, nil
}

// Exists reports whether a list with the given id is stored.
func (r *gormTodoListRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.TodoList{}).
		Where(listIDIs(id)).
		Limit(1).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *gormTodoListRepository) Create(ctx context.Context, list *domain.TodoList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *gormTodoListRepository) Replace(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error) {
	var updated []domain.TodoList
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where(listIDIs(list.ListID)).
		Updates(map[string]any{
			"Name":        list.Name,
			"Description": nullable(list.Description),
			"UserId":      nullable(list.UserID),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &updated[0], nil
}

// Delete removes the list and returns the deleted row. Items that
// referenced it are left as they are.
func (r *gormTodoListRepository) Delete(ctx context.Context, id int64) (*domain.TodoList, error) {
	var deleted []domain.TodoList
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where(listIDIs(id)).
		Delete(&deleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &deleted[0], nil
}
