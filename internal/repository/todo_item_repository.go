package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
)

// TodoItemChanges holds the columns of a partial update. Nil fields keep
// their stored value.
type TodoItemChanges struct {
	Title       *string
	Description *string
	Priority    *int
	DueDate     *time.Time
	IsCompleted *bool
	ListID      *int64
}

func (c TodoItemChanges) columns() map[string]any {
	cols := make(map[string]any)
	if c.Title != nil {
		cols["Title"] = *c.Title
	}
	if c.Description != nil {
		cols["Description"] = *c.Description
	}
	if c.Priority != nil {
		cols["Priority"] = *c.Priority
	}
	if c.DueDate != nil {
		cols["DueDate"] = *c.DueDate
	}
	if c.IsCompleted != nil {
		cols["IsCompleted"] = *c.IsCompleted
	}
	if c.ListID != nil {
		cols["ListId"] = *c.ListID
	}
	return cols
}

// TodoItemRepository defines the data operations on TodoItems.
// Lookups that match no row return gorm.ErrRecordNotFound.
type TodoItemRepository interface {
	List(ctx context.Context, page Page) ([]domain.TodoItem, error)
	ListByList(ctx context.Context, listID int64) ([]domain.TodoItem, error)
	FindByID(ctx context.Context, id int64) (*domain.TodoItem, error)
	Create(ctx context.Context, item *domain.TodoItem) error
	Update(ctx context.Context, id int64, changes TodoItemChanges) (*domain.TodoItem, error)
	Delete(ctx context.Context, id int64) (*domain.TodoItem, error)
}

type gormTodoItemRepository struct {
	db *gorm.DB
}

func NewGormTodoItemRepository(db *gorm.DB) TodoItemRepository {
	return &gormTodoItemRepository{db: db}
}

func itemIDIs(id int64) clause.Eq {
	return clause.Eq{Column: column("Id"), Value: id}
}

// List returns one page of items, newest first.
func (r *gormTodoItemRepository) List(ctx context.Context, page Page) ([]domain.TodoItem, error) {
	items := make([]domain.TodoItem, 0, page.Limit)
	result := r.db.WithContext(ctx).
		Clauses(newestFirst("Id")).
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

// ListByList returns every item attached to the list, newest first.
func (r *gormTodoItemRepository) ListByList(ctx context.Context, listID int64) ([]domain.TodoItem, error) {
	items := make([]domain.TodoItem, 0)
	result := r.db.WithContext(ctx).
		Where(clause.Eq{Column: column("ListId"), Value: listID}).
		Clauses(newestFirst("Id")).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *gormTodoItemRepository) FindByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	var item domain.TodoItem
	result := r.db.WithContext(ctx).Where(itemIDIs(id)).First(&item)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

// Create inserts the item. Id, CreatedDate and the defaulted columns are
// filled in from the row the store returns.
func (r *gormTodoItemRepository) Create(ctx context.Context, item *domain.TodoItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// Update applies only the supplied columns in a single UPDATE ... RETURNING.
func (r *gormTodoItemRepository) Update(ctx context.Context, id int64, changes TodoItemChanges) (*domain.TodoItem, error) {
	cols := changes.columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	var updated []domain.TodoItem
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where(itemIDIs(id)).
		Updates(cols)
	if result.Error != nil {
		return nil, translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &updated[0], nil
}

// Delete removes the item physically and returns the deleted row.
func (r *gormTodoItemRepository) Delete(ctx context.Context, id int64) (*domain.TodoItem, error) {
	var deleted []domain.TodoItem
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where(itemIDIs(id)).
		Delete(&deleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(deleted) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &deleted[0], nil
}
