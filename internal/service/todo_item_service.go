package service

import (
	"context"
	"time"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo item.
type CreateTodoRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	ListID      *int64     `json:"listId"`
}

// UpdateTodoRequest holds a partial update. Pointers distinguish an omitted
// field from one set to its zero value (e.g. isCompleted=false).
type UpdateTodoRequest struct {
	Title       *string    `json:"title" validate:"omitnil,min=1"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
	ListID      *int64     `json:"listId"`
}

// TodoItemService defines the operations for managing todo items.
type TodoItemService interface {
	// ListTodos returns one page of items, newest first.
	ListTodos(ctx context.Context, p Pagination) ([]domain.TodoItem, error)

	// CreateTodo inserts an item and returns the stored row.
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.TodoItem, error)

	// UpdateTodo overwrites only the fields present in req.
	UpdateTodo(ctx context.Context, id int64, req UpdateTodoRequest) (*domain.TodoItem, error)

	// DeleteTodo removes an item and returns the deleted row.
	DeleteTodo(ctx context.Context, id int64) (*domain.TodoItem, error)
}

type todoItemService struct {
	repo repository.TodoItemRepository
}

func NewTodoItemService(repo repository.TodoItemRepository) TodoItemService {
	return &todoItemService{repo: repo}
}

func (s *todoItemService) ListTodos(ctx context.Context, p Pagination) ([]domain.TodoItem, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, p.window())
	if err != nil {
		return nil, classify("list todos", ResourceTodo, err)
	}
	if items == nil {
		items = []domain.TodoItem{}
	}
	return items, nil
}

func (s *todoItemService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.TodoItem, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	item := &domain.TodoItem{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		ListID:      req.ListID,
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, classify("create todo", ResourceTodo, err)
	}
	return item, nil
}

func (s *todoItemService) UpdateTodo(ctx context.Context, id int64, req UpdateTodoRequest) (*domain.TodoItem, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, repository.TodoItemChanges{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
		ListID:      req.ListID,
	})
	if err != nil {
		return nil, classify("update todo", ResourceTodo, err)
	}
	return updated, nil
}

func (s *todoItemService) DeleteTodo(ctx context.Context, id int64) (*domain.TodoItem, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, classify("delete todo", ResourceTodo, err)
	}
	return deleted, nil
}
