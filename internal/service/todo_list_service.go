package service

import (
	"context"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/repository"
)

// ListRequest is the body of both list creation and list replacement.
type ListRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	UserID      *int64  `json:"userId"`
}

// TodoListService defines the operations for managing todo lists.
type TodoListService interface {
	ListLists(ctx context.Context, p Pagination) ([]domain.TodoList, error)
	CreateList(ctx context.Context, req ListRequest) (*domain.TodoList, error)

	// UpdateList replaces every mutable field of the list. Optional fields
	// missing from req are cleared.
	UpdateList(ctx context.Context, id int64, req ListRequest) (*domain.TodoList, error)

	DeleteList(ctx context.Context, id int64) (*domain.TodoList, error)

	// ListTodos returns all items of a list, newest first. Not paginated.
	ListTodos(ctx context.Context, listID int64) ([]domain.TodoItem, error)

	// ListExists backs the referential check on item writes.
	ListExists(ctx context.Context, id int64) (bool, error)
}

type todoListService struct {
	lists repository.TodoListRepository
	items repository.TodoItemRepository
}

func NewTodoListService(lists repository.TodoListRepository, items repository.TodoItemRepository) TodoListService {
	return &todoListService{lists: lists, items: items}
}

func (s *todoListService) ListLists(ctx context.Context, p Pagination) ([]domain.TodoList, error) {
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	lists, err := s.lists.List(ctx, p.window())
	if err != nil {
		return nil, classify("list lists", ResourceList, err)
	}
	if lists == nil {
		lists = []domain.TodoList{}
	}
	return lists, nil
}

func (s *todoListService) CreateList(ctx context.Context, req ListRequest) (*domain.TodoList, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	list := &domain.TodoList{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, classify("create list", ResourceList, err)
	}
	return list, nil
}

func (s *todoListService) UpdateList(ctx context.Context, id int64, req ListRequest) (*domain.TodoList, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	updated, err := s.lists.Replace(ctx, &domain.TodoList{
		ListID:      id,
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		return nil, classify("update list", ResourceList, err)
	}
	return updated, nil
}

func (s *todoListService) DeleteList(ctx context.Context, id int64) (*domain.TodoList, error) {
	deleted, err := s.lists.Delete(ctx, id)
	if err != nil {
		return nil, classify("delete list", ResourceList, err)
	}
	return deleted, nil
}

func (s *todoListService) ListTodos(ctx context.Context, listID int64) ([]domain.TodoItem, error) {
	items, err := s.items.ListByList(ctx, listID)
	if err != nil {
		return nil, classify("list todos of list", ResourceList, err)
	}
	if items == nil {
		items = []domain.TodoItem{}
	}
	return items, nil
}

func (s *todoListService) ListExists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.lists.Exists(ctx, id)
	if err != nil {
		return false, &DatabaseError{Op: "check list exists", Err: err}
	}
	return exists, nil
}
