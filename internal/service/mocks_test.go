package service_test

import (
	"context"
	"time"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/repository"
)

type mockItemRepo struct {
	listFn       func(ctx context.Context, page repository.Page) ([]domain.TodoItem, error)
	listByListFn func(ctx context.Context, listID int64) ([]domain.TodoItem, error)
	findByIDFn   func(ctx context.Context, id int64) (*domain.TodoItem, error)
	createFn     func(ctx context.Context, item *domain.TodoItem) error
	updateFn     func(ctx context.Context, id int64, changes repository.TodoItemChanges) (*domain.TodoItem, error)
	deleteFn     func(ctx context.Context, id int64) (*domain.TodoItem, error)
}

func (m *mockItemRepo) List(ctx context.Context, page repository.Page) ([]domain.TodoItem, error) {
	return m.listFn(ctx, page)
}
func (m *mockItemRepo) ListByList(ctx context.Context, listID int64) ([]domain.TodoItem, error) {
	return m.listByListFn(ctx, listID)
}
func (m *mockItemRepo) FindByID(ctx context.Context, id int64) (*domain.TodoItem, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockItemRepo) Create(ctx context.Context, item *domain.TodoItem) error {
	return m.createFn(ctx, item)
}
func (m *mockItemRepo) Update(ctx context.Context, id int64, changes repository.TodoItemChanges) (*domain.TodoItem, error) {
	return m.updateFn(ctx, id, changes)
}
func (m *mockItemRepo) Delete(ctx context.Context, id int64) (*domain.TodoItem, error) {
	return m.deleteFn(ctx, id)
}

type mockListRepo struct {
	listFn    func(ctx context.Context, page repository.Page) ([]domain.TodoList, error)
	existsFn  func(ctx context.Context, id int64) (bool, error)
	createFn  func(ctx context.Context, list *domain.TodoList) error
	replaceFn func(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error)
	deleteFn  func(ctx context.Context, id int64) (*domain.TodoList, error)
}

func (m *mockListRepo) List(ctx context.Context, page repository.Page) ([]domain.TodoList, error) {
	return m.listFn(ctx, page)
}
func (m *mockListRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}
func (m *mockListRepo) Create(ctx context.Context, list *domain.TodoList) error {
	return m.createFn(ctx, list)
}
func (m *mockListRepo) Replace(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error) {
	return m.replaceFn(ctx, list)
}
func (m *mockListRepo) Delete(ctx context.Context, id int64) (*domain.TodoList, error) {
	return m.deleteFn(ctx, id)
}

var now = time.Date(2025, 5, 10, 1, 42, 26, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}
