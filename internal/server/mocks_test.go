package server_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-lists-api/internal/config"
	"github.com/Tomlord1122/todo-lists-api/internal/database"
	"github.com/Tomlord1122/todo-lists-api/internal/docs"
	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/metrics"
	"github.com/Tomlord1122/todo-lists-api/internal/repository"
	"github.com/Tomlord1122/todo-lists-api/internal/server"
	"github.com/Tomlord1122/todo-lists-api/internal/service"
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

type fakeDB struct {
	health  map[string]string
	testErr error
}

func (f *fakeDB) Health() map[string]string                { return f.health }
func (f *fakeDB) TestConnection(ctx context.Context) error { return f.testErr }
func (f *fakeDB) State() database.State                    { return database.StateReady }
func (f *fakeDB) Close() error                             { return nil }
func (f *fakeDB) GetDB() *gorm.DB                          { return nil }
func (f *fakeDB) SQLDB() *sql.DB                           { return nil }

type testEnv struct {
	items   *mockItemRepo
	lists   *mockListRepo
	db      *fakeDB
	metrics *metrics.Metrics
	logs    *bytes.Buffer
	handler http.Handler
}

func newTestEnv(t *testing.T, appEnv string) *testEnv {
	t.Helper()

	doc, err := docs.New("")
	require.NoError(t, err)

	env := &testEnv{
		items:   &mockItemRepo{},
		lists:   &mockListRepo{},
		db:      &fakeDB{health: map[string]string{"status": "up"}},
		metrics: metrics.New(),
		logs:    &bytes.Buffer{},
	}
	cfg := config.Config{
		Port:        "8080",
		AppEnv:      appEnv,
		CORSOrigins: []string{"*"},
	}
	logger := slog.New(slog.NewJSONHandler(env.logs, nil))

	env.handler = server.New(cfg, logger, server.Deps{
		Items:   service.NewTodoItemService(env.items),
		Lists:   service.NewTodoListService(env.lists, env.items),
		DB:      env.db,
		Metrics: env.metrics,
		Docs:    doc,
	}).RegisterRoutes()
	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got), "body: %s", w.Body.String())
	return got
}

func ptr[T any](v T) *T {
	return &v
}
