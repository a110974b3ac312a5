package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

// parseID reads the {id} path parameter, which must be a positive integer.
func parseID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Message: message}
	}
	return id, nil
}

// parsePagination reads page and limit from the query string. Absent values
// fall back to the defaults; range checks are left to the service.
func parsePagination(r *http.Request) (service.Pagination, error) {
	p := service.DefaultPagination()
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return p, &service.ValidationError{Message: service.MsgInvalidPage}
		}
		p.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return p, &service.ValidationError{Message: service.MsgInvalidLimit}
		}
		p.Limit = limit
	}
	return p, nil
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := parsePagination(r)
	if err != nil {
		return err
	}

	todos, err := s.items.ListTodos(r.Context(), p)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, todos)
	return nil
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) error {
	var req service.CreateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	todo, err := s.items.CreateTodo(r.Context(), req)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusCreated, todo)
	return nil
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, "Invalid todo ID provided")
	if err != nil {
		return err
	}

	// An empty body changes nothing and returns the current row.
	var req service.UpdateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		return err
	}

	updated, err := s.items.UpdateTodo(r.Context(), id, req)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, updated)
	return nil
}

type deleteTodoResponse struct {
	Success     bool             `json:"success"`
	DeletedItem *domain.TodoItem `json:"deletedItem"`
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, "Invalid todo ID provided")
	if err != nil {
		return err
	}

	deleted, err := s.items.DeleteTodo(r.Context(), id)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, deleteTodoResponse{Success: true, DeletedItem: deleted})
	return nil
}
