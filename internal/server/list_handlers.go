package server

import (
	"net/http"

	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

const msgInvalidListPathID = "Invalid list ID provided"

func (s *Server) listListsHandler(w http.ResponseWriter, r *http.Request) error {
	p, err := parsePagination(r)
	if err != nil {
		return err
	}

	lists, err := s.lists.ListLists(r.Context(), p)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, lists)
	return nil
}

func (s *Server) createListHandler(w http.ResponseWriter, r *http.Request) error {
	var req service.ListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	list, err := s.lists.CreateList(r.Context(), req)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusCreated, list)
	return nil
}

func (s *Server) updateListHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, msgInvalidListPathID)
	if err != nil {
		return err
	}

	var req service.ListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	updated, err := s.lists.UpdateList(r.Context(), id, req)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, updated)
	return nil
}

type deleteListResponse struct {
	Success     bool             `json:"success"`
	DeletedList *domain.TodoList `json:"deletedList"`
}

func (s *Server) deleteListHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, msgInvalidListPathID)
	if err != nil {
		return err
	}

	deleted, err := s.lists.DeleteList(r.Context(), id)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, deleteListResponse{Success: true, DeletedList: deleted})
	return nil
}

// listTodosOfListHandler returns every item of the list. Unlike the other
// listings it is not paginated.
func (s *Server) listTodosOfListHandler(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r, msgInvalidListPathID)
	if err != nil {
		return err
	}

	todos, err := s.lists.ListTodos(r.Context(), id)
	if err != nil {
		return err
	}

	respondWithJSON(w, http.StatusOK, todos)
	return nil
}
