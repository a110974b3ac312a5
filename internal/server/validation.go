package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

// bodyFields buffers the request body and splits it into its top-level
// fields. An empty body yields no fields.
func bodyFields(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	body, err := bufferBody(w, r)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, describeDecodeError(err)
	}
	return fields, nil
}

// nonEmptyString reports whether raw holds a JSON string other than "".
func nonEmptyString(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return s != ""
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// requireStringField rejects bodies whose field is missing, not a string or empty.
func (s *Server) requireStringField(field, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields, err := bodyFields(w, r)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if raw, ok := fields[field]; !ok || !nonEmptyString(raw) {
				s.writeError(w, r, service.NewFieldError(message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) validateTodoInput(next http.Handler) http.Handler {
	return s.requireStringField("title", service.MsgTitleRequired)(next)
}

func (s *Server) validateListInput(next http.Handler) http.Handler {
	return s.requireStringField("name", service.MsgListNameRequired)(next)
}

// validateListExists checks that a listId supplied in the body names an
// existing list. A missing or null listId passes through untouched; zero is
// checked like any other id.
func (s *Server) validateListExists(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields, err := bodyFields(w, r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		raw, ok := fields["listId"]
		if !ok || isNull(raw) {
			next.ServeHTTP(w, r)
			return
		}

		var listID int64
		if err := json.Unmarshal(raw, &listID); err != nil {
			s.writeError(w, r, &service.ValidationError{Message: service.MsgInvalidListID})
			return
		}
		exists, err := s.lists.ListExists(r.Context(), listID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if !exists {
			s.writeError(w, r, &service.ValidationError{Message: service.MsgInvalidListID})
			return
		}
		next.ServeHTTP(w, r)
	})
}
