package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

const maxBodyBytes = 1 << 20

var errEmptyBody = &service.ValidationError{Message: "Request body must not be empty"}

// handlerFunc is a handler that reports failures instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts h to http.HandlerFunc, turning any returned error into the
// JSON error envelope.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message, Details: validationErr.Details})
	case errors.As(err, &notFoundErr):
		respondWithError(w, http.StatusNotFound, notFoundErr.Error())
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		body := errorResponse{Error: "Internal server error"}
		if s.exposeErrorDetails {
			body.Details = err.Error()
		}
		respondWithJSON(w, http.StatusInternalServerError, body)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// bufferBody reads the whole request body and puts a replayable copy back on
// r, so middleware can inspect the body the handler decodes later.
func bufferBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, &service.ValidationError{Message: fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesErr.Limit)}
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// decodeJSON decodes exactly one JSON object from the request body into dst.
// Client mistakes come back as *service.ValidationError; errEmptyBody is
// returned as is so callers can tell an empty body apart.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return describeDecodeError(err)
	}
	if decoder.More() {
		return &service.ValidationError{Message: "Request body must only contain a single JSON object"}
	}
	return nil
}

func describeDecodeError(err error) error {
	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var timeParseError *time.ParseError
	var maxBytesError *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxError):
		return &service.ValidationError{Message: fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &service.ValidationError{Message: "Request body contains badly-formed JSON"}
	case errors.As(err, &unmarshalTypeError):
		if unmarshalTypeError.Field == "" {
			return &service.ValidationError{Message: "Request body must be a JSON object"}
		}
		return &service.ValidationError{Message: fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)}
	case errors.As(err, &timeParseError), strings.HasPrefix(err.Error(), "Time.UnmarshalJSON"):
		return &service.ValidationError{Message: "Request body contains an invalid date; dates must be RFC 3339 strings"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return &service.ValidationError{Message: fmt.Sprintf("Request body contains unknown field %s", fieldName)}
	case errors.As(err, &maxBytesError):
		return &service.ValidationError{Message: fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit)}
	default:
		return fmt.Errorf("decode request body: %w", err)
	}
}
