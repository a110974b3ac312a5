package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api-docs", func(r chi.Router) {
		r.Get("/openapi.yaml", s.docs.ServeYAML)
		r.Get("/openapi.json", s.docs.ServeJSON)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/test-connection", s.testConnectionHandler)

		r.Route("/todos", func(r chi.Router) {
			r.Get("/", s.handle(s.listTodosHandler))
			r.With(s.validateTodoInput, s.validateListExists).Post("/", s.handle(s.createTodoHandler))
			r.With(s.validateListExists).Put("/{id}", s.handle(s.updateTodoHandler))
			r.Delete("/{id}", s.handle(s.deleteTodoHandler))
		})

		r.Route("/lists", func(r chi.Router) {
			r.Get("/", s.handle(s.listListsHandler))
			r.With(s.validateListInput).Post("/", s.handle(s.createListHandler))
			r.With(s.validateListInput).Put("/{id}", s.handle(s.updateListHandler))
			r.Delete("/{id}", s.handle(s.deleteListHandler))
			r.Get("/{id}/todos", s.handle(s.listTodosOfListHandler))
		})
	})

	return r
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

type connectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) testConnectionHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.TestConnection(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "database connection test failed",
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondWithJSON(w, http.StatusInternalServerError, connectionResult{
			Success: false,
			Message: "Database connection failed",
			Error:   err.Error(),
		})
		return
	}
	respondWithJSON(w, http.StatusOK, connectionResult{
		Success: true,
		Message: "Database connection successful!",
	})
}
