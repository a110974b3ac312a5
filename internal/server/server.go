package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Tomlord1122/todo-lists-api/internal/config"
	"github.com/Tomlord1122/todo-lists-api/internal/database"
	"github.com/Tomlord1122/todo-lists-api/internal/docs"
	"github.com/Tomlord1122/todo-lists-api/internal/metrics"
	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Items   service.TodoItemService
	Lists   service.TodoListService
	DB      database.Service
	Metrics *metrics.Metrics
	Docs    *docs.Document
}

type Server struct {
	port        string
	items       service.TodoItemService
	lists       service.TodoListService
	db          database.Service
	metrics     *metrics.Metrics
	docs        *docs.Document
	logger      *slog.Logger
	corsOrigins []string

	// exposeErrorDetails adds the cause of a 500 to the response body.
	exposeErrorDetails bool
}

func New(cfg config.Config, logger *slog.Logger, deps Deps) *Server {
	return &Server{
		port:               cfg.Port,
		items:              deps.Items,
		lists:              deps.Lists,
		db:                 deps.DB,
		metrics:            deps.Metrics,
		docs:               deps.Docs,
		logger:             logger,
		corsOrigins:        cfg.CORSOrigins,
		exposeErrorDetails: !cfg.IsProduction(),
	}
}

func NewServer(cfg config.Config, logger *slog.Logger, deps Deps) *http.Server {
	appServer := New(cfg, logger, deps)

	return &http.Server{
		Addr:         ":" + appServer.port,
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}
