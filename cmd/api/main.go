package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/Tomlord1122/todo-lists-api/internal/config"
	"github.com/Tomlord1122/todo-lists-api/internal/database"
	"github.com/Tomlord1122/todo-lists-api/internal/docs"
	"github.com/Tomlord1122/todo-lists-api/internal/domain"
	"github.com/Tomlord1122/todo-lists-api/internal/metrics"
	"github.com/Tomlord1122/todo-lists-api/internal/repository"
	"github.com/Tomlord1122/todo-lists-api/internal/server"
	"github.com/Tomlord1122/todo-lists-api/internal/service"
)

func gracefulShutdown(logger *slog.Logger, apiServer *http.Server, dbService database.Service, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The server has 5 seconds to finish the requests it is currently handling.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("closing database connection pool")
	if err := dbService.Close(); err != nil {
		logger.Error("failed to close database connection pool", "error", err)
	} else {
		logger.Info("database connection pool closed")
	}

	logger.Info("server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.ParseLogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dbService, err := database.New(cfg.DB, logger)
	if err != nil {
		// A *database.StartupError is fatal; there is no retry.
		logger.Error("database connection failed, exiting", "host", cfg.DB.Host, "database", cfg.DB.Name, "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database", "host", cfg.DB.Host, "database", cfg.DB.Name)

	gormDB := dbService.GetDB()
	if cfg.DB.AutoMigrate {
		logger.Info("running database auto-migration")
		if err := gormDB.AutoMigrate(domain.Models()...); err != nil {
			logger.Error("failed to auto-migrate database", "error", err)
			_ = dbService.Close()
			os.Exit(1)
		}
		logger.Info("database auto-migration complete")
	}

	appMetrics := metrics.New()
	if err := appMetrics.RegisterDB(dbService.SQLDB(), cfg.DB.Name); err != nil {
		logger.Warn("failed to register database pool metrics", "error", err)
	}

	apiDocs, err := docs.New(cfg.SwaggerBaseURL)
	if err != nil {
		logger.Error("failed to load API documentation", "error", err)
		_ = dbService.Close()
		os.Exit(1)
	}

	itemRepo := repository.NewGormTodoItemRepository(gormDB)
	listRepo := repository.NewGormTodoListRepository(gormDB)

	apiServer := server.NewServer(cfg, logger, server.Deps{
		Items:   service.NewTodoItemService(itemRepo),
		Lists:   service.NewTodoListService(listRepo, itemRepo),
		DB:      dbService,
		Metrics: appMetrics,
		Docs:    apiDocs,
	})

	done := make(chan bool, 1)
	go gracefulShutdown(logger, apiServer, dbService, done)

	logger.Info("starting server", "addr", apiServer.Addr, "env", cfg.AppEnv)
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		_ = dbService.Close()
		os.Exit(1)
	}

	<-done
	logger.Info("graceful shutdown complete")
}
