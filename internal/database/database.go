package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/todo-lists-api/internal/config"
)

// State is a step in the pool lifecycle:
// Uninitialized -> Connecting -> Ready -> Closing -> Closed.
type State int32

const (
	StateUninitialized State = iota
	StateConnecting
	StateReady
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var ErrNotReady = errors.New("database pool is not ready")

// StartupError reports that the pool could not be brought to Ready.
// It is fatal: the caller is expected to terminate the process.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("database startup failed: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string
	// TestConnection runs a trivial query through the pool.
	TestConnection(ctx context.Context) error
	State() State
	// Close drains the pool. Calling it more than once is a no-op.
	Close() error
	GetDB() *gorm.DB
	SQLDB() *sql.DB
}

type service struct {
	db    *gorm.DB
	sqlDB *sql.DB
	name  string
	state atomic.Int32
}

const pingTimeout = 5 * time.Second

// New opens the pool and verifies it with a ping. There is no retry.
func New(cfg config.DBConfig, log *slog.Logger) (Service, error) {
	s := &service{name: cfg.Name}
	s.state.Store(int32(StateConnecting))

	connConfig, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, &StartupError{Err: fmt.Errorf("parse connection config: %w", err)}
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &StartupError{Err: fmt.Errorf("ping %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)}
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, &StartupError{Err: fmt.Errorf("open gorm: %w", err)}
	}

	s.db = db
	s.sqlDB = sqlDB
	s.state.Store(int32(StateReady))
	return s, nil
}

// newGormLogger routes GORM's SQL log through slog. Every statement is
// logged only when the application runs at debug level.
func newGormLogger(log *slog.Logger) logger.Interface {
	level, slogLevel := logger.Warn, slog.LevelWarn
	if log.Enabled(context.Background(), slog.LevelDebug) {
		level, slogLevel = logger.Info, slog.LevelDebug
	}
	return logger.New(
		slog.NewLogLogger(log.Handler(), slogLevel),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

func (s *service) SQLDB() *sql.DB {
	return s.sqlDB
}

func (s *service) State() State {
	return State(s.state.Load())
}

func (s *service) TestConnection(ctx context.Context) error {
	if s.State() != StateReady {
		return ErrNotReady
	}
	if err := s.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("test query: %w", err)
	}
	return nil
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	state := s.State()
	stats["state"] = state.String()
	if state != StateReady {
		stats["status"] = "down"
		stats["error"] = ErrNotReady.Error()
		return stats
	}

	if err := s.sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if maxOpen := dbStats.MaxOpenConnections; maxOpen > 0 && dbStats.OpenConnections > maxOpen*8/10 {
		stats["message"] = "The database is experiencing heavy load."
	}

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	if dbStats.MaxIdleClosed > int64(dbStats.OpenConnections)/2 && dbStats.OpenConnections > dbStats.Idle {
		stats["message"] = "Many idle connections are being closed, consider revising the connection pool settings."
	}

	if dbStats.MaxLifetimeClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many connections are being closed due to max lifetime, consider increasing DB_CONN_MAX_LIFETIME."
	}

	return stats
}

func (s *service) Close() error {
	if !s.state.CompareAndSwap(int32(StateReady), int32(StateClosing)) {
		return nil
	}
	defer s.state.Store(int32(StateClosed))

	if err := s.sqlDB.Close(); err != nil {
		return fmt.Errorf("close pool for database %s: %w", s.name, err)
	}
	return nil
}
