package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

var validEnvs = map[string]bool{
	EnvDevelopment: true,
	EnvTest:        true,
	EnvProduction:  true,
}

type Config struct {
	Port           string
	AppEnv         string
	LogLevel       string
	CORSOrigins    []string
	SwaggerBaseURL string
	DB             DBConfig
}

// IsProduction reports whether error details must be withheld from clients.
func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of development, test, production", c.AppEnv)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGIN must name at least one origin")
	}
	return c.DB.Validate()
}

type DBConfig struct {
	Host                   string
	Port                   string
	User                   string
	Password               string
	Name                   string
	Encrypt                bool
	TrustServerCertificate bool
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetime        time.Duration
	AutoMigrate            bool
}

func (d DBConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if _, err := strconv.Atoi(d.Port); err != nil {
		return fmt.Errorf("invalid DB_PORT %q: %w", d.Port, err)
	}
	if d.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if d.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", d.MaxOpenConns)
	}
	if d.MaxIdleConns < 0 || d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS, got %d", d.MaxIdleConns)
	}
	if d.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME cannot be negative")
	}
	return nil
}

// SSLMode translates the encryption flags into a libpq sslmode.
func (d DBConfig) SSLMode() string {
	switch {
	case !d.Encrypt:
		return "disable"
	case d.TrustServerCertificate:
		return "require"
	default:
		return "verify-full"
	}
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode())),
	}
	return u.String()
}

func Load() Config {
	return Config{
		Port:           envOrDefault("PORT", "8080"),
		AppEnv:         strings.ToLower(envOrDefault("APP_ENV", EnvProduction)),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		CORSOrigins:    splitList(envOrDefault("CORS_ORIGIN", "*")),
		SwaggerBaseURL: os.Getenv("SWAGGER_BASE_URL"),
		DB: DBConfig{
			Host:                   envOrDefault("DB_HOST", envOrDefault("DB_SERVER", "localhost")),
			Port:                   envOrDefault("DB_PORT", "5432"),
			User:                   envOrDefault("DB_USER", "todo"),
			Password:               envOrDefault("DB_PASSWORD", "todo"),
			Name:                   envOrDefault("DB_NAME", "todo"),
			Encrypt:                boolEnv("DB_ENCRYPT", true),
			TrustServerCertificate: boolEnv("DB_TRUST_SERVER_CERTIFICATE", false),
			MaxOpenConns:           intEnv("DB_MAX_OPEN_CONNS", 100),
			MaxIdleConns:           intEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime:        durationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:            boolEnv("DB_AUTO_MIGRATE", false),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func boolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
