// Package config собирает конфигурацию сервера: значения по умолчанию,
// затем JSON файл, затем переменные окружения и в конце флаги командной строки.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalid оборачивает любую ошибку конфигурации: сервер с такой конфигурацией не стартует
var ErrInvalid = errors.New("invalid configuration")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// S3 holds object storage settings for avatar uploads. An empty Bucket disables uploads.
type S3 struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PublicURL string // базовый адрес, по которому объекты доступны на чтение
}

// Config is built once at startup and never mutated afterwards.
type Config struct {
	S3              S3
	Addr            string
	DatabaseDriver  string
	DatabaseDSN     string
	JWTSecret       string
	LogLevel        string
	LogFormat       string
	CORSOrigins     []string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	AuthRate        float64 // запросов в секунду на IP для /auth/*
	AuthBurst       int
	BcryptCost      int
	CookieSecure    bool
}

// Default returns development defaults. JWTSecret is intentionally empty.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		DatabaseDriver:  DriverSQLite,
		DatabaseDSN:     "learnhub.db",
		TokenTTL:        72 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
		CORSOrigins:     []string{"http://localhost:3000"},
		AuthRate:        5,
		AuthBurst:       10,
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
		S3: S3{
			Region: "us-east-1",
		},
	}
}

// Load applies the configuration sources in order of precedence.
// args are the command line arguments without the program name.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	fl, err := parseFlags(args, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	path := fl.configPath
	if path == "" {
		path = getenv("LEARNHUB_CONFIG")
	}
	if path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}

	if err := loadEnv(getenv, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	fl.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is not set (JWT_SECRET)"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d is out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.AuthRate <= 0 || c.AuthBurst <= 0 {
		errs = append(errs, errors.New("auth rate limit and burst must be positive"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.S3.Bucket != "" && c.S3.PublicURL == "" {
		errs = append(errs, errors.New("s3 public url is required when a bucket is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// S3Enabled reports whether avatar uploads are configured.
func (c *Config) S3Enabled() bool {
	return c.S3.Bucket != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
