package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/iudanet/learnhub/internal/crypto"
	"github.com/iudanet/learnhub/internal/server"
	"github.com/iudanet/learnhub/internal/server/avatar"
	"github.com/iudanet/learnhub/internal/server/config"
	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/internal/server/storage/sqlstore"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	args := os.Args[1:]
	if slices.Contains(args, "-version") || slices.Contains(args, "--version") {
		printVersion()
		return
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "learnhub: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// ошибки конструкторов ниже это ConfigurationFatal: сервер не стартует
	hasher, err := crypto.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}

	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect := sqlstore.SQLite
	if cfg.DatabaseDriver == config.DriverPostgres {
		dialect = sqlstore.Postgres
	}

	store, err := sqlstore.New(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	deps := server.Deps{
		Logger:       logger,
		Store:        store,
		DB:           store.DB(),
		Tokens:       tokens,
		Hasher:       hasher,
		Version:      Version,
		CORSOrigins:  cfg.CORSOrigins,
		AuthRate:     cfg.AuthRate,
		AuthBurst:    cfg.AuthBurst,
		CookieSecure: cfg.CookieSecure,
	}

	if cfg.S3Enabled() {
		presigner, err := avatar.NewPresigner(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("avatar storage: %w", err)
		}
		deps.Avatars = presigner
		logger.Info("avatar uploads enabled", slog.String("bucket", cfg.S3.Bucket))
	}

	logger.Info("learnhub server starting",
		slog.String("version", Version),
		slog.String("database", cfg.DatabaseDriver))

	err = server.New(cfg.Addr, deps).Run(ctx, cfg.ShutdownTimeout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printVersion() {
	fmt.Printf("LearnHub Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
