package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iudanet/learnhub/internal/client/api"
	"github.com/iudanet/learnhub/internal/client/auth"
	"github.com/iudanet/learnhub/internal/client/cli"
	"github.com/iudanet/learnhub/internal/client/iocli"
	"github.com/iudanet/learnhub/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "learnhub-client.db", "Path to local session database")
	passwordFile := flag.String("password-file", "", "Read password from file")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Usage = func() { cli.PrintUsage(os.Stderr) }
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger, *serverURL, *dbPath, *passwordFile, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(logger *slog.Logger, serverURL, dbPath, passwordFile string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := boltdb.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(strings.TrimRight(serverURL, "/"))
	authService := auth.NewService(apiClient, store, logger)

	c := cli.New(iocli.NewStdio(), authService, apiClient, cli.Passwords{FromFile: passwordFile})
	return c.Run(ctx, args[0], args[1:])
}

func printVersion() {
	fmt.Printf("LearnHub Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
