// ABOUTME: Entry point for the aios-chat persistence sidecar
// ABOUTME: Owns the chat database and OS keychain access for the desktop shell

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/aios/aios-chat/internal/commands"
	"github.com/aios/aios-chat/internal/config"
	"github.com/aios/aios-chat/internal/secrets"
	"github.com/aios/aios-chat/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: aios-chat <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Serve shell commands over stdio")
		fmt.Println("  paths     Print resolved config and database paths")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "paths":
		err = runPaths()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none exists
func loadConfig() (*config.Config, string, error) {
	configPath := config.DefaultConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(), configPath, nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

func runServe(ctx context.Context) error {
	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	// Stdout carries the shell protocol, so all human-facing output and
	// logging goes to stderr
	gray := color.New(color.FgHiBlack)
	gray.Fprintf(os.Stderr, "aios-chat %s\n", version)

	green := color.New(color.FgGreen)
	green.Fprint(os.Stderr, "  ▶ ")
	fmt.Fprintf(os.Stderr, "Config:   %s\n", configPath)
	green.Fprint(os.Stderr, "  ▶ ")
	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.Database.Path)

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	credentials := secrets.New(cfg.Keyring.Service)
	dispatcher := commands.New(st, st, st, credentials)

	logger.Info("starting aios-chat sidecar",
		"config", configPath,
		"database", cfg.Database.Path,
	)

	return serve(ctx, dispatcher, os.Stdin, os.Stdout, logger)
}

func runPaths() error {
	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("config:   %s\n", configPath)
	fmt.Printf("database: %s\n", cfg.Database.Path)
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
