// Package main implements the entry point for the task API server,
// which exposes CRUD and listing operations over the task collection.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
)

// main is the entry point for the task-api server. It loads configuration,
// sets up structured logging, connects to the database, wires the
// application dependencies and starts the HTTP server. When a migration
// command is given it runs that instead of serving.
func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command (up, down, status, version, create) instead of the server")
	migrationName := flag.String("name", "", "Name for a new migration (used with -migrate create)")
	flag.Parse()

	if err := run(*migrateCmd, *migrationName); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

// run carries the real program logic so main stays a thin exit-code shim.
func run(migrateCmd, migrationName string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd, migrationName)
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		// newApplication does not own the connection until it returns
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
