package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// setupAppLogger configures the application's structured logger based on
// the loaded configuration and installs it as the process default.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return appLogger, nil
}
