package main

import (
	"fmt"

	"github.com/phrazzld/task-api/internal/config"
)

// loadAppConfig loads the application configuration from the environment
// and optional config file. Returns the loaded config or an error if
// configuration loading or validation fails.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}
