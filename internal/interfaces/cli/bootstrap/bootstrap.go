// Package bootstrap prepares the process-wide state shared by every CLI
// command: configuration, logging, business timezone and database.
package bootstrap

import (
	"fmt"
	"os"

	"campusvoice/internal/infrastructure/config"
	"campusvoice/internal/infrastructure/database"
	"campusvoice/internal/shared/biztime"
	"campusvoice/internal/shared/logger"
)

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// GinMode maps a deployment environment onto a server mode.
func GinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

// Init loads configuration for environment and initializes logging and the
// business timezone. The database is left untouched.
func Init(environment string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(GinMode(environment))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase is Init followed by opening the configured database.
// Callers must defer database.Close.
func InitWithDatabase(environment string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(environment)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}
