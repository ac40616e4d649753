package commands

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/sommertheater/portal/internal/bootstrap"
	"github.com/sommertheater/portal/internal/pkg/config"
	"github.com/sommertheater/portal/internal/pkg/logger"
)

const defaultConfigPath = "./configs/rest-app.yaml"

// Runtime lazily loads configuration and wires the services on the first
// command that needs them, so that --help works without a database.
type Runtime struct {
	once      sync.Once
	container *bootstrap.Container
	logger    logger.Logger
	err       error
}

// NewRuntime creates an unopened runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Container returns the wired services, migrating the schema on first use.
func (rt *Runtime) Container(ctx context.Context) (*bootstrap.Container, logger.Logger, error) {
	rt.once.Do(func() {
		rt.container, rt.logger, rt.err = open(ctx)
	})
	return rt.container, rt.logger, rt.err
}

// Close releases the database when it was opened.
func (rt *Runtime) Close() error {
	if rt.container == nil {
		return nil
	}
	return rt.container.Close()
}

func open(ctx context.Context) (*bootstrap.Container, logger.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, nil, err
	}

	container, err := bootstrap.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := container.Migrate(ctx); err != nil {
		_ = container.Close()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return container, log, nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
