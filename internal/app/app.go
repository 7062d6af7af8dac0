// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dt-fin-tools/lawhelper/internal/ark"
	"github.com/dt-fin-tools/lawhelper/internal/config"
	"github.com/dt-fin-tools/lawhelper/internal/jira"
	"github.com/dt-fin-tools/lawhelper/internal/loggy"
	"github.com/dt-fin-tools/lawhelper/internal/poller"
	"github.com/dt-fin-tools/lawhelper/internal/review"
)

// App represents the application instance with its dependencies
type App struct {
	Config *config.Config
	Jira   *jira.Client
	Ark    *ark.Client
	Review *review.Service
	Poller *poller.Service
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"version", os.Getenv("VERSION"),
		"log_level", cfg.Logging.Level,
	)

	app, err := initServices(cfg)
	if err != nil {
		return nil, err
	}

	loggy.Info("Application initialized successfully")
	return app, nil
}

// initConfig loads and sets up the application configuration
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	config.Set(cfg)
	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// initServices initializes all application services
func initServices(cfg *config.Config) (*App, error) {
	logger := loggy.GetGlobalLogger()

	jiraClient := jira.NewClient(cfg.Jira, logger)
	arkClient := ark.NewClient(cfg.Ark, logger)

	reviewService := review.NewService(
		jiraClient,
		arkClient,
		cfg.Poller.TriggerToken,
		logger,
	)

	pollerService := poller.NewService(
		jiraClient,
		reviewService,
		cfg.Poller,
		logger,
	)

	return &App{
		Config: cfg,
		Jira:   jiraClient,
		Ark:    arkClient,
		Review: reviewService,
		Poller: pollerService,
	}, nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")
	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
