package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// Global configuration instance
	globalConfig *Config
	configMutex  sync.RWMutex
)

// Get returns the global configuration instance.
// If the configuration has not been initialized, it will return an error.
func Get() (*Config, error) {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	return globalConfig, nil
}

// Set sets the global configuration instance
func Set(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
}

// Config represents the complete application configuration
type Config struct {
	Jira    JiraConfig
	Ark     ArkConfig
	Poller  PollerConfig
	Logging LoggingConfig
}

// JiraConfig holds the issue-tracker connection and filter settings
type JiraConfig struct {
	// Connection settings
	BaseURL  string // Jira site URL, e.g. https://your-site.atlassian.net
	Username string // Account email for Basic auth
	APIToken string // API token paired with the username

	// Ticket filter
	ProjectKey string // Project (space) the poller watches
	IssueType  string // Work type the poller watches
	MaxResults int    // Search page cap

	// Request settings
	Timeout         time.Duration // Timeout for API calls
	DownloadTimeout time.Duration // Timeout for attachment downloads
	MaxRetries      int           // Maximum number of retries on failure
}

// ArkConfig holds the Ark (Doubao) review API configuration
type ArkConfig struct {
	// Authentication and connection
	APIKey  string // Ark API key
	BaseURL string // Ark API base URL
	Model   string // Model endpoint identifier

	// Request settings
	Timeout    time.Duration // Request timeout
	MaxRetries int           // Maximum number of retries on failure

	// Generation parameters
	Temperature    float64 // Sampling temperature
	EnableThinking bool    // Whether to request the model's thinking mode

	// Rate limiting
	RequestsPerMinute int
	BurstLimit        int
}

// PollerConfig holds the polling loop and trigger settings
type PollerConfig struct {
	Interval     time.Duration // Time between poll cycles
	StartHour    int           // First active hour of the day (inclusive, 0-23)
	EndHour      int           // Last active hour of the day (inclusive, 0-23)
	TriggerToken string        // At-mention token that authorizes a review
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		Jira:    JiraConfig{},
		Ark:     ArkConfig{},
		Poller:  PollerConfig{},
		Logging: LoggingConfig{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateJira(); err != nil {
		return fmt.Errorf("jira config: %w", err)
	}

	if err := c.validateArk(); err != nil {
		return fmt.Errorf("ark config: %w", err)
	}

	if err := c.validatePoller(); err != nil {
		return fmt.Errorf("poller config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

func (c *Config) validateJira() error {
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if c.Jira.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if c.Jira.APIToken == "" {
		return fmt.Errorf("API token cannot be empty")
	}

	if c.Jira.ProjectKey == "" {
		return fmt.Errorf("project key cannot be empty")
	}

	if c.Jira.IssueType == "" {
		return fmt.Errorf("issue type cannot be empty")
	}

	if c.Jira.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}

	if c.Jira.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.Jira.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive")
	}

	if c.Jira.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be positive")
	}

	return nil
}

func (c *Config) validateArk() error {
	if c.Ark.APIKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	if c.Ark.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	if c.Ark.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.Ark.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if c.Ark.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be positive")
	}

	if c.Ark.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive")
	}

	return nil
}

func (c *Config) validatePoller() error {
	if c.Poller.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	if c.Poller.StartHour < 0 || c.Poller.StartHour > 23 {
		return fmt.Errorf("start_hour must be between 0 and 23")
	}

	if c.Poller.EndHour < 0 || c.Poller.EndHour > 23 {
		return fmt.Errorf("end_hour must be between 0 and 23")
	}

	if c.Poller.StartHour > c.Poller.EndHour {
		return fmt.Errorf("start_hour must not be after end_hour")
	}

	if c.Poller.TriggerToken == "" {
		return fmt.Errorf("trigger token cannot be empty")
	}

	return nil
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" && level != "none" {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an int from the environment variable
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFloat returns a float64 from the environment variable
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
