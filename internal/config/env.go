package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables.
// envFilePath optionally names a .env file; when empty, the loader tries
// ENV_FILE_PATH, then ~/.lawhelper/.env, then .env in the current directory.
func LoadFromEnv(envFilePath string) (*Config, error) {
	cfg := New()

	if envFilePath == "" {
		envFilePath = getEnvString("ENV_FILE_PATH", "")
	}

	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		if homeDir, err := os.UserHomeDir(); err == nil {
			_ = godotenv.Load(filepath.Join(homeDir, ".lawhelper", ".env"))
		}
		// Current directory as fallback; ignore errors if the file doesn't exist
		_ = godotenv.Load()
	}

	cfg.Jira = JiraConfig{
		BaseURL:         getEnvString("LAWHELPER_JIRA_SERVER", ""),
		Username:        getEnvString("LAWHELPER_JIRA_USERNAME", ""),
		APIToken:        getEnvString("LAWHELPER_JIRA_API_TOKEN", ""),
		ProjectKey:      getEnvString("LAWHELPER_JIRA_PROJECT_KEY", ""),
		IssueType:       getEnvString("LAWHELPER_JIRA_ISSUE_TYPE", ""),
		MaxResults:      getEnvInt("LAWHELPER_JIRA_MAX_RESULTS", 200),
		Timeout:         getEnvDuration("LAWHELPER_JIRA_TIMEOUT", 10*time.Second),
		DownloadTimeout: getEnvDuration("LAWHELPER_JIRA_DOWNLOAD_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("LAWHELPER_JIRA_MAX_RETRIES", 3),
	}

	cfg.Ark = ArkConfig{
		APIKey:            getEnvString("LAWHELPER_ARK_API_KEY", ""),
		BaseURL:           getEnvString("LAWHELPER_ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Model:             getEnvString("LAWHELPER_ARK_MODEL", ""),
		Timeout:           getEnvDuration("LAWHELPER_ARK_TIMEOUT", 300*time.Second),
		MaxRetries:        getEnvInt("LAWHELPER_ARK_MAX_RETRIES", 3),
		Temperature:       getEnvFloat("LAWHELPER_ARK_TEMPERATURE", 0.7),
		EnableThinking:    getEnvBool("LAWHELPER_ARK_ENABLE_THINKING", true),
		RequestsPerMinute: getEnvInt("LAWHELPER_ARK_REQUESTS_PER_MINUTE", 10),
		BurstLimit:        getEnvInt("LAWHELPER_ARK_BURST_LIMIT", 2),
	}

	cfg.Poller = PollerConfig{
		Interval:     getEnvDuration("LAWHELPER_POLL_INTERVAL", 5*time.Minute),
		StartHour:    getEnvInt("LAWHELPER_WINDOW_START_HOUR", 9),
		EndHour:      getEnvInt("LAWHELPER_WINDOW_END_HOUR", 18),
		TriggerToken: getEnvString("LAWHELPER_TRIGGER_KEYWORD", "@FIN-lawhelper"),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("LAWHELPER_LOG_LEVEL", "info"),
		Format:     getEnvString("LAWHELPER_LOG_FORMAT", "text"),
		Output:     getEnvString("LAWHELPER_LOG_OUTPUT", "stderr"),
		AddSource:  getEnvBool("LAWHELPER_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("LAWHELPER_LOG_TIME_FORMAT", time.RFC3339),
	}

	return cfg, cfg.Validate()
}
