package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"stock-monitor/src/helpers"
	"stock-monitor/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when an environment variable is absent.
const (
	DefaultAPIKey       = "your_default_api_key"
	DefaultBaseURL      = "https://www.alphavantage.co/query"
	DefaultSymbols      = "AAPL,GOOGL,MSFT,AMZN,TSLA"
	DefaultServerURL    = "http://localhost:8000/api/v1/stocks"
	DefaultLogLevel     = "INFO"
	DefaultRetryCount   = 3
	DefaultRetryDelay   = 5
	DefaultPollInterval = 60
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a Config instance from the process environment. A .env
// file in the working directory is loaded first when present. The snapshot is
// validated before it is returned and never mutated afterwards.
func NewConfig() (*Config, error) {
	// 1. Load .env values into the environment (absence is not an error)
	_ = godotenv.Load()

	// 2. Read each setting with its default
	modelConfig := models.MConfig{
		APIKey:    getEnv("ALPHA_VANTAGE_API_KEY", DefaultAPIKey),
		BaseURL:   getEnv("ALPHA_VANTAGE_BASE_URL", DefaultBaseURL),
		Symbols:   splitSymbols(getEnv("STOCK_SYMBOLS", DefaultSymbols)),
		ServerURL: getEnv("SERVER_URL", DefaultServerURL),
		LogLevel:  getEnv("LOG_LEVEL", DefaultLogLevel),
	}

	var err error
	if modelConfig.RetryCount, err = getEnvInt("RETRY_COUNT", DefaultRetryCount); err != nil {
		return nil, err
	}
	if modelConfig.RetryDelay, err = getEnvInt("RETRY_DELAY", DefaultRetryDelay); err != nil {
		return nil, err
	}
	if modelConfig.PollInterval, err = getEnvInt("POLL_INTERVAL", DefaultPollInterval); err != nil {
		return nil, err
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// NewConfigFromFile creates a Config instance from a YAML file
func NewConfigFromFile(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return helpers.NewConfigurationError("ALPHA_VANTAGE_API_KEY is not set")
	}
	if len(c.Symbols) == 0 {
		return helpers.NewConfigurationError("STOCK_SYMBOLS is not set")
	}
	if c.ServerURL == "" {
		return helpers.NewConfigurationError("SERVER_URL is not set")
	}
	if c.RetryCount < 0 {
		return helpers.NewConfigurationError("RETRY_COUNT must be a non-negative integer")
	}
	if c.RetryDelay < 0 {
		return helpers.NewConfigurationError("RETRY_DELAY must be a non-negative integer")
	}
	if c.PollInterval <= 0 {
		return helpers.NewConfigurationError("POLL_INTERVAL must be a positive integer")
	}
	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func getEnv(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// -----------------------------------------------------------------------------

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, helpers.NewValidationError("%s must be an integer, got '%s'", key, v)
	}
	return n, nil
}

// -----------------------------------------------------------------------------

// splitSymbols parses the comma-separated symbol list, dropping empty entries.
func splitSymbols(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
