package models

// MConfig Structure
type MConfig struct {
	APIKey       string   `yaml:"api_key"`
	BaseURL      string   `yaml:"base_url"`
	Symbols      []string `yaml:"symbols"`
	ServerURL    string   `yaml:"server_url"`
	LogLevel     string   `yaml:"log_level"`
	RetryCount   int      `yaml:"retry_count"`
	RetryDelay   int      `yaml:"retry_delay"`
	PollInterval int      `yaml:"poll_interval"`
}
