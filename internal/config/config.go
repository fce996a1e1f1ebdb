package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the console configuration
type Config struct {
	Backend   BackendConfig   `yaml:"backend"`
	Console   ConsoleConfig   `yaml:"console"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// BackendConfig contains the rental backend connection settings
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ConsoleConfig contains operator console settings.
// The password gate is a client-side marker only; the backend performs no
// authorization of its own.
type ConsoleConfig struct {
	PasswordHash         string `yaml:"password_hash"` // bcrypt hash of the operator password
	SessionSecret        string `yaml:"session_secret"`
	SessionExpiryMinutes int    `yaml:"session_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RefreshDashboard string `yaml:"refresh_dashboard"`
	SweepOverdue     string `yaml:"sweep_overdue"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		c.Backend.BaseURL = val
	}
	if val := os.Getenv("BACKEND_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Backend.TimeoutSeconds)
	}

	if val := os.Getenv("CONSOLE_PASSWORD_HASH"); val != "" {
		c.Console.PasswordHash = val
	}
	if val := os.Getenv("CONSOLE_SESSION_SECRET"); val != "" {
		c.Console.SessionSecret = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 30
	}

	if c.Console.PasswordHash == "" {
		return fmt.Errorf("console password hash is required")
	}
	if c.Console.SessionSecret == "" {
		return fmt.Errorf("console session secret is required")
	}
	if len(c.Console.SessionSecret) < 32 {
		return fmt.Errorf("console session secret must be at least 32 characters")
	}
	if c.Console.SessionExpiryMinutes <= 0 {
		c.Console.SessionExpiryMinutes = 60
	}

	// Scheduler defaults
	if c.Scheduler.RefreshDashboard == "" {
		c.Scheduler.RefreshDashboard = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.SweepOverdue == "" {
		c.Scheduler.SweepOverdue = "0 0 * * * *" // hourly
	}

	return nil
}

// BackendTimeout returns the backend request timeout as a duration
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// SessionExpiry returns the operator session lifetime as a duration
func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.Console.SessionExpiryMinutes) * time.Minute
}
