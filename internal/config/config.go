// Package config loads and validates restecho configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDir is the directory (relative to the working directory) that
// holds the optional config file.
const ConfigDir = ".restecho"

// Config represents the complete restecho configuration
type Config struct {
	Version int           `json:"version" mapstructure:"version"`
	Server  ServerConfig  `json:"server" mapstructure:"server"`
	Client  ClientConfig  `json:"client" mapstructure:"client"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Bind            string     `json:"bind" mapstructure:"bind"`
	Port            int        `json:"port" mapstructure:"port"`
	ReadTimeoutSec  int        `json:"readTimeoutSec" mapstructure:"readTimeoutSec"`
	WriteTimeoutSec int        `json:"writeTimeoutSec" mapstructure:"writeTimeoutSec"`
	IdleTimeoutSec  int        `json:"idleTimeoutSec" mapstructure:"idleTimeoutSec"`
	Auth            AuthConfig `json:"auth" mapstructure:"auth"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Bind, s.Port)
}

// AuthConfig contains optional bearer-token authentication settings.
// Disabled by default; the demo surface is open.
type AuthConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	TokenHash string `json:"tokenHash" mapstructure:"tokenHash"`
}

// ClientConfig contains HTTP client configuration
type ClientConfig struct {
	BaseURL    string `json:"baseUrl" mapstructure:"baseUrl"`
	TimeoutSec int    `json:"timeoutSec" mapstructure:"timeoutSec"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration. The server defaults
// match the demo's fixed constants: all interfaces, port 8080.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Bind:            "0.0.0.0",
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
			Auth: AuthConfig{
				Enabled: false,
			},
		},
		Client: ClientConfig{
			BaseURL:    "http://127.0.0.1:8080",
			TimeoutSec: 10,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.restecho/config.json.
// A missing config file is not an error: defaults are returned.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("server.bind", defaults.Server.Bind)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.readTimeoutSec", defaults.Server.ReadTimeoutSec)
	v.SetDefault("server.writeTimeoutSec", defaults.Server.WriteTimeoutSec)
	v.SetDefault("server.idleTimeoutSec", defaults.Server.IdleTimeoutSec)
	v.SetDefault("client.baseUrl", defaults.Client.BaseURL)
	v.SetDefault("client.timeoutSec", defaults.Client.TimeoutSec)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDir))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.restecho/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port out of range"}
	}
	if c.Client.TimeoutSec <= 0 {
		return &ConfigError{Field: "client.timeoutSec", Message: "timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
