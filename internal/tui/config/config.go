package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all TUI configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Downloads DownloadsConfig `yaml:"downloads"`
	UI        UIConfig        `yaml:"ui"`
}

// ServerConfig contains server connection settings
type ServerConfig struct {
	Host string     `yaml:"host"`
	HTTP HTTPConfig `yaml:"http"`
	WS   WSConfig   `yaml:"ws"`
}

// HTTPConfig for the REST gateway
type HTTPConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// WSConfig for the WebSocket chat endpoint
type WSConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
}

// DownloadsConfig controls where attachments land
type DownloadsConfig struct {
	Dir string `yaml:"dir"`
}

// UIConfig for UI preferences
type UIConfig struct {
	Theme              string `yaml:"theme"`
	PageSize           int    `yaml:"page_size"`
	NotifyIntervalSecs int    `yaml:"notify_interval_secs"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			HTTP: HTTPConfig{
				Port:    8080,
				BaseURL: "http://localhost:8080/api",
			},
			WS: WSConfig{
				Port: 8080,
				Path: "/chat",
				URL:  "ws://localhost:8080/chat",
			},
		},
		Downloads: DownloadsConfig{
			Dir: filepath.Join(os.Getenv("HOME"), "Downloads"),
		},
		UI: UIConfig{
			Theme:              "dracula",
			PageSize:           20,
			NotifyIntervalSecs: 30,
		},
	}
}

// Load loads configuration from file, falling back to defaults
func Load(configPath string) (*Config, error) {
	// If no config path provided, use default locations
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config found, use defaults
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Default(), nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Fill in computed fields
	// Detect if host is a public domain (uses HTTPS/WSS) vs localhost (HTTP/WS)
	httpScheme := "http"
	wsScheme := "ws"
	if cfg.Server.Host != "localhost" && cfg.Server.Host != "127.0.0.1" {
		httpScheme = "https"
		wsScheme = "wss"
	}

	cfg.Server.HTTP.BaseURL = fmt.Sprintf("%s://%s:%d/api",
		httpScheme, cfg.Server.Host, cfg.Server.HTTP.Port)
	cfg.Server.WS.URL = fmt.Sprintf("%s://%s:%d%s",
		wsScheme, cfg.Server.Host, cfg.Server.WS.Port, cfg.Server.WS.Path)

	return cfg, nil
}

// Save saves configuration to file
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// findConfigFile searches for config in standard locations
func findConfigFile() string {
	locations := []string{
		"./forumhub-tui.yaml",
		"./config/tui.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "forumhub", "tui.yaml"),
		filepath.Join(os.Getenv("HOME"), ".forumhub-tui.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// GetHTTPBaseURL returns the computed HTTP base URL
func (c *Config) GetHTTPBaseURL() string {
	if c.Server.HTTP.BaseURL != "" {
		return c.Server.HTTP.BaseURL
	}
	return fmt.Sprintf("http://%s:%d/api", c.Server.Host, c.Server.HTTP.Port)
}

// GetWebSocketURL returns the computed WebSocket URL
func (c *Config) GetWebSocketURL() string {
	if c.Server.WS.URL != "" {
		return c.Server.WS.URL
	}
	return fmt.Sprintf("ws://%s:%d%s", c.Server.Host, c.Server.WS.Port, c.Server.WS.Path)
}

// NotifyInterval returns the notification poll interval
func (c *Config) NotifyInterval() time.Duration {
	if c.UI.NotifyIntervalSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.UI.NotifyIntervalSecs) * time.Second
}
