package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Storage backends selectable in the config.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// HomeEnv overrides the data/config directory when set.
const HomeEnv = "TABGRID_HOME"

var ErrUnknownBackend = errors.New("unknown storage backend")

// Config holds application configuration.
type Config struct {
	Backend            string `json:"backend"`
	FaviconEndpoint    string `json:"faviconEndpoint"`
	FaviconSize        int    `json:"faviconSize"`
	MaxImageSize       int    `json:"maxImageSize"`
	JPEGQuality        int    `json:"jpegQuality"`
	MaxDownloadBytes   int64  `json:"maxDownloadBytes"`
	HTTPTimeoutSeconds int    `json:"httpTimeoutSeconds"` // 0 = no timeout
	SearchURL          string `json:"searchURL"`          // %s is replaced by the query
	LogLevel           string `json:"logLevel"`
	RefreshConcurrency int    `json:"refreshConcurrency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendJSON,
		FaviconEndpoint:    "https://www.google.com/s2/favicons",
		FaviconSize:        128,
		MaxImageSize:       600,
		JPEGQuality:        85,
		MaxDownloadBytes:   10 << 20,
		HTTPTimeoutSeconds: 0,
		SearchURL:          "https://duckduckgo.com/?q=%s",
		LogLevel:           "info",
		RefreshConcurrency: 4,
	}
}

// HTTPTimeout returns the configured timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	// Decode on top of defaults so absent keys keep their default value
	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Zero values are never meaningful for these
	defaults := DefaultConfig()
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.FaviconEndpoint == "" {
		config.FaviconEndpoint = defaults.FaviconEndpoint
	}
	if config.FaviconSize <= 0 {
		config.FaviconSize = defaults.FaviconSize
	}
	if config.MaxImageSize <= 0 {
		config.MaxImageSize = defaults.MaxImageSize
	}
	if config.JPEGQuality <= 0 || config.JPEGQuality > 100 {
		config.JPEGQuality = defaults.JPEGQuality
	}
	if config.MaxDownloadBytes <= 0 {
		config.MaxDownloadBytes = defaults.MaxDownloadBytes
	}
	if config.HTTPTimeoutSeconds < 0 {
		config.HTTPTimeoutSeconds = 0
	}
	if config.SearchURL == "" {
		config.SearchURL = defaults.SearchURL
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.RefreshConcurrency <= 0 {
		config.RefreshConcurrency = defaults.RefreshConcurrency
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// HomeDir returns the tabgrid directory: $TABGRID_HOME or ~/.config/tabgrid
func HomeDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabgrid"), nil
}

// DefaultConfigFilePath returns the default config path: <home>/config.json
func DefaultConfigFilePath() (string, error) {
	return homeFile("config.json")
}

// DefaultDataPath returns the default JSON data path: <home>/tabgrid.json
func DefaultDataPath() (string, error) {
	return homeFile("tabgrid.json")
}

// DefaultSQLitePath returns the default SQLite database path: <home>/tabgrid.db
func DefaultSQLitePath() (string, error) {
	return homeFile("tabgrid.db")
}

// DefaultLogPath returns the log file used while the TUI owns the terminal.
func DefaultLogPath() (string, error) {
	return homeFile("tabgrid.log")
}

func homeFile(name string) (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
