package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persisted configuration for yo.
type Config struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// ConfigDir returns the directory holding config.json and history.json.
// YO_CONFIG_DIR overrides the default ~/.config/yo location.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvYoConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultConfigDir), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// GetHistoryPath returns the full path to the history file.
func GetHistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultHistoryFileName), nil
}

// GetLogPath returns the full path to the log file.
func GetLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultLogDir, DefaultLogFileName), nil
}

func newDefaultConfig() *Config {
	return &Config{
		APIKey: "",
		Model:  DefaultModel,
	}
}

// Load reads the configuration from disk. A missing or malformed file is
// not an error: both yield the default config.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Malformed config is silently replaced with defaults.
		return newDefaultConfig(), nil
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &cfg, nil
}

// Save writes the configuration to disk, creating the parent directory
// if needed.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveAPIKey persists key on top of the stored configuration. Loading
// fresh before writing keeps runtime-only changes to the in-memory
// config, such as a model override flag, out of the file.
func SaveAPIKey(key string) error {
	stored, err := Load()
	if err != nil {
		return err
	}
	stored.APIKey = key
	return stored.Save()
}

// HasAPIKey reports whether an API key has been configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}
