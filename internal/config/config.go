package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds popcorn's runtime settings.
type Config struct {
	APIKey            string
	APIBase           string
	DataDir           string
	LogDir            string
	Storage           string
	RequestsPerSecond float64
	LogLevel          string
}

// EnvAPIKey overrides api_key from the config file when set.
const EnvAPIKey = "OMDB_API_KEY"

const (
	defaultConfigPath = "~/.config/popcorn/config.toml"
	defaultAPIBase    = "https://www.omdbapi.com/"
	defaultDataDir    = "~/.local/share/popcorn"
	defaultLogDir     = "~/.local/share/popcorn/logs"
	defaultStorage    = "json"
	defaultRate       = 5.0
	defaultLogLevel   = "info"
)

// ErrMissingAPIKey is returned by Validate when no OMDb key is configured.
var ErrMissingAPIKey = errors.New("missing OMDb API key: set api_key in the config file or " + EnvAPIKey)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:           defaultAPIBase,
		DataDir:           mustExpand(defaultDataDir),
		LogDir:            mustExpand(defaultLogDir),
		Storage:           defaultStorage,
		RequestsPerSecond: defaultRate,
		LogLevel:          defaultLogLevel,
	}
}

// Load reads the config at path (or the default location), falling back to
// defaults for a missing file or empty fields. The OMDB_API_KEY environment
// variable wins over api_key.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey            string  `toml:"api_key"`
		APIBase           string  `toml:"api_base"`
		DataDir           string  `toml:"data_dir"`
		LogDir            string  `toml:"log_dir"`
		Storage           string  `toml:"storage"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		LogLevel          string  `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	cfg.Storage = normalizeStorage(raw.Storage)
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}

	cfg.applyEnv()
	return cfg, nil
}

// SetStorage overrides the backend, ignoring unknown values.
func (c *Config) SetStorage(kind string) {
	if strings.TrimSpace(kind) == "" {
		return
	}
	c.Storage = normalizeStorage(kind)
}

// Validate reports settings popcorn cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
}

func normalizeStorage(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "sqlite":
		return "sqlite"
	default:
		return defaultStorage
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
