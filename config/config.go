package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	appName  = "cog"
	fileName = "config.toml"
)

// Config represents the root configuration structure
type Config struct {
	Buffer BufferConfig `mapstructure:"buffer" toml:"buffer"`
	UI     UIConfig     `mapstructure:"ui" toml:"ui"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// BufferConfig holds the capacity policy of the line buffer
type BufferConfig struct {
	InitialCapacity int     `mapstructure:"initial_capacity" toml:"initial_capacity"`
	ExpansionFactor float64 `mapstructure:"expansion_factor" toml:"expansion_factor"`
	ShrinkFactor    float64 `mapstructure:"shrink_factor" toml:"shrink_factor"`
}

// UIConfig holds prompt and output preferences
type UIConfig struct {
	Prompt        string `mapstructure:"prompt" toml:"prompt"`
	Color         bool   `mapstructure:"color" toml:"color"`
	TruncateLines bool   `mapstructure:"truncate_lines" toml:"truncate_lines"`
}

// LogConfig holds logging settings. Logging is off unless Enabled is set.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Level   string `mapstructure:"level" toml:"level"`
	File    string `mapstructure:"file" toml:"file"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Buffer: BufferConfig{
			InitialCapacity: 10,
			ExpansionFactor: 1.5,
			ShrinkFactor:    0.5,
		},
		UI: UIConfig{
			Prompt:        "cog> ",
			Color:         true,
			TruncateLines: true,
		},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
	}
}

// DefaultConfigPath returns ~/.config/cog/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// LoadConfig loads configuration from a TOML file and COG_* environment
// variables. An empty path searches ~/.config/cog; a missing file there
// yields the defaults. An explicit path must exist.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Environment variable support
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyDefaults registers every key so environment overrides are seen by
// Unmarshal even when no config file exists.
func applyDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("buffer.initial_capacity", d.Buffer.InitialCapacity)
	v.SetDefault("buffer.expansion_factor", d.Buffer.ExpansionFactor)
	v.SetDefault("buffer.shrink_factor", d.Buffer.ShrinkFactor)

	v.SetDefault("ui.prompt", d.UI.Prompt)
	v.SetDefault("ui.color", d.UI.Color)
	v.SetDefault("ui.truncate_lines", d.UI.TruncateLines)

	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg Config) error {
	if cfg.Buffer.InitialCapacity < 0 {
		return fmt.Errorf("buffer.initial_capacity must be >= 0, got %d", cfg.Buffer.InitialCapacity)
	}
	if cfg.Buffer.ExpansionFactor <= 1.0 {
		return fmt.Errorf("buffer.expansion_factor must be > 1.0, got %g", cfg.Buffer.ExpansionFactor)
	}
	if cfg.Buffer.ShrinkFactor <= 0 || cfg.Buffer.ShrinkFactor >= 1.0 {
		return fmt.Errorf("buffer.shrink_factor must be between 0 and 1 (exclusive), got %g", cfg.Buffer.ShrinkFactor)
	}

	if !slices.Contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of: %v, got %s", validLogLevels, cfg.Log.Level)
	}

	return nil
}

// SaveConfig writes cfg as TOML. An empty path writes to DefaultConfigPath.
func SaveConfig(cfg Config, path string) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return "", err
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}
	return path, nil
}
