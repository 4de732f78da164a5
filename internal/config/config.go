package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/pylocate/internal/paths"
	"github.com/quantmind-br/pylocate/internal/security"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths   PathsConfig   `mapstructure:"paths"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	LogFile string `mapstructure:"log_file"`
}

// ProbeConfig controls the interpreter version probe
type ProbeConfig struct {
	Command string        `mapstructure:"command"`
	Timeout time.Duration `mapstructure:"timeout"`
	// PerCandidate probes each discovered interpreter by path rather than
	// the command resolved through PATH.
	PerCandidate bool `mapstructure:"per_candidate"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// FileLevel filters the rotating log file independently of the console
	FileLevel string `mapstructure:"file_level"`
	Color     string `mapstructure:"color"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	// Set config name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	// Add config paths
	layout := paths.NewResolver()
	viper.AddConfigPath(layout.ConfigDir())
	viper.AddConfigPath(".")

	// Set defaults
	setDefaults(layout)

	// Environment variable overrides
	viper.SetEnvPrefix("PYLOCATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.LogFile = layout.Expand(cfg.Paths.LogFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the probe or logger cannot work with
func (c *Config) Validate() error {
	if err := security.ValidateExecutable(c.Probe.Command); err != nil {
		return fmt.Errorf("probe.command: %w", err)
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive, got %s", c.Probe.Timeout)
	}
	switch c.Logging.Color {
	case "auto", "always", "never", "":
	default:
		return fmt.Errorf("logging.color must be auto, always or never, got %q", c.Logging.Color)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(layout *paths.Resolver) {
	viper.SetDefault("paths.log_file", layout.LogFile())

	viper.SetDefault("probe.command", "python")
	viper.SetDefault("probe.timeout", "5s")
	viper.SetDefault("probe.per_candidate", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file_level", "debug")
	viper.SetDefault("logging.color", "auto")
}
