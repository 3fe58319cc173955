package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/spektr-org/logviz/internal/errors"
)

const envPrefix = "LOGVIZ_"

// noDefaultTag is a struct tag no field carries.
const noDefaultTag = "envOverride"

// Config represents the application configuration
type Config struct {
	Logging LoggingConfig `json:"logging"`
	Server  ServerConfig  `json:"server"`
	Source  SourceConfig  `json:"source"`
	Metrics MetricsConfig `json:"metrics"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level     string `json:"level"      env:"LOG_LEVEL"      envDefault:"info"`   // debug, info, warn, error
	Format    string `json:"format"     env:"LOG_FORMAT"     envDefault:"text"`   // text, json
	Output    string `json:"output"     env:"LOG_OUTPUT"     envDefault:"stderr"` // stdout, stderr, file
	File      string `json:"file"       env:"LOG_FILE"`                           // log file path when output is file
	AddSource bool   `json:"add_source" env:"LOG_ADD_SOURCE" envDefault:"false"`
}

// ServerConfig represents the HTTP host configuration
type ServerConfig struct {
	Addr        string `json:"addr"         env:"SERVER_ADDR"         envDefault:":8080"`
	ReadTimeout string `json:"read_timeout" env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
}

// SourceConfig controls how datasets are loaded
type SourceConfig struct {
	Sheet      string `json:"sheet"       env:"SOURCE_SHEET"`                                      // xlsx sheet, first when empty
	Query      string `json:"query"       env:"SOURCE_QUERY"       envDefault:"SELECT * FROM data"` // duckdb query
	SampleRows int    `json:"sample_rows" env:"SOURCE_SAMPLE_ROWS" envDefault:"0"`                  // 0 loads every row
}

// MetricsConfig represents prometheus instrumentation configuration
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"   env:"METRICS_ENABLED"   envDefault:"true"`
	Namespace string `json:"namespace" env:"METRICS_NAMESPACE" envDefault:"logviz"`
}

// ReadTimeoutDuration returns the parsed server read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// DefaultConfig returns the configuration with every default applied and no
// environment or file input.
func DefaultConfig() *Config {
	cfg := &Config{}
	_ = env.ParseWithOptions(cfg, env.Options{
		Prefix:      envPrefix,
		Environment: map[string]string{},
	})
	return cfg
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigWithOverrides(nil)
}

// LoadConfigWithOverrides loads configuration with optional command-line flag overrides.
// Precedence, lowest first: defaults, config file, environment, flags.
func LoadConfigWithOverrides(flagOverrides map[string]any) (*Config, error) {
	config := DefaultConfig()

	if configPath := os.Getenv(envPrefix + "CONFIG"); configPath != "" {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeConfig, "failed to load config file")
		}
	}

	// Defaults are already in place, so only variables that are set apply.
	if err := env.ParseWithOptions(config, env.Options{
		Prefix:              envPrefix,
		DefaultValueTagName: noDefaultTag,
	}); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "failed to parse environment variables")
	}

	if flagOverrides != nil {
		applyFlagOverrides(config, flagOverrides)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyFlagOverrides applies command-line flag overrides to configuration
func applyFlagOverrides(config *Config, overrides map[string]any) {
	for key, value := range overrides {
		switch key {
		case "log-level":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Level = str
			}
		case "log-format":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Format = str
			}
		case "addr":
			if str, ok := value.(string); ok && str != "" {
				config.Server.Addr = str
			}
		case "sheet":
			if str, ok := value.(string); ok && str != "" {
				config.Source.Sheet = str
			}
		case "query":
			if str, ok := value.(string); ok && str != "" {
				config.Source.Query = str
			}
		case "sample":
			if n, ok := value.(int); ok && n > 0 {
				config.Source.SampleRows = n
			}
		case "metrics":
			if b, ok := value.(bool); ok {
				config.Metrics.Enabled = b
			}
		}
	}
}

// mergeConfigs copies every non-zero value of source into target
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := range s.NumField() {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return errors.NewConfigError(
			fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level),
			"logging.level")
	}

	validLogFormats := map[string]bool{"text": true, "json": true}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return errors.NewConfigError(
			fmt.Sprintf("invalid log format: %s (must be text or json)", config.Logging.Format),
			"logging.format")
	}

	validLogOutputs := map[string]bool{"stdout": true, "stderr": true, "file": true}
	if !validLogOutputs[strings.ToLower(config.Logging.Output)] {
		return errors.NewConfigError(
			fmt.Sprintf("invalid log output: %s (must be stdout, stderr, or file)", config.Logging.Output),
			"logging.output")
	}
	if strings.EqualFold(config.Logging.Output, "file") && config.Logging.File == "" {
		return errors.NewConfigError("log file path is required when output is 'file'", "logging.file")
	}

	if d, err := time.ParseDuration(config.Server.ReadTimeout); err != nil || d <= 0 {
		return errors.NewConfigError(
			fmt.Sprintf("invalid server read timeout: %s", config.Server.ReadTimeout),
			"server.read_timeout")
	}

	if config.Source.SampleRows < 0 {
		return errors.NewConfigError(
			fmt.Sprintf("sample rows must not be negative: %d", config.Source.SampleRows),
			"source.sample_rows")
	}

	if config.Metrics.Enabled && config.Metrics.Namespace == "" {
		return errors.NewConfigError("metrics namespace is required when metrics are enabled", "metrics.namespace")
	}

	return nil
}
