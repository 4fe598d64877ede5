// Package config loads application configuration from environment variables
// merged over an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/postprocess.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// ProcessingConfig contains the engine knobs that are configurable.
type ProcessingConfig struct {
	// MissingThreshold is the per-year missing-day count at which the
	// standard rules blank a column.
	MissingThreshold int `yaml:"missing_threshold" envconfig:"MISSING_THRESHOLD" default:"11" validate:"gte=1"`
	// MaxParallelStations bounds concurrent engine invocations in
	// directory mode. The engine itself stays single-threaded.
	MaxParallelStations int `yaml:"max_parallel_stations" envconfig:"MAX_PARALLEL_STATIONS" default:"4" validate:"gte=1"`
}

// Load loads configuration from environment variables (prefix HYDRO) layered
// over the optional config file, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("HYDRO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// configFilePath returns the config file location, overridable via
// HYDRO_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv("HYDRO_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs overlays file values onto the env-derived config. A field the
// file leaves unset keeps the env value (or the envconfig default).
func mergeConfigs(file, env Config) Config {
	merged := env
	if file.Logging.Level != "" {
		merged.Logging.Level = file.Logging.Level
	}
	if file.Logging.Output != "" {
		merged.Logging.Output = file.Logging.Output
	}
	if file.Logging.FilePath != "" {
		merged.Logging.FilePath = file.Logging.FilePath
	}
	if file.Paths.DataDir != "" {
		merged.Paths.DataDir = file.Paths.DataDir
	}
	if file.Paths.ReportsDir != "" {
		merged.Paths.ReportsDir = file.Paths.ReportsDir
	}
	if file.Paths.LogsDir != "" {
		merged.Paths.LogsDir = file.Paths.LogsDir
	}
	if file.Processing.MissingThreshold != 0 {
		merged.Processing.MissingThreshold = file.Processing.MissingThreshold
	}
	if file.Processing.MaxParallelStations != 0 {
		merged.Processing.MaxParallelStations = file.Processing.MaxParallelStations
	}
	return merged
}
