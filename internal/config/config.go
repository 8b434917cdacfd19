package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the home-sentry daemon.
type Config struct {
	// DatabaseFile is the path to the SQLite database holding monitoring
	// state. Empty means state is kept in memory only.
	DatabaseFile string `yaml:"database_file"`
	// FramesDir is the camera frame spool directory to watch. Empty disables
	// camera input.
	FramesDir string `yaml:"frames_dir"`
	// Classifier selects the cat detector: "random", "always" or "never".
	Classifier string `yaml:"classifier"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level"`
	// StatusInterval is how often the daemon logs a status summary.
	StatusInterval time.Duration `yaml:"status_interval"`
}

const (
	// DefaultConfigFilename is the default filename for daemon settings.
	DefaultConfigFilename = "home-sentry.yaml"

	// DefaultDatabaseFilename is the default filename for the state database.
	DefaultDatabaseFilename = "home-sentry.db"

	// DefaultStatusInterval is the default period between status summaries.
	DefaultStatusInterval = time.Minute

	// DefaultFilePermissions is the file permission used for written settings.
	DefaultFilePermissions = 0o600

	// ClassifierRandom selects the coin-flip development classifier.
	ClassifierRandom = "random"
	// ClassifierAlways selects a classifier that always reports a cat.
	ClassifierAlways = "always"
	// ClassifierNever selects a classifier that never reports a cat.
	ClassifierNever = "never"
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Load reads configuration from the provided path and validates it. A missing
// file yields the defaults rather than an error, so the daemon can start
// unconfigured.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := new(Config)
			if err = Validate(cfg); err != nil {
				return nil, err
			}

			return cfg, nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks field values and fills in defaults for anything unset.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	switch cfg.Classifier {
	case "":
		cfg.Classifier = ClassifierRandom
	case ClassifierRandom, ClassifierAlways, ClassifierNever:
	default:
		return fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}

	if cfg.StatusInterval <= 0 {
		cfg.StatusInterval = DefaultStatusInterval
	}

	return nil
}
