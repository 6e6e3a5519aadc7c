package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/ieee0824/signhmm/hmm"
	"github.com/ieee0824/signhmm/selector"
)

const (
	DefaultSelector      = "bic"
	DefaultNConstant     = 3
	DefaultMinStates     = 2
	DefaultMaxStates     = 10
	DefaultRandomState   = 14
	DefaultFolds         = 3
	DefaultBIC           = "max"
	DefaultLogLevel      = "info"
	DefaultMaxIterations = 1000
)

// Config captures run configuration read from a YAML file and environment
// variables.
type Config struct {
	Selector      string `yaml:"selector"`
	NConstant     int    `yaml:"n_constant"`
	MinStates     int    `yaml:"min_n_components"`
	MaxStates     int    `yaml:"max_n_components"`
	RandomState   int64  `yaml:"random_state"`
	Folds         int    `yaml:"folds"`
	BIC           string `yaml:"bic_orientation"`
	Verbose       bool   `yaml:"verbose"`
	Workers       int    `yaml:"workers"`
	LogLevel      string `yaml:"log_level"`
	MaxIterations int    `yaml:"max_iterations"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Selector:      DefaultSelector,
		NConstant:     DefaultNConstant,
		MinStates:     DefaultMinStates,
		MaxStates:     DefaultMaxStates,
		RandomState:   DefaultRandomState,
		Folds:         DefaultFolds,
		BIC:           DefaultBIC,
		LogLevel:      DefaultLogLevel,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate applies defaults to unset fields and rejects out-of-range values.
func (c *Config) Validate() error {
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}
	if c.BIC == "" {
		c.BIC = DefaultBIC
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if _, err := selector.ParseKind(c.Selector); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := selector.ParseOrientation(c.BIC); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.NConstant < 1 {
		return fmt.Errorf("config: n_constant must be >= 1, got %d", c.NConstant)
	}
	if c.MinStates < 1 {
		return fmt.Errorf("config: min_n_components must be >= 1, got %d", c.MinStates)
	}
	if c.MinStates > c.MaxStates {
		return fmt.Errorf("config: min_n_components %d exceeds max_n_components %d", c.MinStates, c.MaxStates)
	}
	if c.Folds < 2 {
		return fmt.Errorf("config: folds must be >= 2, got %d", c.Folds)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("config: max_iterations must be >= 1, got %d", c.MaxIterations)
	}
	return nil
}

// Selection converts the configuration into selector hyperparameters and the
// strategy kind. Call after Validate.
func (c Config) Selection() (selector.Config, selector.Kind, error) {
	kind, err := selector.ParseKind(c.Selector)
	if err != nil {
		return selector.Config{}, "", err
	}
	orientation, err := selector.ParseOrientation(c.BIC)
	if err != nil {
		return selector.Config{}, "", err
	}
	return selector.Config{
		NConstant:   c.NConstant,
		MinStates:   c.MinStates,
		MaxStates:   c.MaxStates,
		RandomState: c.RandomState,
		Verbose:     c.Verbose,
		Folds:       c.Folds,
		BIC:         orientation,
		Workers:     c.Workers,
	}, kind, nil
}

// Trainer returns the HMM trainer configured by c.
func (c Config) Trainer() hmm.Trainer {
	tr := hmm.DefaultTrainer()
	tr.MaxIterations = c.MaxIterations
	return tr
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("config: unknown log level %q", s)
}
