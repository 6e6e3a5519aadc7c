// Package config loads run configuration from an optional YAML file and
// SIGNHMM_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads configuration. Tests can override Lookup and ReadFile to
// inject deterministic inputs.
type Loader struct {
	Lookup   func(string) (string, bool)
	ReadFile func(string) ([]byte, error)
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then environment overrides, and validates the result.
func (l Loader) Load(path string) (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}
	if l.ReadFile == nil {
		l.ReadFile = os.ReadFile
	}

	cfg := Default()
	if path != "" {
		raw, err := l.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	overrideString(l.Lookup, "SIGNHMM_SELECTOR", &cfg.Selector)
	overrideString(l.Lookup, "SIGNHMM_BIC_ORIENTATION", &cfg.BIC)
	overrideString(l.Lookup, "SIGNHMM_LOG_LEVEL", &cfg.LogLevel)
	ints := []struct {
		key    string
		target *int
	}{
		{"SIGNHMM_N_CONSTANT", &cfg.NConstant},
		{"SIGNHMM_MIN_STATES", &cfg.MinStates},
		{"SIGNHMM_MAX_STATES", &cfg.MaxStates},
		{"SIGNHMM_FOLDS", &cfg.Folds},
		{"SIGNHMM_WORKERS", &cfg.Workers},
		{"SIGNHMM_MAX_ITERATIONS", &cfg.MaxIterations},
	}
	for _, o := range ints {
		if err := overrideInt(l.Lookup, o.key, o.target); err != nil {
			return Config{}, err
		}
	}
	if value, ok := lookup(l.Lookup, "SIGNHMM_RANDOM_STATE"); ok {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: SIGNHMM_RANDOM_STATE: %w", err)
		}
		cfg.RandomState = seed
	}
	if value, ok := lookup(l.Lookup, "SIGNHMM_VERBOSE"); ok {
		verbose, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, fmt.Errorf("config: SIGNHMM_VERBOSE: %w", err)
		}
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func lookup(fn func(string) (string, bool), key string) (string, bool) {
	value, ok := fn(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func overrideString(fn func(string) (string, bool), key string, target *string) {
	if value, ok := lookup(fn, key); ok {
		*target = value
	}
}

func overrideInt(fn func(string) (string, bool), key string, target *int) error {
	value, ok := lookup(fn, key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*target = n
	return nil
}
