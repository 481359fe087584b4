// Package config holds the atrail command configuration: search tunables,
// logging, the verdict cache and batch concurrency.
//
// Values come from Default, then an optional YAML file, then ATRAIL_*
// environment variables; command-line flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/atrail/search"
)

var (
	// ErrBadOrder indicates an unknown search.order value.
	ErrBadOrder = errors.New("config: unknown search order")

	// ErrBadJobs indicates jobs < 1.
	ErrBadJobs = errors.New("config: jobs must be at least 1")

	// ErrBadLevel indicates an unknown log level.
	ErrBadLevel = errors.New("config: unknown log level")

	// ErrNegativeBudget indicates a negative node or time budget.
	ErrNegativeBudget = errors.New("config: negative search budget")

	// ErrBadFile indicates a config file that cannot be read or decoded.
	ErrBadFile = errors.New("config: bad config file")
)

// Config is the full configuration.
type Config struct {
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Search struct {
		Order     string        `yaml:"order"`
		MaxNodes  int           `yaml:"max_nodes"`
		TimeLimit time.Duration `yaml:"time_limit"`
		Verify    bool          `yaml:"verify"`
	} `yaml:"search"`
	Cache struct {
		Dir string `yaml:"dir"`
	} `yaml:"cache"`
	Jobs int `yaml:"jobs"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Log.Level = "info"
	c.Search.Order = search.OrderConnected.String()
	c.Search.Verify = true
	c.Jobs = 1

	return c
}

// Load returns Default overlaid with the YAML file at path (skipped when
// path is empty) and the environment. Unknown keys in the file are errors.
// The result is validated.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrBadFile, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err = dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrBadFile, path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// applyEnv overrides fields from ATRAIL_LOG_LEVEL, ATRAIL_CACHE_DIR,
// ATRAIL_JOBS and ATRAIL_MAX_NODES.
func (c *Config) applyEnv() error {
	if v := os.Getenv("ATRAIL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ATRAIL_CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("ATRAIL_JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ATRAIL_JOBS=%q: %w", v, ErrBadJobs)
		}
		c.Jobs = n
	}
	if v := os.Getenv("ATRAIL_MAX_NODES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ATRAIL_MAX_NODES=%q: %w", v, ErrNegativeBudget)
		}
		c.Search.MaxNodes = n
	}

	return nil
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level %q: %w", c.Log.Level, ErrBadLevel)
	}
	if _, err := search.ParseOrder(c.Search.Order); err != nil {
		return fmt.Errorf("order %q: %w", c.Search.Order, ErrBadOrder)
	}
	if c.Search.MaxNodes < 0 || c.Search.TimeLimit < 0 {
		return fmt.Errorf("max_nodes %d, time_limit %s: %w", c.Search.MaxNodes, c.Search.TimeLimit, ErrNegativeBudget)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs %d: %w", c.Jobs, ErrBadJobs)
	}

	return nil
}

// SearchOptions translates the search section into search options. The
// config must be valid.
func (c Config) SearchOptions() []search.Option {
	ord, _ := search.ParseOrder(c.Search.Order)

	return []search.Option{
		search.WithOrder(ord),
		search.WithMaxNodes(c.Search.MaxNodes),
		search.WithTimeLimit(c.Search.TimeLimit),
		search.WithVerify(c.Search.Verify),
	}
}
