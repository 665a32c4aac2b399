// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thiagokokada/gitlanes/internal/diff"
	"github.com/thiagokokada/gitlanes/internal/graph"
)

const (
	appName  = "gitlanes"
	fileName = "config.yaml"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Graph   Graph   `yaml:"graph"`
	Diff    Diff    `yaml:"diff"`
	Workers Workers `yaml:"workers"`
}

type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is one of auto, text, logfmt or json. auto picks text on a
	// terminal and logfmt otherwise.
	Format string `yaml:"format"`
}

type Graph struct {
	DefaultLimit uint `yaml:"default_limit"`
	MaxLimit     uint `yaml:"max_limit"`
}

type Diff struct {
	ContextLines int `yaml:"context_lines"`
}

type Workers struct {
	MaxBlocking int64 `yaml:"max_blocking"`
}

func Default() Config {
	return Config{
		Log:     Log{Level: "info", Format: "auto"},
		Graph:   Graph{DefaultLimit: graph.DefaultLimit, MaxLimit: graph.MaxLimit},
		Diff:    Diff{ContextLines: diff.DefaultContextLines},
		Workers: Workers{MaxBlocking: 4},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads path on top of the defaults. An empty path means DefaultPath; a
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid configuration")

func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "text", "logfmt", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if c.Graph.MaxLimit == 0 || c.Graph.MaxLimit > graph.MaxLimit {
		return fmt.Errorf("%w: graph.max_limit must be between 1 and %d", ErrInvalid, graph.MaxLimit)
	}
	if c.Graph.DefaultLimit == 0 || c.Graph.DefaultLimit > c.Graph.MaxLimit {
		return fmt.Errorf("%w: graph.default_limit must be between 1 and graph.max_limit", ErrInvalid)
	}
	if c.Diff.ContextLines < 0 {
		return fmt.Errorf("%w: diff.context_lines is negative", ErrInvalid)
	}
	if c.Workers.MaxBlocking < 1 {
		return fmt.Errorf("%w: workers.max_blocking must be positive", ErrInvalid)
	}
	return nil
}
