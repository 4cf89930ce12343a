// Package config provides reading and writing of tagidx configuration.
// Supports both global (~/.tagidx/config.yaml) and local (.tagidx/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/tagidx/tagset"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.tagidx/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is repository-specific config in .tagidx/config.yaml
	ScopeLocal
)

// Dir is the directory name used for both the global and local config.
const Dir = ".tagidx"

// Author represents the author metadata stored in the repository config.
type Author struct {
	Name  string `yaml:"name,omitempty"`
	Email string `yaml:"email,omitempty"`
}

// Limits holds the tag set bounds new catalogues are created with.
type Limits struct {
	MaxTags   *int `yaml:"max_tags,omitempty"`
	MaxTagLen *int `yaml:"max_tag_len,omitempty"`
}

// Config contains configuration for tagidx.
type Config struct {
	Author Author `yaml:"author,omitempty"`
	Limits Limits `yaml:"limits,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within the tagset
// ceilings. Returns nil if all values are valid or not set (defaults will
// be used).
func (c *Config) Validate() error {
	if c.Limits.MaxTags != nil {
		v := *c.Limits.MaxTags
		if v < 1 || v > tagset.MaxTags {
			return fmt.Errorf("%w: max_tags must be between 1 and %d, got %d",
				ErrInvalidValue, tagset.MaxTags, v)
		}
	}
	if c.Limits.MaxTagLen != nil {
		v := *c.Limits.MaxTagLen
		if v < 1 || v > tagset.MaxTextLen {
			return fmt.Errorf("%w: max_tag_len must be between 1 and %d, got %d",
				ErrInvalidValue, tagset.MaxTextLen, v)
		}
	}
	return nil
}

// MaxTags returns the per-set tag capacity (defaults to 4).
func (c *Config) MaxTags() int {
	if c.Limits.MaxTags == nil {
		return tagset.DefaultLimits.MaxTags
	}
	return *c.Limits.MaxTags
}

// MaxTagLen returns the per-tag character bound (defaults to 16).
func (c *Config) MaxTagLen() int {
	if c.Limits.MaxTagLen == nil {
		return tagset.DefaultLimits.MaxTagLen
	}
	return *c.Limits.MaxTagLen
}

// TagLimits returns the configured bounds as tagset.Limits.
func (c *Config) TagLimits() tagset.Limits {
	return tagset.Limits{MaxTags: c.MaxTags(), MaxTagLen: c.MaxTagLen()}
}

// LocalPath returns the path to the local (repository) config file.
func LocalPath() string {
	return filepath.Join(Dir, "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.tagidx/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir, "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	return loadPath(pathForScope(scope), scope)
}

func loadPath(path string, scope Scope) (*Config, error) {
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
