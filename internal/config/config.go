// Package config reads and writes the skein configuration file.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	skerrors "github.com/skein-dev/skein/internal/errors"
)

// Config represents the skein configuration file (~/.skein/config.yaml).
type Config struct {
	// Streams maps alias names to job log streams, referenced on the
	// command line as @alias.
	Streams map[string]StreamAlias `yaml:"streams"`

	// LogGroup overrides the default /aws/batch/job log group.
	LogGroup string `yaml:"log_group,omitempty"`

	View ViewConfig `yaml:"view,omitempty"`
}

// StreamAlias defines a named job log stream.
type StreamAlias struct {
	Stream string `yaml:"stream"`
	Group  string `yaml:"group,omitempty"` // optional per-alias log group override
}

// ViewConfig defines defaults for the view command.
type ViewConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Path returns the path to the skein config file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skein", "config.yaml")
}

// Load loads the configuration from ~/.skein/config.yaml.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	cfg := &Config{
		Streams: make(map[string]StreamAlias),
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Streams == nil {
		cfg.Streams = make(map[string]StreamAlias)
	}

	return cfg, nil
}

// Save writes the configuration to ~/.skein/config.yaml.
func Save(cfg *Config) error {
	path := Path()
	if path == "" {
		return os.ErrNotExist
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// AliasNames returns the configured alias names, sorted.
func (c *Config) AliasNames() []string {
	names := make([]string, 0, len(c.Streams))
	for name := range c.Streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveStream resolves a command-line stream argument to a log group and
// stream name. Arguments starting with @ are looked up as aliases; anything
// else is a literal stream name in the default (or configured) log group.
func (c *Config) ResolveStream(arg string) (group, stream string, err error) {
	group = c.LogGroup

	name, isAlias := strings.CutPrefix(arg, "@")
	if !isAlias {
		return group, arg, nil
	}

	alias, ok := c.Streams[name]
	if !ok {
		return "", "", skerrors.AliasNotFoundError(name, c.AliasNames())
	}
	if alias.Group != "" {
		group = alias.Group
	}
	return group, alias.Stream, nil
}
