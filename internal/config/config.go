// Package config handles loading analyzer configuration from files.
//
// Configuration can be specified in a JSON file named ctypectx.json or
// .ctypectxrc. The config file is searched for starting from a given
// directory and walking up through its parent directories.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Options controls how a translation unit is preprocessed and how its type
// map is reported.
type Options struct {
	// AddBuiltinTypedefs prepends the fixed-width u8/s8/.../f64 typedef
	// line a decompiler's generated C commonly assumes exist.
	AddBuiltinTypedefs bool

	// StripComments removes // and /* */ comments before parsing.
	StripComments bool

	// Format selects the rendering used by Dump: "text" or "json".
	Format string
}

// DefaultOptions returns the options used when no config file and no CLI
// flags override them.
func DefaultOptions() Options {
	return Options{
		AddBuiltinTypedefs: true,
		StripComments:      true,
		Format:             "text",
	}
}

// Config represents the configuration file structure. All fields are
// optional and fall back to DefaultOptions when unset.
type Config struct {
	AddBuiltinTypedefs *bool   `json:"addBuiltinTypedefs,omitempty"`
	StripComments      *bool   `json:"stripComments,omitempty"`
	Format             *string `json:"format,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of
// preference.
var ConfigFileNames = []string{
	"ctypectx.json",
	".ctypectxrc",
	".ctypectxrc.json",
}

// Load searches for a config file starting from startDir and walking up to
// parent directories. Returns nil, "", nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ToOptions converts a Config to Options, using defaults for unset fields.
func (c *Config) ToOptions() Options {
	opts := DefaultOptions()
	if c == nil {
		return opts
	}

	if c.AddBuiltinTypedefs != nil {
		opts.AddBuiltinTypedefs = *c.AddBuiltinTypedefs
	}
	if c.StripComments != nil {
		opts.StripComments = *c.StripComments
	}
	if c.Format != nil {
		opts.Format = *c.Format
	}

	return opts
}

// CLIOptions carries flags parsed from the command line. A nil pointer
// field means "not specified on the CLI"; CLI flags override the config
// file when specified.
type CLIOptions struct {
	AddBuiltinTypedefs *bool
	StripComments      *bool
	Format             *string
}

// Merge merges CLI options with config file options, with CLI taking
// precedence.
func (c *Config) Merge(cli CLIOptions) Options {
	opts := c.ToOptions()

	if cli.AddBuiltinTypedefs != nil {
		opts.AddBuiltinTypedefs = *cli.AddBuiltinTypedefs
	}
	if cli.StripComments != nil {
		opts.StripComments = *cli.StripComments
	}
	if cli.Format != nil {
		opts.Format = *cli.Format
	}

	return opts
}
