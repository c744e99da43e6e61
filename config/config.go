package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Filename is the per-project configuration file, looked up in the
// project root.
const Filename = "m6rc.yaml"

// Config is the optional per-project configuration:
//
//	search-paths:
//	  - prompts/fragments
//	  - /usr/share/metaphor
//	output: build/prompt.txt
//
// Command-line flags take precedence over file values.
type Config struct {
	// SearchPaths lists directories Include names are resolved
	// against, in order.
	SearchPaths []string `yaml:"search-paths"`

	// Output is the default path compile writes to when no output
	// flag is given. Empty means standard output.
	Output string `yaml:"output"`
}

// Load reads m6rc.yaml from dir. A missing file is not an error: the
// zero Config is returned. Relative paths in the file are resolved
// against dir, so the result is usable from any working directory.
func Load(dir string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", Filename, err)
	}

	for i, p := range cfg.SearchPaths {
		if !filepath.IsAbs(p) {
			cfg.SearchPaths[i] = filepath.Join(dir, p)
		}
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}
	return cfg, nil
}
