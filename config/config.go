// Package config loads the .fret.yml release configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/forktools/fret"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = ".fret.yml"

// Config parameterizes a release attempt. CLI flags override file values.
type Config struct {
	// Marker is the fork's prerelease identifier.
	Marker string `yaml:"marker"`
	// Manifest is the project manifest path, relative to the repo root.
	Manifest string `yaml:"manifest"`
	// Remote is the git remote tags are pushed to.
	Remote string `yaml:"remote"`
	// Repo is the "owner/repo" used for GitHub release creation.
	Repo string `yaml:"repo"`
	// Build lists shell commands run under the pinned version before
	// tagging (build, pack).
	Build []string `yaml:"build"`

	Token  string `yaml:"-"`
	DryRun bool   `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Marker:   fret.DefaultMarker,
		Manifest: "package.json",
		Remote:   "origin",
	}
}

// Load reads the config file at path, layering it over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Marker = fret.ParseMarker(cfg.Marker)
	if cfg.Manifest == "" {
		cfg.Manifest = "package.json"
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}

	return cfg, nil
}
