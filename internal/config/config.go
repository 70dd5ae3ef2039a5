// Package config loads the notebook configuration and resolves workspace
// paths and artifact names.
package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory
// when no --config flag is given.
const DefaultFile = "aeronote.yaml"

// DefaultDataURL is the observation data service endpoint.
const DefaultDataURL = "https://data.aeronote.dev/observations"

// Config holds the notebook settings.
type Config struct {
	// Agent identifies the person operating the notebook. Every recorded
	// activity is associated with and every produced artifact attributed
	// to this agent.
	Agent string `yaml:"agent"`

	// DataURL is the observation data service endpoint.
	DataURL string `yaml:"data_url"`

	// Workspace is the directory holding all notebook artifacts. Artifact
	// names in provenance are relative to it.
	Workspace string `yaml:"workspace"`
}

// Default returns the built-in settings. Agent is empty and must come
// from the config file or a flag.
func Default() *Config {
	return &Config{
		DataURL:   DefaultDataURL,
		Workspace: ".",
	}
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults; unknown fields are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	slog.Debug("config loaded", "path", path, "workspace", cfg.Workspace)
	return cfg, nil
}

// Validate checks that every setting a notebook command depends on is
// present.
func (c *Config) Validate() error {
	if c.Agent == "" {
		return fmt.Errorf("agent is required: set it in %s or pass --agent", DefaultFile)
	}
	if c.DataURL == "" {
		return fmt.Errorf("data_url is required")
	}
	if c.Workspace == "" {
		return fmt.Errorf("workspace is required")
	}
	return nil
}

// Artifact names are workspace-relative, slash-separated, and double as
// the local part of entity IRIs. Paths are the same artifacts resolved
// against the workspace directory.

func (c *Config) ObservationName(date string) string {
	return path.Join("observational-data", date+".csv")
}

func (c *Config) ObservationPath(date string) string {
	return filepath.Join(c.Workspace, "observational-data", date+".csv")
}

func (c *Config) DescriptionName(date string) string {
	return path.Join("event-description", date+".json")
}

func (c *Config) DescriptionPath(date string) string {
	return filepath.Join(c.Workspace, "event-description", date+".json")
}

// DescriptionDir returns the directory scanned by dataset builds.
func (c *Config) DescriptionDir() string {
	return filepath.Join(c.Workspace, "event-description")
}

func (c *Config) DatasetName() string {
	return "event-dataset.csv"
}

func (c *Config) DatasetPath() string {
	return filepath.Join(c.Workspace, "event-dataset.csv")
}

func (c *Config) AverageName() string {
	return "average-duration.ttl"
}

func (c *Config) AveragePath() string {
	return filepath.Join(c.Workspace, "average-duration.ttl")
}

// ProvenanceDir returns the directory holding one Turtle file per
// recorded step.
func (c *Config) ProvenanceDir() string {
	return filepath.Join(c.Workspace, "provenance")
}
