package app

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults holds the optional ~/.condclirc.yaml settings.
type Defaults struct {
	Verbose  bool   `yaml:"verbose"`
	HashName string `yaml:"hash"` // reserved for future non-SHA-256 suites
}

// Wire bundles the CLI's resolved configuration.
type Wire struct {
	Defaults Defaults
}

// NewWire loads cfg.ConfigPath (or ~/.condclirc.yaml if unset) and returns
// the resolved defaults. A missing file is not an error: commands fall
// back to Defaults' zero value.
func NewWire(cfg Config) (*Wire, error) {
	path := cfg.ConfigPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Wire{}, nil
		}
		path = filepath.Join(home, ".condclirc.yaml")
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Wire{}, nil
	}
	if err != nil {
		return nil, err
	}

	var d Defaults
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &Wire{Defaults: d}, nil
}
