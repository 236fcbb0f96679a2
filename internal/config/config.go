// Package config loads the optional per-project .ccperf.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aceteam-ai/ccperf/internal/recorddb"
)

// FileName is resolved relative to the build directory.
const FileName = ".ccperf.yaml"

// Config holds project-level overrides for recording and reporting.
// Every field is optional; the zero Config is the default behavior.
type Config struct {
	// Jobs overrides the default worker pool size.
	Jobs int `yaml:"jobs,omitempty"`

	// Store overrides the record store filename.
	Store string `yaml:"store,omitempty"`

	// SystemPrefixes lists extra path prefixes treated as system
	// include roots, for toolchains installed outside /usr.
	SystemPrefixes []string `yaml:"system_prefixes,omitempty"`

	// CompilerMarkers lists extra driver names recognized as
	// GCC-compatible compilers.
	CompilerMarkers []string `yaml:"compiler_markers,omitempty"`
}

// Load reads dir's project config. A missing file yields the zero
// Config; a malformed one is an error the caller should surface.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// StoreName returns the record store filename, honoring the override.
func (c *Config) StoreName() string {
	if c.Store != "" {
		return c.Store
	}
	return recorddb.StoreName
}
