// Package config loads the tool config of the mod loader being packaged: the
// JSON document (tool.config.json) that carries its name and version. The
// name doubles as the directory the loader lives in inside the quick-install
// archive, so it has to be usable as a single path segment.
package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/hashicorp/go-version"
)

// DefaultFilename is the tool config file name inside the project directory.
const DefaultFilename = "tool.config.json"

// ToolConfig holds the fields of tool.config.json the packager needs.
// Unknown fields are ignored.
type ToolConfig struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Load reads and validates the tool config at path.
func Load(path string) (*ToolConfig, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// LoadFromReader parses and validates a tool config document.
func LoadFromReader(reader io.Reader) (*ToolConfig, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var cfg ToolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that name and version are usable for archive names.
func (c *ToolConfig) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.Wrap(errors.ErrConfigValidation, "name cannot be empty")
	}
	if c.Name == "." || c.Name == ".." || strings.ContainsAny(c.Name, `/\`) || c.Name != filepath.Base(c.Name) {
		return errors.Wrapf(errors.ErrConfigValidation, "name %q must be a single path segment", c.Name)
	}
	if c.Version == "" {
		return errors.Wrap(errors.ErrConfigValidation, "version cannot be empty")
	}
	if _, err := version.NewVersion(c.Version); err != nil {
		return errors.Wrapf(errors.ErrConfigValidation, "version %q: %v", c.Version, err)
	}
	return nil
}

// ParsedVersion returns the version as a go-version value, or nil when it
// does not parse.
func (c *ToolConfig) ParsedVersion() *version.Version {
	v, err := version.NewVersion(c.Version)
	if err != nil {
		return nil
	}
	return v
}

// Equal reports whether two configs name the same release.
func (c *ToolConfig) Equal(other *ToolConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Name != other.Name {
		return false
	}
	a, b := c.ParsedVersion(), other.ParsedVersion()
	if a == nil || b == nil {
		return c.Version == other.Version
	}
	return a.Equal(b)
}
