// Package config loads the optional per-project configuration file
// (.lexforge.yaml in the project directory). An absent file means defaults;
// a present file goes through defaults, normalization, and validation
// passes before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = ".lexforge.yaml"

const (
	defaultOutputDir = "contracts"
	defaultBundleDir = ".lexforge/bundles"
	defaultNetwork   = "localhost:8545"
)

// Config holds runtime configuration for a project directory.
type Config struct {
	// ProjectDir is the directory the tool was invoked from.
	ProjectDir string `yaml:"-"`

	// OutputDir receives generated artifacts. Relative paths resolve
	// against ProjectDir.
	OutputDir string `yaml:"output_dir"`

	// BundleDir is scanned for extra jurisdiction fragment bundles
	// (*.yaml files and yaegi-interpreted *.go plugins). A missing
	// directory means no extra bundles.
	BundleDir string `yaml:"bundle_dir"`

	// Network is the default target for deploy hints.
	Network string `yaml:"network"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`
}

// Load reads the project configuration, returning defaults when no config
// file exists.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{ProjectDir: projectDir}
	cfg.applyDefaults()

	path := filepath.Join(projectDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.normalize()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ProjectDir = projectDir
	cfg.applyDefaults()
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = defaultOutputDir
	}
	if strings.TrimSpace(c.BundleDir) == "" {
		c.BundleDir = defaultBundleDir
	}
	if strings.TrimSpace(c.Network) == "" {
		c.Network = defaultNetwork
	}
}

func (c *Config) normalize() {
	c.OutputDir = resolvePath(c.ProjectDir, c.OutputDir)
	c.BundleDir = resolvePath(c.ProjectDir, c.BundleDir)
	c.Network = strings.TrimSpace(c.Network)
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Network == "" {
		return fmt.Errorf("network is required")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
