// Package config holds the persistent settings of the swd tool.
package config

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	yaml "gopkg.in/yaml.v2"
)

// Adapter kinds
const (
	AdapterSimulator = "simulator"
	AdapterCMSISDAP  = "cmsisdap"
)

// Config is the tool configuration. Command line flags override it.
type Config struct {
	Adapter string `yaml:"adapter"`
	VID     uint16 `yaml:"vid"`
	PID     uint16 `yaml:"pid"`
	Speed   uint32 `yaml:"speed"`
	AP      uint8  `yaml:"ap"`
	Script  string `yaml:"script,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Adapter: AdapterSimulator,
		VID:     0x2E8A,
		PID:     0x000C,
		Speed:   1_000_000,
	}
}

// Path returns the path to the config file
func Path() (string, error) {
	if dir := os.Getenv("APPDATA"); dir != "" {
		// Windows: %APPDATA%\OpenTraceSWD
		return filepath.Join(dir, "OpenTraceSWD", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Trace(err)
	}
	return filepath.Join(home, ".config", "opentraceswd", "config.yaml"), nil
}

// Load reads the config file at the default path.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), errors.Trace(err)
	}
	return LoadFile(path)
}

// LoadFile reads a config file. A missing file yields the defaults; fields
// absent from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Annotatef(err, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotatef(err, "failed to parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}
	return cfg, nil
}

// Save writes cfg to the default path
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return errors.Trace(err)
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, creating its directory.
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Trace(err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, data, 0644))
}

// Validate checks the adapter kind.
func (c *Config) Validate() error {
	switch c.Adapter {
	case AdapterSimulator, AdapterCMSISDAP:
		return nil
	}
	return errors.NotValidf("adapter %q", c.Adapter)
}
