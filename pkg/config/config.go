// Package config reads the project-level lv configuration from
// .lv/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the configuration file inside .lv/.
const ConfigFile = "config.yaml"

// Themes that the renderer knows how to draw.
var knownThemes = []string{"dark", "light", "plain"}

// Config represents a project configuration file (.lv/config.yaml)
type Config struct {
	// Data is the collection path, relative to the project root
	// (default: .lv/items.jsonl). Extension picks the storage backend.
	Data string `yaml:"data,omitempty" json:"data,omitempty"`

	// Virtual turns on windowed rendering by default (default: false)
	Virtual *bool `yaml:"virtual,omitempty" json:"virtual,omitempty"`

	// ItemHeight is the rendered height of one row in screen rows
	// (default: 1)
	ItemHeight int `yaml:"item_height,omitempty" json:"item_height,omitempty"`

	// Watch reloads the collection when the file changes (default: true)
	Watch *bool `yaml:"watch,omitempty" json:"watch,omitempty"`

	// Theme selects the color theme: dark, light, plain (default: dark)
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// Preset names the preset applied at startup (default: none)
	Preset string `yaml:"preset,omitempty" json:"preset,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Data:       filepath.Join(".lv", "items.jsonl"),
		ItemHeight: 1,
		Theme:      "dark",
	}
}

// IsVirtual returns whether windowed rendering is on by default.
func (c *Config) IsVirtual() bool {
	if c.Virtual == nil {
		return false
	}
	return *c.Virtual
}

// IsWatch returns whether file watching is enabled.
func (c *Config) IsWatch() bool {
	if c.Watch == nil {
		return true
	}
	return *c.Watch
}

// DataPath resolves the collection path against the project root.
func (c *Config) DataPath(root string) string {
	if filepath.IsAbs(c.Data) {
		return c.Data
	}
	return filepath.Join(root, c.Data)
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.ItemHeight < 0 {
		return fmt.Errorf("item_height must not be negative")
	}
	themeOK := false
	for _, t := range knownThemes {
		if c.Theme == t {
			themeOK = true
			break
		}
	}
	if !themeOK {
		return fmt.Errorf("unknown theme %q (want dark, light or plain)", c.Theme)
	}
	return nil
}

// Load reads a configuration file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	defaults := Default()
	if config.Data == "" {
		config.Data = defaults.Data
	}
	if config.ItemHeight == 0 {
		config.ItemHeight = defaults.ItemHeight
	}
	if config.Theme == "" {
		config.Theme = defaults.Theme
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Discover finds and loads the nearest project configuration, walking
// up from dir. When no file exists the defaults apply and the returned
// root is dir itself.
func Discover(dir string) (*Config, string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, "", err
		}
	}

	path, err := FindConfig(dir)
	if err != nil {
		if os.IsNotExist(err) {
			config := Default()
			return &config, dir, nil
		}
		return nil, "", err
	}

	config, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	// path is <root>/.lv/config.yaml
	return config, filepath.Dir(filepath.Dir(path)), nil
}

// FindConfig searches for .lv/config.yaml starting from dir
func FindConfig(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	// Walk up the directory tree looking for .lv/config.yaml
	for {
		candidate := filepath.Join(dir, ".lv", ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
