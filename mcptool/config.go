package mcptool

import (
	"fmt"
	"strings"
)

// Config configures the MCP surface.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Name    string `yaml:"name" mapstructure:"name"`
	// Path is the mount prefix without a trailing slash.
	Path string `yaml:"path" mapstructure:"path"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "flowsynth"
	}
	if c.Path == "" {
		c.Path = "/mcp"
	}
	c.Path = "/" + strings.Trim(c.Path, "/")
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.Enabled && c.Path == "/" {
		return fmt.Errorf("mcp.path must not be the root path")
	}
	return nil
}
