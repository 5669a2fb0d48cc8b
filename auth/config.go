package auth

import (
	"errors"
	"fmt"
	"time"
)

// SigningMethod is an HMAC algorithm accepted for session tokens.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// DefaultCookieName is read when no Authorization header is present.
const DefaultCookieName = "session"

// Config configures session verification.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Secret     string        `yaml:"secret" mapstructure:"secret"`
	Method     SigningMethod `yaml:"method" mapstructure:"method"`
	Issuer     string        `yaml:"issuer" mapstructure:"issuer"`
	Audience   string        `yaml:"audience" mapstructure:"audience"`
	CookieName string        `yaml:"cookie_name" mapstructure:"cookie_name"`
	// TokenTTL is the lifetime of tokens issued by Issue.
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = time.Hour
	}
}

// Validate checks an enabled configuration. Disabled configs are always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Secret == "" {
		return errors.New("auth: secret is required when auth is enabled")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("auth: unsupported signing method %q", c.Method)
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("auth: token_ttl must be non-negative, got %s", c.TokenTTL)
	}
	return nil
}

// Describe returns a one-line summary for startup logs.
func (c *Config) Describe() string {
	if !c.Enabled {
		return "disabled"
	}
	return fmt.Sprintf("JWT(%s) cookie=%s", c.Method, c.CookieName)
}
