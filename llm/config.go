package llm

import (
	"fmt"
	"time"

	"github.com/kbukum/flowsynth/resilience"
)

const (
	DefaultDialect          = DialectAnthropic
	DefaultBaseURL          = "https://api.anthropic.com"
	DefaultModel            = "claude-sonnet-4-20250514"
	DefaultAnthropicVersion = "2023-06-01"
	DefaultMaxTokens        = 2000
	defaultTimeout          = 60 * time.Second
)

// Config holds configuration for the text generation adapter.
type Config struct {
	// Dialect selects the provider mapping. Defaults to "anthropic".
	Dialect string `yaml:"dialect" mapstructure:"dialect"`
	// BaseURL is the provider API root.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// APIKey authenticates requests. Empty disables generation entirely.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// Model is the default model for requests that do not set one.
	Model string `yaml:"model" mapstructure:"model"`
	// Temperature is the default sampling temperature. Zero leaves it unset.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	// MaxTokens is the default output budget.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
	// Timeout is the transport-level ceiling for one request. The
	// synthesizer applies its own, usually shorter, deadline.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// AnthropicVersion is sent as the anthropic-version header.
	AnthropicVersion string `yaml:"anthropic_version" mapstructure:"anthropic_version"`
	// CircuitBreaker configures the breaker applied by provider.WithResilience.
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// CircuitBreakerConfig is the config-file view of the provider breaker.
type CircuitBreakerConfig struct {
	Enabled     bool          `yaml:"enabled" mapstructure:"enabled"`
	MaxFailures int           `yaml:"max_failures" mapstructure:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout" mapstructure:"open_timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.AnthropicVersion == "" {
		c.AnthropicVersion = DefaultAnthropicVersion
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("llm: temperature must be within [0, 1], got %v", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("llm: max_tokens must be positive")
	}
	return nil
}

// Configured reports whether a provider credential is present.
func (c *Config) Configured() bool {
	return c.APIKey != ""
}

// BreakerConfig returns the circuit breaker settings, or nil when disabled.
func (c *Config) BreakerConfig() *resilience.CircuitBreakerConfig {
	if !c.CircuitBreaker.Enabled {
		return nil
	}
	cb := resilience.DefaultCircuitBreakerConfig(c.Dialect)
	if c.CircuitBreaker.MaxFailures > 0 {
		cb.MaxFailures = c.CircuitBreaker.MaxFailures
	}
	if c.CircuitBreaker.OpenTimeout > 0 {
		cb.Timeout = c.CircuitBreaker.OpenTimeout
	}
	return &cb
}
