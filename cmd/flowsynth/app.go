package main

import (
	"fmt"

	"github.com/kbukum/flowsynth/auth"
	"github.com/kbukum/flowsynth/config"
	"github.com/kbukum/flowsynth/llm"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/mcptool"
	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/provider"
	"github.com/kbukum/flowsynth/server"
	"github.com/kbukum/flowsynth/synth"
	"github.com/kbukum/flowsynth/version"
)

const serviceName = "flowsynth"

// Config is the full flowsynth configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	LLM           llm.Config           `yaml:"llm" mapstructure:"llm"`
	Synth         synth.Config         `yaml:"synth" mapstructure:"synth"`
	Auth          auth.Config          `yaml:"auth" mapstructure:"auth"`
	MCP           mcptool.Config       `yaml:"mcp" mapstructure:"mcp"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills zero fields in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.LLM.ApplyDefaults()
	c.Synth.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.MCP.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section after defaults are applied.
func (c *Config) Validate() error {
	validators := []struct {
		name string
		fn   func() error
	}{
		{"service", c.ServiceConfig.Validate},
		{"server", c.Server.Validate},
		{"llm", c.LLM.Validate},
		{"synth", c.Synth.Validate},
		{"auth", c.Auth.Validate},
		{"mcp", c.MCP.Validate},
		{"observability", c.Observability.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("%s config: %w", v.name, err)
		}
	}
	return nil
}

// loadConfig reads the config file and environment into a validated Config.
// ANTHROPIC_API_KEY is honoured as well as FLOWSYNTH_LLM_API_KEY.
func loadConfig(path string) (*Config, error) {
	var cfg Config
	err := config.Load(serviceName, &cfg,
		config.WithConfigFile(path),
		config.WithEnvAlias("llm.api_key", "ANTHROPIC_API_KEY"),
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newGenerator wires the provider stack behind the synthesizer. It returns
// nil when no API key is configured, which keeps synthesis deterministic.
func newGenerator(cfg *Config, log *logger.Logger, metrics *observability.Metrics) (synth.Generator, error) {
	if !cfg.LLM.Configured() {
		return nil, nil
	}
	adapter, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("creating llm adapter: %w", err)
	}

	var p provider.RequestResponse[llm.CompletionRequest, llm.CompletionResponse] = adapter
	p = provider.WithResilience(p, provider.ResilienceConfig{
		CircuitBreaker: cfg.LLM.BreakerConfig(),
	})
	p = provider.Chain(
		provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](log),
		provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse]("generate"),
		provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](metrics),
	)(p)
	return synth.NewLLMGenerator(p), nil
}

// newService assembles the synthesis service. A nil gen builds
// deterministically.
func newService(cfg *Config, gen synth.Generator, log *logger.Logger, metrics *observability.Metrics) *synth.Service {
	return synth.NewService(
		synth.New(gen, cfg.Synth, synth.WithLogger(log)),
		synth.WithServiceLogger(log),
		synth.WithServiceMetrics(metrics),
	)
}
