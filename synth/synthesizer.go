package synth

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/httpclient"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/workflow"
)

// Generator produces raw workflow text for a prompt. budget caps the
// length of the reply in tokens.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt, budget int) (string, error)
}

// Source says where a synthesized workflow came from.
type Source string

const (
	// SourceDeterministic means no generator was configured.
	SourceDeterministic Source = "deterministic"
	// SourceProvider means the generator reply was accepted.
	SourceProvider Source = "provider"
	// SourceFallback means the generator failed and the deterministic
	// workflow was used instead.
	SourceFallback Source = "fallback"
)

// Fallback reasons.
const (
	ReasonTimeout       = "timeout"
	ReasonCanceled      = "canceled"
	ReasonProviderError = "provider_error"
	ReasonNoJSON        = "no_json"
	ReasonRejected      = "structure_rejected"
)

const (
	defaultMaxTokens = 2000
	defaultTimeout   = 30 * time.Second
)

// Config tunes generation-assisted synthesis.
type Config struct {
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("synth: max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("synth: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Outcome records how a workflow was produced. Err holds the recovered
// failure for fallbacks and is never shown to clients.
type Outcome struct {
	Source   Source `json:"source"`
	Strategy string `json:"strategy,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Err      error  `json:"-"`
}

// Synthesizer produces workflow definitions, preferring generator output
// and falling back to workflow.Synthesize.
type Synthesizer struct {
	gen        Generator
	cfg        Config
	strategies []Strategy
	log        *logger.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithStrategies replaces the extraction cascade.
func WithStrategies(strategies ...Strategy) Option {
	return func(s *Synthesizer) { s.strategies = strategies }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Synthesizer) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Synthesizer. A nil gen makes every call deterministic.
func New(gen Generator, cfg Config, opts ...Option) *Synthesizer {
	cfg.ApplyDefaults()
	s := &Synthesizer{
		gen:        gen,
		cfg:        cfg,
		strategies: DefaultStrategies(),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("synth")
	return s
}

// Generator returns the configured generator, or nil.
func (s *Synthesizer) Generator() Generator { return s.gen }

// Synthesize returns a workflow for an already validated request. It never
// fails: generator errors and unusable replies yield the deterministic
// workflow and an Outcome describing why.
func (s *Synthesizer) Synthesize(ctx context.Context, req *workflow.Request) (*workflow.Definition, Outcome) {
	if s.gen == nil {
		return workflow.Synthesize(req), Outcome{Source: SourceDeterministic}
	}

	raw, err := s.generate(ctx, BuildPrompt(req))
	if err != nil {
		return s.fallback(ctx, req, classify(ctx, err))
	}

	var lastErr error
	for _, strategy := range s.strategies {
		candidate, err := strategy.Extract(raw)
		if err != nil {
			lastErr = err
			continue
		}
		def, err := workflow.ParseDefinition(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if appErr := workflow.ValidateStructure(def); appErr != nil {
			s.log.WithContext(ctx).Debug("generated workflow rejected", logger.Fields(
				logger.FieldStrategy, strategy.Name(),
				logger.FieldError, appErr.Error(),
			))
			lastErr = errors.GenerationFailed("validate", appErr)
			continue
		}
		return def, Outcome{Source: SourceProvider, Strategy: strategy.Name()}
	}

	reason := ReasonNoJSON
	var appErr *errors.AppError
	if stderrors.As(lastErr, &appErr) && appErr.Code == errors.ErrCodeGenerationFailed {
		reason = ReasonRejected
	} else {
		lastErr = errors.GenerationFailed("extract", lastErr)
	}
	return s.fallback(ctx, req, failure{reason: reason, err: lastErr})
}

type result struct {
	text string
	err  error
}

// generate bounds the generator call by the configured timeout, even when
// the generator ignores its context.
func (s *Synthesizer) generate(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		text, err := s.gen.Generate(ctx, prompt, s.cfg.MaxTokens)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type failure struct {
	reason string
	err    error
}

func classify(ctx context.Context, err error) failure {
	switch {
	case ctx.Err() != nil && stderrors.Is(ctx.Err(), context.Canceled):
		return failure{reason: ReasonCanceled, err: err}
	case stderrors.Is(err, context.DeadlineExceeded), httpclient.IsTimeout(err):
		return failure{reason: ReasonTimeout, err: errors.Timeout("generate").WithCause(err)}
	default:
		return failure{reason: ReasonProviderError, err: errors.ExternalServiceError("generator", err)}
	}
}

func (s *Synthesizer) fallback(ctx context.Context, req *workflow.Request, f failure) (*workflow.Definition, Outcome) {
	s.log.WithContext(ctx).Warn("workflow generation failed, using deterministic workflow", logger.Fields(
		logger.FieldOutcome, string(SourceFallback),
		logger.FieldReason, f.reason,
		logger.FieldError, errorString(f.err),
	))
	return workflow.Synthesize(req), Outcome{Source: SourceFallback, Reason: f.reason, Err: f.err}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
