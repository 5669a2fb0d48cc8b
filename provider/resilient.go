package provider

import (
	"context"
	"errors"

	apperrors "github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/httpclient"
	"github.com/kbukum/flowsynth/resilience"
)

// ResilienceConfig bundles optional resilience policies for a provider.
// Calls are never retried.
type ResilienceConfig struct {
	// CircuitBreaker stops calling a provider after repeated failures. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig
}

// IsEmpty returns true if no policy is configured.
func (c ResilienceConfig) IsEmpty() bool {
	return c.CircuitBreaker == nil
}

// WithResilience wraps p with the configured policies. An empty config
// returns p unchanged. While the breaker is open, Execute fails with a
// retryable EXTERNAL_SERVICE_ERROR wrapping resilience.ErrCircuitOpen and
// IsAvailable reports false.
func WithResilience[I, O any](p RequestResponse[I, O], cfg ResilienceConfig) RequestResponse[I, O] {
	if cfg.IsEmpty() {
		return p
	}
	cbCfg := *cfg.CircuitBreaker
	if cbCfg.IsFailure == nil {
		cbCfg.IsFailure = countsAgainstBreaker
	}
	return &resilientRR[I, O]{inner: p, cb: resilience.NewCircuitBreaker(cbCfg)}
}

type resilientRR[I, O any] struct {
	inner RequestResponse[I, O]
	cb    *resilience.CircuitBreaker
}

func (r *resilientRR[I, O]) Name() string { return r.inner.Name() }

func (r *resilientRR[I, O]) IsAvailable(ctx context.Context) bool {
	return r.cb.State() != resilience.StateOpen && r.inner.IsAvailable(ctx)
}

func (r *resilientRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	var out O
	err := r.cb.Execute(func() error {
		var execErr error
		out, execErr = r.inner.Execute(ctx, input)
		return execErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return out, apperrors.ExternalServiceError(r.inner.Name(), err)
	}
	return out, err
}

// Rejected requests say nothing about upstream health.
func countsAgainstBreaker(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var httpErr *httpclient.Error
	if errors.As(err, &httpErr) {
		return httpErr.Retryable
	}
	return true
}
