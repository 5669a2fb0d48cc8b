// Package provider defines the generic request/response provider contract
// and the middleware that decorates it.
//
// The text generation adapter is a RequestResponse[CompletionRequest,
// CompletionResponse]. Cross-cutting behavior is layered on with Chain:
//
//	generator := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithTracing[In, Out]("generate"),
//	    provider.WithMetrics[In, Out](metrics),
//	)(provider.WithResilience(adapter, provider.ResilienceConfig{
//	    CircuitBreaker: cfg.BreakerConfig(),
//	}))
//
// Adapt bridges a backend provider to a domain-typed one.
package provider
