// Package resilience holds the circuit breaker that guards the text
// generation provider.
//
// Synthesis never retries a provider call. A tripped breaker makes the
// generation-assisted path fail fast so the deterministic fallback answers
// immediately while the provider is down.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("anthropic"))
//	err := cb.Execute(func() error {
//	    _, err := client.Do(ctx, req)
//	    return err
//	})
package resilience
