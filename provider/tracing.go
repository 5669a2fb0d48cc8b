package provider

import (
	"context"

	"github.com/kbukum/flowsynth/observability"
)

// WithTracing returns a Middleware that wraps each Execute call in a span
// named "provider.<operation>".
func WithTracing[I, O any](operation string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, operation: operation}
	}
}

type tracingRR[I, O any] struct {
	inner     RequestResponse[I, O]
	operation string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, "provider."+t.operation)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrProvider, t.inner.Name())
	observability.SetSpanAttribute(ctx, observability.AttrOperationName, t.operation)

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
	return output, err
}
