// Package observability wires OpenTelemetry tracing and metrics for the
// synthesis service.
//
// Exporters speak OTLP over HTTP and are only started when enabled. With
// telemetry disabled the global no-op providers stay in place, so spans and
// instruments are always safe to use.
//
//	tel, err := observability.Setup(ctx, cfg.Observability)
//	defer tel.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanSynthBuild)
//	defer span.End()
//	tel.Metrics.RecordBuild(ctx, "provider", "fenced", time.Since(start))
package observability
