package observability

import (
	"context"
	"errors"
	"fmt"
)

// Telemetry owns the exporters started by Setup.
type Telemetry struct {
	Metrics   *Metrics
	shutdowns []func(context.Context) error
}

// Setup starts tracing and metrics export when cfg.Enabled and always
// returns usable Metrics, backed by the global meter provider.
func Setup(ctx context.Context, cfg Config) (*Telemetry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &Telemetry{}
	if cfg.Enabled {
		tp, err := InitTracer(ctx, cfg)
		if err != nil {
			return nil, err
		}
		t.shutdowns = append(t.shutdowns, tp.Shutdown)

		mp, err := InitMeter(ctx, cfg)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, err
		}
		t.shutdowns = append(t.shutdowns, mp.Shutdown)
	}

	m, err := NewMetrics(Meter(defaultTracerName))
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}
	t.Metrics = m
	return t, nil
}

// Shutdown flushes and stops the exporters.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.shutdowns) - 1; i >= 0; i-- {
		if err := t.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdowns = nil
	return errors.Join(errs...)
}
