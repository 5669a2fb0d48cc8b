package synth

import (
	"context"
	"time"

	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/workflow"
)

// Service runs the build pipeline.
type Service struct {
	synth   *Synthesizer
	log     *logger.Logger
	metrics *observability.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(log *logger.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithServiceMetrics records build counts and durations.
func WithServiceMetrics(m *observability.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a Service. A nil synthesizer builds deterministically.
func NewService(synth *Synthesizer, opts ...ServiceOption) *Service {
	if synth == nil {
		synth = New(nil, Config{})
	}
	s := &Service{synth: synth, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("build")
	return s
}

// Build validates req and returns the assembled response. Only validation
// errors are returned; generation failures fall back silently.
func (s *Service) Build(ctx context.Context, req *workflow.Request) (*Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSynthBuild)
	defer span.End()
	start := time.Now()

	if err := req.Validate(); err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	buildSteps := workflow.Narrate(req.SelectedServices, req.Notifications)
	queue := workflow.CredentialQueue(req.SelectedServices, req.Notifications)
	def, outcome := s.synth.Synthesize(ctx, req)

	resp := Assemble(def, buildSteps, queue)
	resp.Outcome = outcome

	elapsed := time.Since(start)
	observability.SetSpanAttribute(ctx, observability.AttrOutcome, string(outcome.Source))
	observability.SetSpanAttribute(ctx, observability.AttrStrategy, outcome.Strategy)
	observability.SetSpanAttribute(ctx, observability.AttrStepCount, len(def.Steps))
	s.metrics.RecordBuild(ctx, string(outcome.Source), outcome.Strategy, elapsed)

	s.log.WithContext(ctx).Info("workflow built", logger.Fields(
		logger.FieldOutcome, string(outcome.Source),
		logger.FieldStrategy, outcome.Strategy,
		"steps", len(def.Steps),
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return resp, nil
}

// BuildJSON decodes a JSON request body and builds it.
func (s *Service) BuildJSON(ctx context.Context, body []byte) (*Response, error) {
	req, err := workflow.DecodeRequest(body)
	if err != nil {
		return nil, err
	}
	return s.Build(ctx, req)
}

type availability interface {
	IsAvailable(ctx context.Context) bool
}

// CheckHealth reports the generator state. Without a generator the service
// is up in deterministic mode; an unavailable generator degrades it.
func (s *Service) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: "generator", Status: observability.HealthStatusUp}
	gen := s.synth.Generator()
	if gen == nil {
		h.Details = map[string]string{"mode": string(SourceDeterministic)}
		return h
	}
	h.Details = map[string]string{"mode": "assisted"}
	if a, ok := gen.(availability); ok && !a.IsAvailable(ctx) {
		h.Status = observability.HealthStatusDegraded
		h.Message = "generator unavailable, serving deterministic workflows"
	}
	return h
}
