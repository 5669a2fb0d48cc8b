package synth

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/workflow"
)

const validWorkflow = `{
  "0n": "1.0",
  "name": "lead-to-slack",
  "description": "Posts new leads to Slack",
  "trigger": { "type": "webhook", "config": {} },
  "steps": [
    { "id": "step-1", "service": "openai", "action": "chat_completion", "inputs": { "prompt": "{{trigger.payload.text}}" } },
    { "id": "step-2", "service": "slack", "action": "send_message", "inputs": { "text": "{{step.step-1.output}}" }, "depends_on": ["step-1"] }
  ],
  "frequency": "event-driven",
  "x-extra": { "kept": true }
}`

// Orphaned second step.
const brokenWorkflow = `{
  "0n": "1.0",
  "name": "broken",
  "trigger": { "type": "webhook", "config": {} },
  "steps": [
    { "id": "step-1", "service": "openai", "action": "chat_completion", "inputs": {} },
    { "id": "step-2", "service": "slack", "action": "send_message", "inputs": {} }
  ]
}`

type stubGenerator struct {
	mu     sync.Mutex
	text   string
	err    error
	delay  time.Duration
	calls  int
	prompt Prompt
	budget int
}

func (g *stubGenerator) Generate(_ context.Context, prompt Prompt, budget int) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompt = prompt
	g.budget = budget
	g.mu.Unlock()
	if g.delay > 0 {
		time.Sleep(g.delay) // ignores ctx
	}
	return g.text, g.err
}

func testRequest() *workflow.Request {
	return &workflow.Request{
		Trigger:          &workflow.TriggerSpec{ID: "webhook", Label: "Incoming Webhook"},
		SelectedServices: []string{"openai", "slack"},
		Notifications:    []string{"email"},
	}
}

func compactJSON(t *testing.T, s string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		t.Fatalf("compact: %v", err)
	}
	return buf.String()
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestSynthesize_NoGenerator(t *testing.T) {
	s := New(nil, Config{})
	req := testRequest()

	def, out := s.Synthesize(context.Background(), req)
	if out.Source != SourceDeterministic {
		t.Errorf("Source = %q, want %q", out.Source, SourceDeterministic)
	}
	if got, want := marshal(t, def), marshal(t, workflow.Synthesize(req)); got != want {
		t.Errorf("workflow = %s, want %s", got, want)
	}
}

func TestSynthesize_AcceptedReplyIsVerbatim(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		strategy string
	}{
		{"json fence", "Here you go:\n```json\n" + validWorkflow + "\n```\nEnjoy.", StrategyFenced},
		{"bare fence", "```\n" + validWorkflow + "\n```", StrategyFenced},
		{"whole reply", "  " + validWorkflow + "\n", StrategyWhole},
		{"embedded object", "Sure! " + validWorkflow + " Let me know.", StrategyBraces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{text: tt.reply}
			s := New(gen, Config{})

			def, out := s.Synthesize(context.Background(), testRequest())
			if out.Source != SourceProvider {
				t.Fatalf("Source = %q (reason %q), want provider", out.Source, out.Reason)
			}
			if out.Strategy != tt.strategy {
				t.Errorf("Strategy = %q, want %q", out.Strategy, tt.strategy)
			}
			if got, want := marshal(t, def), compactJSON(t, validWorkflow); got != want {
				t.Errorf("workflow = %s\nwant %s", got, want)
			}
		})
	}
}

func TestSynthesize_PromptAndBudget(t *testing.T) {
	gen := &stubGenerator{text: validWorkflow}
	s := New(gen, Config{})
	req := testRequest()

	s.Synthesize(context.Background(), req)
	if gen.budget != defaultMaxTokens {
		t.Errorf("budget = %d, want %d", gen.budget, defaultMaxTokens)
	}
	if gen.prompt != BuildPrompt(req) {
		t.Error("generator received a different prompt")
	}
}

func TestSynthesize_Fallbacks(t *testing.T) {
	tests := []struct {
		name   string
		gen    *stubGenerator
		reason string
		code   errors.ErrorCode
	}{
		{"provider error", &stubGenerator{err: stderrors.New("boom")}, ReasonProviderError, errors.ErrCodeExternalService},
		{"deadline error", &stubGenerator{err: context.DeadlineExceeded}, ReasonTimeout, errors.ErrCodeTimeout},
		{"no json", &stubGenerator{text: "I cannot help with that."}, ReasonNoJSON, errors.ErrCodeGenerationFailed},
		{"json array", &stubGenerator{text: `[1, 2, 3]`}, ReasonNoJSON, errors.ErrCodeGenerationFailed},
		{"orphaned step", &stubGenerator{text: "```json\n" + brokenWorkflow + "\n```"}, ReasonRejected, errors.ErrCodeGenerationFailed},
		{"missing steps", &stubGenerator{text: `{"0n":"1.0","name":"empty","steps":[]}`}, ReasonRejected, errors.ErrCodeGenerationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.gen, Config{})
			req := testRequest()

			def, out := s.Synthesize(context.Background(), req)
			if out.Source != SourceFallback {
				t.Fatalf("Source = %q, want fallback", out.Source)
			}
			if out.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", out.Reason, tt.reason)
			}
			appErr, ok := errors.AsAppError(out.Err)
			if !ok || appErr.Code != tt.code {
				t.Errorf("Err = %v, want code %s", out.Err, tt.code)
			}
			if got, want := marshal(t, def), marshal(t, workflow.Synthesize(req)); got != want {
				t.Errorf("fallback workflow = %s, want %s", got, want)
			}
		})
	}
}

func TestSynthesize_RejectedCandidateTriesNextStrategy(t *testing.T) {
	reply := "```json\n" + brokenWorkflow + "\n```\n"
	gen := &stubGenerator{text: reply}
	s := New(gen, Config{}, WithStrategies(FencedStrategy{}, BracesStrategy{}))

	// braces finds the same broken object
	_, out := s.Synthesize(context.Background(), testRequest())
	if out.Source != SourceFallback || out.Reason != ReasonRejected {
		t.Errorf("outcome = %+v, want fallback/%s", out, ReasonRejected)
	}

	s = New(&stubGenerator{text: reply}, Config{}, WithStrategies(FencedStrategy{}, fixedStrategy(validWorkflow)))
	_, out = s.Synthesize(context.Background(), testRequest())
	if out.Source != SourceProvider || out.Strategy != "fixed" {
		t.Errorf("outcome = %+v, want provider/fixed", out)
	}
}

type fixedStrategy string

func (fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Extract(string) (json.RawMessage, error) {
	return json.RawMessage(f), nil
}

func TestSynthesize_Timeout(t *testing.T) {
	gen := &stubGenerator{text: validWorkflow, delay: 500 * time.Millisecond}
	s := New(gen, Config{Timeout: 20 * time.Millisecond})

	start := time.Now()
	_, out := s.Synthesize(context.Background(), testRequest())
	elapsed := time.Since(start)

	if out.Source != SourceFallback || out.Reason != ReasonTimeout {
		t.Errorf("outcome = %+v, want fallback/%s", out, ReasonTimeout)
	}
	if elapsed > 300*time.Millisecond {
		t.Errorf("Synthesize took %s, want about the 20ms timeout", elapsed)
	}
}

func TestSynthesize_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&stubGenerator{err: context.Canceled}, Config{})
	_, out := s.Synthesize(ctx, testRequest())
	if out.Source != SourceFallback || out.Reason != ReasonCanceled {
		t.Errorf("outcome = %+v, want fallback/%s", out, ReasonCanceled)
	}
}

func TestConfig(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	if c.MaxTokens != 2000 || c.Timeout != 30*time.Second {
		t.Errorf("defaults = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (&Config{MaxTokens: -1, Timeout: time.Second}).Validate(); err == nil {
		t.Error("Validate() accepted negative max_tokens")
	}
}
