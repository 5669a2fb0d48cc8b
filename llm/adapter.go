package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kbukum/flowsynth/httpclient"
)

// ErrNoDialect is returned by NewWithDialect when the dialect is nil.
var ErrNoDialect = errors.New("llm: dialect is required")

// Adapter is a config-driven LLM client. It implements
// provider.RequestResponse[CompletionRequest, CompletionResponse].
type Adapter struct {
	http    *httpclient.Client
	dialect Dialect
	cfg     Config
}

// New creates an adapter using the dialect named in cfg.
func New(cfg Config) (*Adapter, error) {
	cfg.ApplyDefaults()
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return newAdapter(dialect, cfg)
}

// NewWithDialect creates an adapter with an explicit dialect instance.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	cfg.ApplyDefaults()
	cfg.Dialect = dialect.Name()
	return newAdapter(dialect, cfg)
}

func newAdapter(dialect Dialect, cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    dialect.Auth(cfg),
		Headers: dialect.Headers(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create http client: %w", err)
	}
	return &Adapter{http: client, dialect: dialect, cfg: cfg}, nil
}

// Name returns the dialect name.
func (a *Adapter) Name() string { return a.dialect.Name() }

// IsAvailable reports whether a credential is configured. Upstream health
// is tracked by the resilience wrapper.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	return a.cfg.Configured()
}

// Model returns the default model.
func (a *Adapter) Model() string { return a.cfg.Model }

// Execute sends a completion request and returns the full response.
func (a *Adapter) Execute(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	a.applyDefaults(&req)

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: build request: %w", err)
	}

	var raw json.RawMessage
	resp, err := a.http.PostJSON(ctx, a.dialect.ChatPath(), body, &raw)
	if err != nil {
		if resp != nil {
			if msg := a.dialect.ErrorMessage(resp.Body); msg != "" {
				return CompletionResponse{}, fmt.Errorf("llm: %s: %s: %w", a.dialect.Name(), msg, err)
			}
		}
		return CompletionResponse{}, fmt.Errorf("llm: %s: %w", a.dialect.Name(), err)
	}

	result, err := a.dialect.ParseResponse(raw)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("llm: parse response: %w", err)
	}
	return *result, nil
}

func (a *Adapter) applyDefaults(req *CompletionRequest) {
	if req.Model == "" {
		req.Model = a.cfg.Model
	}
	if req.Temperature == 0 {
		req.Temperature = a.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.cfg.MaxTokens
	}
}
