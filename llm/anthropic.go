package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kbukum/flowsynth/httpclient"
)

// DialectAnthropic is the registered name of the Messages API dialect.
const DialectAnthropic = "anthropic"

func init() {
	RegisterDialect(DialectAnthropic, AnthropicDialect{})
}

// AnthropicDialect speaks the Anthropic Messages API.
type AnthropicDialect struct{}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Content    []anthropicContent `json:"content"`
	StopReason string             `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Name returns "anthropic".
func (AnthropicDialect) Name() string { return DialectAnthropic }

// ChatPath returns the Messages endpoint.
func (AnthropicDialect) ChatPath() string { return "/v1/messages" }

// Auth sends the API key in x-api-key.
func (AnthropicDialect) Auth(cfg Config) *httpclient.AuthConfig {
	return httpclient.APIKeyAuthHeader(cfg.APIKey, "x-api-key")
}

// Headers returns the version header.
func (AnthropicDialect) Headers(cfg Config) map[string]string {
	return map[string]string{"anthropic-version": cfg.AnthropicVersion}
}

// BuildRequest maps the system prompt to the top-level system field.
func (AnthropicDialect) BuildRequest(req CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, errors.New("anthropic: at least one message is required")
	}
	if req.MaxTokens <= 0 {
		return nil, errors.New("anthropic: max_tokens must be positive")
	}
	body := anthropicRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    req.SystemPrompt,
		Messages:  req.Messages,
	}
	if req.Temperature > 0 {
		t := req.Temperature
		body.Temperature = &t
	}
	return body, nil
}

// ParseResponse concatenates the text blocks of the response.
func (AnthropicDialect) ParseResponse(body []byte) (*CompletionResponse, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("anthropic: decode response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &CompletionResponse{
		Content:    text.String(),
		Model:      resp.Model,
		StopReason: resp.StopReason,
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}

// ErrorMessage reads {"type":"error","error":{"type":...,"message":...}}.
func (AnthropicDialect) ErrorMessage(body []byte) string {
	var e anthropicError
	if err := json.Unmarshal(body, &e); err != nil || e.Error.Message == "" {
		return ""
	}
	if e.Error.Type != "" {
		return e.Error.Type + ": " + e.Error.Message
	}
	return e.Error.Message
}
