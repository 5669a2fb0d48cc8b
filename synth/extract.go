package synth

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Strategy pulls one JSON candidate out of raw generator text.
type Strategy interface {
	Name() string
	Extract(raw string) (json.RawMessage, error)
}

// Strategy names.
const (
	StrategyFenced = "fenced"
	StrategyWhole  = "whole"
	StrategyBraces = "braces"
)

var (
	errNoFence  = errors.New("no fenced code block")
	errNoBraces = errors.New("no braced span")
	errNotJSON  = errors.New("candidate is not valid JSON")
)

var fencePattern = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// DefaultStrategies returns fenced, whole and braces, in that order.
func DefaultStrategies() []Strategy {
	return []Strategy{FencedStrategy{}, WholeStrategy{}, BracesStrategy{}}
}

// FencedStrategy parses the first ``` or ```json block.
type FencedStrategy struct{}

func (FencedStrategy) Name() string { return StrategyFenced }

func (FencedStrategy) Extract(raw string) (json.RawMessage, error) {
	m := fencePattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, errNoFence
	}
	return parseCandidate(m[1])
}

// WholeStrategy parses the entire reply.
type WholeStrategy struct{}

func (WholeStrategy) Name() string { return StrategyWhole }

func (WholeStrategy) Extract(raw string) (json.RawMessage, error) {
	return parseCandidate(raw)
}

// BracesStrategy parses the span from the first '{' to the last '}'.
type BracesStrategy struct{}

func (BracesStrategy) Name() string { return StrategyBraces }

func (BracesStrategy) Extract(raw string) (json.RawMessage, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, errNoBraces
	}
	return parseCandidate(raw[start : end+1])
}

func parseCandidate(s string) (json.RawMessage, error) {
	b := []byte(strings.TrimSpace(s))
	if !json.Valid(b) {
		return nil, errNotJSON
	}
	return json.RawMessage(b), nil
}
