package synth

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render encodes v as indented JSON or as YAML. YAML keeps the key order of
// the JSON document, so a verbatim provider workflow renders in its own
// order.
func Render(v any, format string) ([]byte, error) {
	doc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	switch format {
	case "", FormatJSON:
		return append(doc, '\n'), nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(doc, &node); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		plainStyle(&node)
		return yaml.Marshal(&node)
	default:
		return nil, fmt.Errorf("render: unsupported format %q", format)
	}
}

// plainStyle drops the flow style and quoting the JSON source implies, so
// the output reads as block YAML. Strings that would not round-trip keep
// their quotes.
func plainStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		n.Tag = "!!str"
		n.Style &^= yaml.DoubleQuotedStyle
		if needsQuotes(n.Value) {
			n.Style |= yaml.DoubleQuotedStyle
		}
	}
	for _, c := range n.Content {
		plainStyle(c)
	}
}

func needsQuotes(s string) bool {
	var probe any
	if err := yaml.Unmarshal([]byte(s), &probe); err != nil {
		return true
	}
	str, ok := probe.(string)
	return !ok || str != s
}
