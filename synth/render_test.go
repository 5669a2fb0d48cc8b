package synth

import (
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestRender(t *testing.T) {
	resp := Assemble(nil, []string{"Analyzing trigger configuration..."}, []string{"slack"})

	out, err := Render(resp, FormatJSON)
	if err != nil {
		t.Fatalf("Render(json) error = %v", err)
	}
	if !strings.HasPrefix(string(out), "{\n  \"workflow\": null,") {
		t.Errorf("json = %s", out)
	}

	if _, err := Render(resp, "xml"); err == nil {
		t.Error("Render(xml) succeeded")
	}
}

func TestRender_YAMLKeepsOrderAndValues(t *testing.T) {
	resp, err := NewService(New(&stubGenerator{text: validWorkflow}, Config{})).Build(t.Context(), testRequest())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	out, err := Render(resp, FormatYAML)
	if err != nil {
		t.Fatalf("Render(yaml) error = %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"workflow:\n",
		"0n: \"1.0\"",
		"prompt: '{{trigger.payload.text}}'",
		"x-extra:",
		"buildSteps:\n",
		"credentialQueue:\n",
	} {
		if !strings.Contains(text, want) && !strings.Contains(text, strings.ReplaceAll(want, "'", "\"")) {
			t.Errorf("yaml missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "name: lead-to-slack") > strings.Index(text, "steps:") {
		t.Error("yaml reordered workflow keys")
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("yaml does not parse: %v", err)
	}
	wf := decoded["workflow"].(map[string]any)
	if wf["0n"] != "1.0" {
		t.Errorf("0n = %#v, want string 1.0", wf["0n"])
	}
}
