package workflow

import (
	"bytes"
	"encoding/json"
	"errors"
)

// FormatVersion is the value of the "0n" marker on every synthesized document.
const FormatVersion = "1.0"

// FrequencyEventDriven is used when the request carries no frequency.
const FrequencyEventDriven = "event-driven"

// TriggerSpec identifies what starts the automation.
type TriggerSpec struct {
	ID      string `json:"id" yaml:"id" validate:"required"`
	Label   string `json:"label" yaml:"label"`
	Service string `json:"service,omitempty" yaml:"service,omitempty"`
}

// TemplateInfo seeds the workflow name and description when present.
type TemplateInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Services    []string `json:"services" yaml:"services"`
}

// FrequencySpec is the requested run cadence.
type FrequencySpec struct {
	Type string `json:"type" yaml:"type"`
	Cron string `json:"cron,omitempty" yaml:"cron,omitempty"`
}

// Request is the wizard build request.
type Request struct {
	Template         *TemplateInfo  `json:"template" yaml:"template"`
	Trigger          *TriggerSpec   `json:"trigger" yaml:"trigger" validate:"required"`
	SelectedServices []string       `json:"selectedServices" yaml:"selectedServices" validate:"min=1"`
	Description      string         `json:"description" yaml:"description"`
	Notifications    []string       `json:"notifications" yaml:"notifications"`
	Frequency        *FrequencySpec `json:"frequency" yaml:"frequency"`
	CustomCron       *string        `json:"customCron" yaml:"customCron"`
}

// Trigger is the trigger block of a Definition.
type Trigger struct {
	Type   string         `json:"type" yaml:"type"`
	Config map[string]any `json:"config" yaml:"config"`
}

// Step is one unit of work bound to a service and an action.
type Step struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Service   string         `json:"service" yaml:"service"`
	Action    string         `json:"action" yaml:"action"`
	Inputs    map[string]any `json:"inputs" yaml:"inputs"`
	DependsOn []string       `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// Schedule carries the cron expression of scheduled workflows.
type Schedule struct {
	Cron string `json:"cron" yaml:"cron"`
}

// Definition is a .0n workflow document.
//
// A Definition decoded with ParseDefinition remembers the document it was
// decoded from and marshals back to exactly that JSON, keys the struct does
// not model included.
type Definition struct {
	Version       string            `json:"0n" yaml:"0n"`
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description" yaml:"description"`
	Trigger       Trigger           `json:"trigger" yaml:"trigger"`
	Steps         []Step            `json:"steps" yaml:"steps"`
	Notifications []string          `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Frequency     string            `json:"frequency" yaml:"frequency"`
	Schedule      *Schedule         `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Env           map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	raw json.RawMessage
}

var errNotObject = errors.New("workflow document must be a JSON object")

// definitionFields breaks the MarshalJSON recursion.
type definitionFields Definition

// ParseDefinition decodes a JSON workflow document. The input must be a JSON
// object; its compacted source is retained for MarshalJSON.
func ParseDefinition(data []byte) (*Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}

	var fields definitionFields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, err
	}
	def := Definition(fields)
	def.raw = buf.Bytes()
	return &def, nil
}

// MarshalJSON emits the source document for parsed definitions and the
// struct fields otherwise.
func (d Definition) MarshalJSON() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	return json.Marshal(definitionFields(d))
}

// IsParsed reports whether d came from ParseDefinition.
func (d *Definition) IsParsed() bool {
	return len(d.raw) > 0
}

// StepIDs returns the step ids in document order.
func (d *Definition) StepIDs() []string {
	ids := make([]string, len(d.Steps))
	for i, s := range d.Steps {
		ids[i] = s.ID
	}
	return ids
}
