package workflow

import (
	"fmt"
	"strings"
	"unicode"
)

// Template expressions bound into step inputs.
const (
	TriggerPayloadRef = "{{trigger.payload}}"
	stepOutputRefFmt  = "{{step.%s.output}}"
)

// StepOutputRef returns the template expression for a step's output.
func StepOutputRef(stepID string) string {
	return fmt.Sprintf(stepOutputRefFmt, stepID)
}

// ActionStepID returns the id of the action step at zero-based index i.
func ActionStepID(i int) string {
	return fmt.Sprintf("step-%d", i+1)
}

// NotificationStepID returns the id of the step delivering to channel.
func NotificationStepID(channel string) string {
	return "notify-" + channel
}

// CredentialEnvKey returns the environment key holding a service's secret.
func CredentialEnvKey(service string) string {
	return strings.ToUpper(service) + "_API_KEY"
}

// Synthesize builds the workflow for req without any external call. It
// assumes req passed Validate and always returns a document whose steps form
// a single linear chain.
//
// Selected services are not deduplicated: a service listed twice yields two
// steps sharing one env key.
func Synthesize(req *Request) *Definition {
	def := &Definition{
		Version:     FormatVersion,
		Name:        workflowName(req),
		Description: workflowDescription(req),
		Trigger:     Trigger{Type: req.Trigger.ID, Config: map[string]any{}},
		Steps:       make([]Step, 0, len(req.SelectedServices)+len(req.Notifications)),
		Frequency:   FrequencyEventDriven,
		Env:         make(map[string]string, len(req.SelectedServices)),
	}

	for i, service := range req.SelectedServices {
		step := Step{
			ID:      ActionStepID(i),
			Name:    Humanize(service) + " Action",
			Service: service,
			Action:  string(ActionFor(service)),
			Inputs:  map[string]any{"data": TriggerPayloadRef},
		}
		if i > 0 {
			prev := ActionStepID(i - 1)
			step.Inputs["data"] = StepOutputRef(prev)
			step.DependsOn = []string{prev}
		}
		key := CredentialEnvKey(service)
		def.Env[key] = "{{env." + key + "}}"
		def.Steps = append(def.Steps, step)
	}

	message := fmt.Sprintf("Workflow %q completed successfully.", def.Name)
	for _, channel := range req.Notifications {
		step := Step{
			ID:      NotificationStepID(channel),
			Name:    "Notify via " + capitalize(channel),
			Service: NotificationService(channel),
			Action:  string(NotificationActionFor(channel)),
			Inputs:  map[string]any{"message": message},
		}
		if n := len(def.Steps); n > 0 {
			step.DependsOn = []string{def.Steps[n-1].ID}
		}
		def.Steps = append(def.Steps, step)
	}

	if len(req.Notifications) > 0 {
		def.Notifications = append([]string(nil), req.Notifications...)
	}
	if req.Trigger.Service != "" {
		def.Trigger.Config["service"] = req.Trigger.Service
	}
	if req.Frequency != nil && req.Frequency.Type != "" {
		def.Frequency = req.Frequency.Type
	}
	if cron := req.ScheduleCron(); cron != "" {
		def.Schedule = &Schedule{Cron: cron}
	}
	if len(def.Env) == 0 {
		def.Env = nil
	}
	return def
}

func workflowName(req *Request) string {
	if req.Template != nil {
		return req.Template.ID
	}
	return fmt.Sprintf("custom-%s-workflow", req.Trigger.ID)
}

func workflowDescription(req *Request) string {
	switch {
	case req.Template != nil:
		return req.Template.Description
	case req.Description != "":
		return req.Description
	default:
		return "Custom workflow triggered by " + req.Trigger.Label
	}
}

// Humanize turns a service identifier into a display name: underscores
// become spaces and every word starts with an upper-case letter.
//
//	google_sheets -> Google Sheets
func Humanize(id string) string {
	runes := []rune(strings.ReplaceAll(id, "_", " "))
	for i, r := range runes {
		if isWordRune(r) && (i == 0 || !isWordRune(runes[i-1])) {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
