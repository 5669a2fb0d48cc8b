package synth

import (
	"fmt"
	"strings"

	"github.com/kbukum/flowsynth/workflow"
)

// Prompt is the pair of texts sent to a Generator.
type Prompt struct {
	System string
	User   string
}

const schemaExample = "```json\n" + `{
  "0n": "1.0",
  "name": "kebab-case-name",
  "description": "What this workflow does",
  "trigger": { "type": "webhook", "config": {} },
  "steps": [
    {
      "id": "step-1",
      "service": "openai",
      "action": "chat_completion",
      "inputs": { "prompt": "{{trigger.payload.text}}" }
    },
    {
      "id": "step-2",
      "service": "slack",
      "action": "send_message",
      "inputs": { "channel": "#general", "text": "{{step.step-1.output}}" },
      "depends_on": ["step-1"]
    }
  ],
  "notifications": ["email"],
  "frequency": "daily"
}` + "\n```"

var rules = []string{
	"1. Output ONLY the JSON object inside a ```json code fence. No other text.",
	"2. Use REAL service IDs from the selected services list.",
	"3. Create proper depends_on chains -- no orphaned steps except the first.",
	"4. Include between 3-12 steps depending on complexity.",
	"5. Use meaningful step IDs (step-1, step-2, etc.).",
	"6. Each step MUST have: id, service, action, inputs.",
	`7. Never say "GHL" or "Go High Level" -- always say "CRM".`,
	"8. Include trigger.config with relevant defaults for the trigger type.",
	`9. Set frequency to the actual frequency type or "event-driven".`,
}

const noDescription = "No additional description provided."

// BuildPrompt renders the system and user prompts for req.
func BuildPrompt(req *workflow.Request) Prompt {
	ctx := contextLines(req)

	system := make([]string, 0, 16+len(rules))
	system = append(system,
		"Generate a .0n workflow definition as valid JSON. The format is:",
		"",
		schemaExample,
		"",
		"## Configuration",
	)
	system = append(system, ctx...)
	system = append(system, "", "## Rules")
	system = append(system, rules...)

	user := make([]string, 0, 2+len(ctx))
	user = append(user, "Generate the .0n workflow JSON for this configuration:", "")
	user = append(user, ctx[:len(ctx)-1]...)
	if desc := ctx[len(ctx)-1]; desc != "" {
		user = append(user, desc)
	} else {
		user = append(user, noDescription)
	}

	return Prompt{
		System: strings.Join(system, "\n"),
		User:   strings.Join(user, "\n"),
	}
}

// contextLines returns trigger, services, notifications, frequency,
// template and description lines. The description line may be empty.
func contextLines(req *workflow.Request) []string {
	trigger := fmt.Sprintf(`Trigger: "%s" (id: %s)`, req.Trigger.Label, req.Trigger.ID)
	if req.Trigger.Service != "" {
		trigger += ", service: " + req.Trigger.Service
	}

	notif := "No notifications configured"
	if len(req.Notifications) > 0 {
		notif = "Notifications via: " + strings.Join(req.Notifications, ", ")
	}

	freq := "Frequency: " + workflow.FrequencyEventDriven + " (no schedule)"
	if req.Frequency != nil {
		freq = "Frequency: " + req.Frequency.Type
		if req.Frequency.Cron != "" {
			freq += " (cron: " + req.Frequency.Cron + ")"
		}
		if req.CustomCron != nil && *req.CustomCron != "" {
			freq += " (custom cron: " + *req.CustomCron + ")"
		}
	}

	tmpl := "Custom workflow (no template selected)."
	if t := req.Template; t != nil {
		tmpl = fmt.Sprintf(`Based on template: "%s" -- %s. Template services: %s.`,
			t.Name, t.Description, strings.Join(t.Services, ", "))
	}

	desc := ""
	if req.Description != "" {
		desc = `User description: "` + req.Description + `"`
	}

	return []string{
		trigger,
		"Selected services: " + strings.Join(req.SelectedServices, ", "),
		notif,
		freq,
		tmpl,
		desc,
	}
}
