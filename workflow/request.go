package workflow

import (
	"bytes"
	"encoding/json"

	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/validation"
)

// Messages returned to callers for rejected requests.
const (
	MsgInvalidJSON     = "Invalid JSON body"
	MsgTriggerRequired = "Trigger is required"
	MsgServiceRequired = "At least one service is required"
)

// DecodeRequest parses a JSON request body. Malformed input yields an
// INVALID_INPUT AppError; the decoded request is not validated.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Validation(MsgInvalidJSON)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Validation(MsgInvalidJSON).WithCause(err)
	}
	return &req, nil
}

// Validate checks the fields every synthesis step relies on: a trigger with
// a non-empty id and at least one selected service.
func (r *Request) Validate() error {
	for _, f := range validation.Struct(r) {
		switch f.Field {
		case "trigger", "trigger.id":
			return errors.MissingField(f.Field, MsgTriggerRequired)
		case "selectedServices":
			return errors.InvalidInput(f.Field, MsgServiceRequired)
		default:
			return errors.InvalidInput(f.Field, f.String())
		}
	}
	return nil
}

// ScheduleCron returns the cron expression the workflow should be scheduled
// with: the custom override when set, else the frequency's own cron.
func (r *Request) ScheduleCron() string {
	if r.CustomCron != nil && *r.CustomCron != "" {
		return *r.CustomCron
	}
	if r.Frequency != nil {
		return r.Frequency.Cron
	}
	return ""
}

// DistinctServices returns the selected services without duplicates, in
// first-seen order.
func (r *Request) DistinctServices() []string {
	return distinct(r.SelectedServices)
}

func distinct(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
