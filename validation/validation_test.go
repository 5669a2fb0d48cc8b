package validation

import (
	"testing"

	"github.com/kbukum/flowsynth/errors"
)

type inner struct {
	ID string `json:"id" validate:"required"`
}

type outer struct {
	Inner *inner   `json:"inner" validate:"required"`
	Items []string `json:"items" validate:"min=1"`
	Mode  string   `json:"mode" validate:"omitempty,oneof=fast slow"`
}

func TestStructValid(t *testing.T) {
	s := outer{Inner: &inner{ID: "x"}, Items: []string{"a"}, Mode: "fast"}
	if fields := Struct(s); fields != nil {
		t.Errorf("expected no errors, got %v", fields)
	}
	if err := Validate(s); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestStructFieldPaths(t *testing.T) {
	tests := []struct {
		name  string
		in    outer
		field string
		tag   string
	}{
		{"nil pointer", outer{Items: []string{"a"}}, "inner", "required"},
		{"nested empty", outer{Inner: &inner{}, Items: []string{"a"}}, "inner.id", "required"},
		{"empty slice", outer{Inner: &inner{ID: "x"}}, "items", "min"},
		{"bad enum", outer{Inner: &inner{ID: "x"}, Items: []string{"a"}, Mode: "warp"}, "mode", "oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := Struct(tt.in)
			if len(fields) != 1 {
				t.Fatalf("expected one error, got %v", fields)
			}
			if fields[0].Field != tt.field || fields[0].Tag != tt.tag {
				t.Errorf("got %s/%s, want %s/%s", fields[0].Field, fields[0].Tag, tt.field, tt.tag)
			}
		})
	}
}

func TestValidateReturnsAppError(t *testing.T) {
	err := Validate(outer{})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", appErr.Details["fields"])
	}
}

func TestValidatorCollects(t *testing.T) {
	v := New()
	v.Required("name", "  ").
		MinItems("steps", 0, 1).
		OneOf("frequency", "yearly", []string{"daily", "weekly"}).
		OneOf("empty", "", []string{"a"}).
		Custom(false, "steps[1].depends_on", "must reference step-1")

	if len(v.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %v", v.Errors())
	}
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	want := "name: is required; steps: must contain at least 1 item(s); frequency: must be one of: daily, weekly; steps[1].depends_on: must reference step-1"
	if appErr.Message != want {
		t.Errorf("got %q\nwant %q", appErr.Message, want)
	}
}

func TestValidatorNoErrors(t *testing.T) {
	v := New().Required("name", "ok").MinItems("steps", 2, 1)
	if v.HasErrors() || v.Validate() != nil {
		t.Errorf("expected no errors, got %v", v.Errors())
	}
}
