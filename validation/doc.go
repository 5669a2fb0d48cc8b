// Package validation provides input validation for flowsynth requests and
// generated documents.
//
// Struct tag validation (go-playground/validator) checks decoded request
// bodies; field paths are reported with their JSON names. The programmatic
// Validator collects errors for rules that tags cannot express, such as the
// step-chain checks applied to generated workflows.
//
// # Struct Tag Validation
//
//	type Request struct {
//	    Trigger *Trigger `json:"trigger" validate:"required"`
//	}
//	if fields := validation.Struct(req); len(fields) > 0 { ... }
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("steps[0].service", step.Service)
//	if err := v.Validate(); err != nil { ... }
package validation
