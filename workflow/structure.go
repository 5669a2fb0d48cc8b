package workflow

import (
	"fmt"
	"slices"

	"github.com/kbukum/flowsynth/dag"
	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/validation"
)

// ValidateStructure checks a workflow document against the shape Synthesize
// guarantees:
//   - a name and at least one step
//   - every step has an id, service, action and inputs
//   - step ids are unique and every depends_on entry names a known step
//   - the first step has no dependencies and every later step depends on
//     exactly the step before it
//
// It returns nil or an INVALID_INPUT AppError listing every violation.
func ValidateStructure(def *Definition) *errors.AppError {
	v := validation.New()
	if def == nil {
		return v.Custom(false, "workflow", "is required").Validate()
	}

	v.Required("name", def.Name)
	v.MinItems("steps", len(def.Steps), 1)

	idsPresent := true
	for i, s := range def.Steps {
		prefix := fmt.Sprintf("steps[%d]", i)
		v.Required(prefix+".id", s.ID)
		v.Required(prefix+".service", s.Service)
		v.Required(prefix+".action", s.Action)
		v.Custom(s.Inputs != nil, prefix+".inputs", "is required")
		if s.ID == "" {
			idsPresent = false
		}
	}
	if v.HasErrors() || !idsPresent {
		return v.Validate()
	}

	levels, err := dag.BuildLevels(StepGraph(def.Steps))
	if err != nil {
		return v.Custom(false, "steps", err.Error()).Validate()
	}

	for i, s := range def.Steps {
		field := fmt.Sprintf("steps[%d].depends_on", i)
		if i == 0 {
			v.Custom(len(s.DependsOn) == 0, field, "must be empty on the first step")
			continue
		}
		want := []string{def.Steps[i-1].ID}
		v.Custom(slices.Equal(s.DependsOn, want), field, fmt.Sprintf("must be [%q]", want[0]))
	}
	if !v.HasErrors() {
		v.Custom(dag.IsChain(levels), "steps", "must form a single linear chain")
	}
	return v.Validate()
}

// StepGraph returns the dependency graph of steps.
func StepGraph(steps []Step) *dag.Graph {
	g := &dag.Graph{}
	for _, s := range steps {
		g.AddNode(s.ID)
		for _, dep := range s.DependsOn {
			g.AddEdge(dep, s.ID)
		}
	}
	return g
}
