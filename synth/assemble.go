package synth

import "github.com/kbukum/flowsynth/workflow"

// Response is the body of a successful build.
type Response struct {
	Workflow        *workflow.Definition `json:"workflow" yaml:"workflow"`
	BuildSteps      []string             `json:"buildSteps" yaml:"buildSteps"`
	CredentialQueue []string             `json:"credentialQueue" yaml:"credentialQueue"`

	Outcome Outcome `json:"-" yaml:"-"`
}

// Assemble combines the pipeline outputs. Empty lists encode as [].
func Assemble(def *workflow.Definition, buildSteps, credentialQueue []string) *Response {
	if buildSteps == nil {
		buildSteps = []string{}
	}
	if credentialQueue == nil {
		credentialQueue = []string{}
	}
	return &Response{
		Workflow:        def,
		BuildSteps:      buildSteps,
		CredentialQueue: credentialQueue,
	}
}
