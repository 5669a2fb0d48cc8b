// Package synth turns a validated wizard request into a workflow response.
//
// A Synthesizer asks an injected Generator for a workflow document, pulls
// JSON out of the reply with an ordered list of extraction strategies and
// checks the candidate's structure. Any failure along the way, including a
// provider timeout, degrades to workflow.Synthesize, so a build always
// yields a valid workflow.
//
// Service runs the whole pipeline: validate, narrate, resolve credentials,
// synthesize and assemble.
//
//	svc := synth.NewService(synth.New(generator, cfg.Synth, synth.WithLogger(log)))
//	resp, err := svc.Build(ctx, req)
package synth
