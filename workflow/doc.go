// Package workflow defines the .0n workflow document and the deterministic
// parts of building one from a wizard request.
//
// A Request describes a trigger, the services selected as actions, the
// notification channels and an optional run frequency. Synthesize turns it
// into a Definition whose steps form a single linear chain:
//
//	step-1 -> step-2 -> ... -> step-N -> notify-<channel> -> ...
//
// CredentialQueue and Narrate derive the secondary response fields from the
// same request. ValidateStructure checks documents produced elsewhere against
// the chain rules Synthesize guarantees.
package workflow
