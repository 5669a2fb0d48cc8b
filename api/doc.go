// Package api exposes the workflow wizard over HTTP:
//
//	POST /api/console/wizard/build    build a workflow from a wizard request
//	GET  /api/console/wizard/options  notification channels, frequency presets and services
//
// Build requires a session when a verifier is configured.
package api
