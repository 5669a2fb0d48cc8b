// Package component runs the long-lived parts of a flowsynth process, such
// as the HTTP server and the telemetry exporters, with ordered start and
// reverse-order stop.
package component
