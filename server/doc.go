// Package server provides the flowsynth HTTP server: a gin engine mounted on
// a ServeMux and wrapped for HTTP/2 cleartext, so REST routes and other
// http.Handler mounts such as the MCP endpoint share one port.
//
// # Middleware
//
// Every request passes through the chain in server/middleware, outermost
// first:
//
//   - Recovery: panics become 500 responses
//   - RequestID: X-Request-Id propagation, also stored for logging
//   - RequestLogger: method, path, status and duration
//   - CORS: origin allow list and preflight
//   - BodySizeLimit: request body cap
//
// Auth is applied per route group.
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health and /version (server/endpoint).
package server
