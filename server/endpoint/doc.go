// Package endpoint provides the operational gin handlers: health and version.
package endpoint
