// Package logger provides structured logging for flowsynth using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("synth")
//	log.Info("workflow built", logger.Fields("outcome", "provider"))
package logger
