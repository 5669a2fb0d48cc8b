// Package mcptool exposes the workflow build as an MCP tool.
//
// The build_workflow tool takes the wizard request as a JSON string and
// returns the build response as JSON or YAML text. It is served over the
// streamable HTTP transport:
//
//	srv := mcptool.NewServer(cfg.MCP, svc, log)
//	httpServer.Handle(cfg.MCP.Path+"/", mcptool.Handler(cfg.MCP, srv))
package mcptool
