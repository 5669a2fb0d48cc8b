package mcptool

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kbukum/flowsynth/errors"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/synth"
	"github.com/kbukum/flowsynth/version"
)

// ToolBuildWorkflow is the registered tool name.
const ToolBuildWorkflow = "build_workflow"

// Tool arguments.
const (
	ArgRequest = "request"
	ArgFormat  = "format"
)

// BuildTool handles build_workflow calls.
type BuildTool struct {
	svc *synth.Service
	log *logger.Logger
}

// NewBuildTool creates the tool handler.
func NewBuildTool(svc *synth.Service, log *logger.Logger) *BuildTool {
	if log == nil {
		log = logger.Nop()
	}
	return &BuildTool{svc: svc, log: log.WithComponent("mcp")}
}

// Definition describes the tool to MCP clients.
func (t *BuildTool) Definition() mcp.Tool {
	return mcp.NewTool(ToolBuildWorkflow,
		mcp.WithDescription("Build a .0n workflow from a wizard request. Returns the workflow, "+
			"the build progress lines and the services that need credentials."),
		mcp.WithString(ArgRequest,
			mcp.Required(),
			mcp.Description(`Wizard request as JSON, e.g. {"trigger":{"id":"webhook","label":"Webhook"},"selectedServices":["slack"],"notifications":[]}`),
		),
		mcp.WithString(ArgFormat,
			mcp.Description("Output format: json (default) or yaml"),
			mcp.Enum(synth.FormatJSON, synth.FormatYAML),
		),
	)
}

// Handle runs the build. Request problems are reported as tool errors so
// the calling model can correct them.
func (t *BuildTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := request.GetString(ArgRequest, "")
	if body == "" {
		return mcp.NewToolResultError("request argument is required"), nil
	}
	format := request.GetString(ArgFormat, synth.FormatJSON)
	if format != synth.FormatJSON && format != synth.FormatYAML {
		return mcp.NewToolResultError("format must be json or yaml"), nil
	}

	resp, err := t.svc.BuildJSON(ctx, []byte(body))
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return mcp.NewToolResultError(appErr.Message), nil
		}
		return nil, err
	}

	out, err := synth.Render(resp, format)
	if err != nil {
		return nil, err
	}
	t.log.WithContext(ctx).Debug("tool call completed", logger.Fields(
		"tool", ToolBuildWorkflow,
		logger.FieldOutcome, string(resp.Outcome.Source),
	))
	return mcp.NewToolResultText(string(out)), nil
}

// NewServer creates an MCP server with build_workflow registered.
func NewServer(cfg Config, svc *synth.Service, log *logger.Logger) *server.MCPServer {
	cfg.ApplyDefaults()
	s := server.NewMCPServer(
		cfg.Name,
		version.Get().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tool := NewBuildTool(svc, log)
	s.AddTool(tool.Definition(), tool.Handle)
	return s
}

// Handler serves s over streamable HTTP below cfg.Path. Mount it at
// cfg.Path + "/".
func Handler(cfg Config, s *server.MCPServer) http.Handler {
	cfg.ApplyDefaults()
	return http.StripPrefix(cfg.Path, server.NewStreamableHTTPServer(s))
}
