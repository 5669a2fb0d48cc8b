package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/flowsynth/api"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/workflow"
)

const requestJSON = `{
  "trigger": {"id": "webhook", "label": "Incoming Webhook"},
  "selectedServices": ["openai", "slack"],
  "notifications": ["email"]
}`

const requestYAML = `trigger:
  id: schedule
  label: Schedule
selectedServices:
  - github
frequency:
  type: cron
  cron: "0 9 * * 1"
`

type buildOutput struct {
	Workflow struct {
		Version   string `json:"0n"`
		Frequency string `json:"frequency"`
		Schedule  *struct {
			Cron string `json:"cron"`
		} `json:"schedule"`
		Steps []map[string]any `json:"steps"`
	} `json:"workflow"`
	BuildSteps      []string `json:"buildSteps"`
	CredentialQueue []string `json:"credentialQueue"`
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("FLOWSYNTH_LLM_API_KEY", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand_Stdin(t *testing.T) {
	out, err := execute(t, requestJSON, "build", "--offline")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var resp buildOutput
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if resp.Workflow.Version != workflow.FormatVersion {
		t.Errorf("version = %q", resp.Workflow.Version)
	}
	if len(resp.Workflow.Steps) != 3 {
		t.Errorf("len(steps) = %d, want 3", len(resp.Workflow.Steps))
	}
	if got := strings.Join(resp.CredentialQueue, ","); got != "openai,slack" {
		t.Errorf("credentialQueue = %q", got)
	}
	if len(resp.BuildSteps) != 8 {
		t.Errorf("len(buildSteps) = %d, want 8", len(resp.BuildSteps))
	}
}

func TestBuildCommand_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	if err := os.WriteFile(path, []byte(requestYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "build", "--offline", path)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var resp buildOutput
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if resp.Workflow.Frequency != "cron" {
		t.Errorf("frequency = %q, want cron", resp.Workflow.Frequency)
	}
	if resp.Workflow.Schedule == nil || resp.Workflow.Schedule.Cron != "0 9 * * 1" {
		t.Errorf("schedule = %+v", resp.Workflow.Schedule)
	}
}

func TestBuildCommand_FrequencyPreset(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		frequency string
		cron      string
	}{
		{"hourly", []string{"--frequency", "hourly"}, "cron", "0 * * * *"},
		{"realtime", []string{"--frequency", "realtime"}, "realtime", ""},
		{"custom", []string{"--frequency", "custom", "--custom-cron", "*/5 * * * *"}, "cron", "*/5 * * * *"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"build", "--offline"}, tt.args...)
			out, err := execute(t, requestJSON, args...)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			var resp buildOutput
			if err := json.Unmarshal([]byte(out), &resp); err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if resp.Workflow.Frequency != tt.frequency {
				t.Errorf("frequency = %q, want %q", resp.Workflow.Frequency, tt.frequency)
			}
			cron := ""
			if resp.Workflow.Schedule != nil {
				cron = resp.Workflow.Schedule.Cron
			}
			if cron != tt.cron {
				t.Errorf("cron = %q, want %q", cron, tt.cron)
			}
		})
	}
}

func TestBuildCommand_YAMLOutput(t *testing.T) {
	out, err := execute(t, requestJSON, "build", "--offline", "-o", "yaml")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(out, "workflow:\n") {
		t.Errorf("output does not start with workflow key:\n%s", out)
	}
	if !strings.Contains(out, "credentialQueue:\n    - openai\n    - slack\n") {
		t.Errorf("credential queue not rendered as a block list:\n%s", out)
	}
}

func TestBuildCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"empty body", "", nil, workflow.MsgInvalidJSON},
		{"no trigger", `{"selectedServices":["slack"]}`, nil, workflow.MsgTriggerRequired},
		{"no services", `{"trigger":{"id":"webhook"}}`, nil, workflow.MsgServiceRequired},
		{"unknown preset", requestJSON, []string{"--frequency", "monthly"}, "unknown frequency preset"},
		{"custom without cron", requestJSON, []string{"--frequency", "custom"}, "requires a cron expression"},
		{"bad format", requestJSON, []string{"-o", "toml"}, "unsupported format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"build", "--offline"}, tt.args...)
			_, err := execute(t, tt.stdin, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "flowsynth ") {
		t.Errorf("output = %q", out)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-key")
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Name != serviceName {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.MCP.Path != "/mcp" {
		t.Errorf("mcp path = %q", cfg.MCP.Path)
	}
	if !cfg.LLM.Configured() || cfg.LLM.APIKey != "sk-test-key" {
		t.Errorf("api key not picked up from ANTHROPIC_API_KEY")
	}
	if cfg.Observability.ServiceName != serviceName {
		t.Errorf("observability service name = %q", cfg.Observability.ServiceName)
	}
}

func TestNewGenerator_WithoutKey(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	gen, err := newGenerator(cfg, logger.Nop(), nil)
	if err != nil {
		t.Fatalf("newGenerator: %v", err)
	}
	if gen != nil {
		t.Errorf("generator = %v, want nil without an API key", gen)
	}
}

func TestNewServer_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &Config{}
	cfg.MCP.Enabled = true
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	srv, err := newServer(cfg, logger.Nop(), nil)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	h := srv.Handler()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodGet, api.OptionsPath, "", http.StatusOK},
		{http.MethodPost, api.BuildPath, requestJSON, http.StatusOK},
		{http.MethodPost, api.BuildPath, `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", rr.Code, tt.want, rr.Body)
			}
		})
	}
}
