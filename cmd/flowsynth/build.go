package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/synth"
	"github.com/kbukum/flowsynth/workflow"
)

type buildOptions struct {
	output     string
	frequency  string
	customCron string
	offline    bool
}

func newBuildCmd(root *rootOptions) *cobra.Command {
	opts := &buildOptions{}
	cmd := &cobra.Command{
		Use:   "build [request-file|-]",
		Short: "Build one workflow from a request file or stdin",
		Long: `build reads a build request as JSON, or as YAML when the file ends in
.yaml or .yml, and writes the response to stdout. Without an argument, or
with "-", the request is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, root, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", synth.FormatJSON, "output format: json or yaml")
	f.StringVar(&opts.frequency, "frequency", "", "override the schedule with a preset: realtime, hourly, daily, weekly or custom")
	f.StringVar(&opts.customCron, "custom-cron", "", "cron expression for --frequency custom")
	f.BoolVar(&opts.offline, "offline", false, "skip the model and synthesize deterministically")
	return cmd
}

func runBuild(cmd *cobra.Command, root *rootOptions, opts *buildOptions, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}
	body, err := readRequest(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	req, err := workflow.DecodeRequest(body)
	if err != nil {
		return err
	}
	if opts.frequency != "" {
		freq, err := workflow.FrequencyFromPreset(opts.frequency, opts.customCron)
		if err != nil {
			return err
		}
		req.Frequency = freq
	}

	ctx := cmd.Context()
	tel, err := observability.Setup(ctx, root.cfg.Observability)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() { _ = tel.Shutdown(ctx) }()

	var gen synth.Generator
	if !opts.offline {
		if gen, err = newGenerator(root.cfg, root.log, tel.Metrics); err != nil {
			return err
		}
	}
	svc := newService(root.cfg, gen, root.log, tel.Metrics)

	resp, err := svc.Build(ctx, req)
	if err != nil {
		return err
	}
	out, err := synth.Render(resp, opts.output)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// readRequest returns the request at path as JSON. YAML files are converted.
func readRequest(stdin io.Reader, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	}
	return data, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml request: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting yaml request: %w", err)
	}
	return out, nil
}
