package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbukum/flowsynth/api"
	"github.com/kbukum/flowsynth/auth"
	"github.com/kbukum/flowsynth/component"
	"github.com/kbukum/flowsynth/logger"
	"github.com/kbukum/flowsynth/mcptool"
	"github.com/kbukum/flowsynth/observability"
	"github.com/kbukum/flowsynth/server"
	"github.com/kbukum/flowsynth/util"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the build API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts.cfg, opts.log)
		},
	}
}

func runServe(ctx context.Context, cfg *Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	srv, err := newServer(cfg, log, tel.Metrics)
	if err != nil {
		_ = tel.Shutdown(context.Background())
		return err
	}

	registry := component.NewRegistry(log)
	if err := registry.Register(component.Func("telemetry", nil, tel.Shutdown)); err != nil {
		return err
	}
	if err := registry.Register(srv); err != nil {
		return err
	}

	log.Info("Starting flowsynth", logger.Fields(
		"environment", cfg.Environment,
		"addr", cfg.Server.Addr(),
		"llm_model", cfg.LLM.Model,
		"llm_api_key", util.MaskSecret(cfg.LLM.APIKey, 4),
		"auth", cfg.Auth.Describe(),
		"mcp", cfg.MCP.Enabled,
	))
	if !cfg.LLM.Configured() {
		log.Warn("No LLM API key configured; workflows are synthesized deterministically")
	}

	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return registry.StopAll(context.WithoutCancel(ctx))
}

// newServer wires the service, auth and routes onto a new server.
func newServer(cfg *Config, log *logger.Logger, metrics *observability.Metrics) (*server.Server, error) {
	gen, err := newGenerator(cfg, log, metrics)
	if err != nil {
		return nil, err
	}
	svc := newService(cfg, gen, log, metrics)

	verifier, err := auth.New(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("auth setup: %w", err)
	}

	srv := server.New(cfg.Server, log)
	srv.RegisterDefaultEndpoints(cfg.Name, svc)
	api.NewHandler(svc, log).Register(srv.GinEngine(), verifier)

	if cfg.MCP.Enabled {
		mcpServer := mcptool.NewServer(cfg.MCP, svc, log)
		srv.Handle(cfg.MCP.Path+"/", mcptool.Handler(cfg.MCP, mcpServer))
	}
	return srv, nil
}
