package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/flowsynth/logger"
)

type rootOptions struct {
	configFile string
	logLevel   string

	cfg *Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Synthesize workflow definitions from wizard selections",
		Long: `flowsynth turns a trigger, a set of services and optional notifications
into a workflow definition, its build narration and the credentials the
user has to connect.

With an Anthropic API key configured the definition is generated by the
model and checked structurally. Without one, or when generation fails,
the deterministic synthesizer produces it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: search ./cmd/flowsynth, ./config, .)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	cmd.AddCommand(
		newServeCmd(opts),
		newBuildCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the configuration and builds the logger. Commands other than
// serve write their output to stdout, so their logs go to stderr.
func (o *rootOptions) load(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	cfg, err := loadConfig(o.configFile)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}
	o.cfg = cfg
	if cmd.Name() == "serve" {
		o.log = logger.Init(cfg.Logging, cfg.Name)
	} else {
		o.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())
	}
	return nil
}
