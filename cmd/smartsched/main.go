package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abatilo/smartsched/internal/config"
	"github.com/abatilo/smartsched/internal/logging"
	"github.com/abatilo/smartsched/internal/menu"
	"github.com/abatilo/smartsched/internal/output"
	"github.com/abatilo/smartsched/internal/storage"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // set by the linker

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the root command's flags.
type rootOptions struct {
	configPath string
	output     string
	jsonOutput bool
	logLevel   string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "smartsched",
		Short:         "An interactive personal task scheduler",
		Long:          "smartsched - record, list, filter, sort, edit and complete tasks from a text menu.\nTasks live in memory and are discarded on exit.",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/smartsched/config.yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format (human, json, yaml)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format (same as --output json)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.MarkFlagsMutuallyExclusive("output", "json")

	cmd.AddCommand(versionCmd())
	return cmd
}

// versionCmd implements 'smartsched version'.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartsched %s\n", version)
		},
	}
}

// loadConfig reads the config file and layers flags and NO_COLOR on top.
func loadConfig(opts rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.jsonOutput {
		cfg.Output = output.FormatJSON
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.noColor || os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}
	return cfg, nil
}

func runMenu(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logOpts := logging.DefaultOptions()
	logOpts.Level = level
	logOpts.Formatter = logging.ParseFormatter(cfg.LogFormat)
	logger := logging.New(cmd.ErrOrStderr(), logOpts)

	formatter, err := output.New(cfg.Output, cfg.Color)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}

	m := menu.New(storage.NewStore(), formatter, logger, cmd.InOrStdin(), cmd.OutOrStdout())
	if err = m.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
