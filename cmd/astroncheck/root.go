package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"astron-hq/astroncheck/pkg/cli"
	"astron-hq/astroncheck/pkg/config"
	"astron-hq/astroncheck/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "astroncheck",
	Short: "astroncheck - configuration validator for Astron clusters",
	Long: `astroncheck validates the YAML configuration of Astron server clusters
before it is deployed.

Each document is checked against a closed-world schema:
  - unknown attributes are rejected
  - required attributes must be present
  - channels must be positive and outside the reserved range
  - addresses, file paths and enums are checked per role type

Settings for astroncheck itself (reserved channel range, logging, metrics,
tracing, watch behaviour) are read from --config and ASTRONCHECK_*
environment variables.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
}

// Execute runs the root command and exits with the matching status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "astroncheck settings file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initRuntime loads settings and installs the default logger.
func initRuntime(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	cfg := config.GetConfig()

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	_, err := logging.Setup(logging.Config{
		Level:     level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError("logging", err.Error())
	}
	return nil
}
