// Package cmd defines and implements the CLI commands for the gpuradar executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gpuradar/gpuradar/internal/config"
	"github.com/gpuradar/gpuradar/internal/logging"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpuradar",
		Short: "GPU marketplace price scanner",
		Long: `gpuradar scans second-hand marketplace listings for graphics cards,
normalizes the model names it finds, validates them against a known-model
catalog and filters out mining rigs, cooling parts, defective cards and
statistical price outliers. The surviving observations form a clean
per-model price dataset.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); defaults apply when omitted")

	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newProbeCmd())

	return cmd
}

// loadConfig reads configuration and builds the logger used by all commands.
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
