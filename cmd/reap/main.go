// Command reap is the CLI entry point for the dead-code analyzer
// (C12). It wires Config -> Scan -> Indexer -> Mutators -> Policy ->
// Analyzer -> Result -> Report end to end. Grounded on the teacher's
// cmd/nerd/main.go: a cobra root command carrying persistent flags, a
// PersistentPreRunE that builds a zap logger for CLI-facing output,
// and subcommands registered from init().
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	timeout    time.Duration

	cliLogger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reap",
	Short: "reap finds unreachable declarations in a codebase",
	Long: `reap builds a symbol graph from a codebase, seeds retention from
entry points and framework-coupled declarations, propagates retention
to a fixpoint, and reports every declaration left unreached.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		built, err := zapCfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		cliLogger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cliLogger != nil {
			_ = cliLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a reap config file (YAML)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "overall run timeout")

	rootCmd.AddCommand(scanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
