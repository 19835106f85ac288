package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/QuentinArnault/periphery/internal/analyze"
	"github.com/QuentinArnault/periphery/internal/config"
	"github.com/QuentinArnault/periphery/internal/index"
	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/mutate"
	"github.com/QuentinArnault/periphery/internal/policy"
	"github.com/QuentinArnault/periphery/internal/reportfmt"
	"github.com/QuentinArnault/periphery/internal/result"
	"github.com/QuentinArnault/periphery/internal/scan"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

var (
	format       string
	policyPath   string
	watchMode    bool
	retainPublic bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "scan a codebase and report unreachable declarations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&format, "format", "terminal", "report format: terminal or json")
	scanCmd.Flags().StringVar(&policyPath, "policy", "", "path to a Mangle retention-policy override file")
	scanCmd.Flags().BoolVar(&watchMode, "watch", false, "re-scan on file changes until interrupted")
	scanCmd.Flags().BoolVar(&retainPublic, "retain-public", true, "retain every public declaration unconditionally")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Scan.Roots = []string{args[0]}
	}
	if policyPath != "" {
		cfg.Policy.Enabled = true
		cfg.Policy.Path = policyPath
	}
	cfg.Retention.RetainPublic = retainPublic
	if watchMode {
		cfg.Scan.Watch = true
	}

	logging.Configure(true, parseLevel(cfg.Logging.Level), enabledCategories(cfg.Logging))

	run := func() (*result.Result, error) {
		return runOnce(cfg)
	}

	res, err := run()
	if err != nil {
		return err
	}
	if err := writeReport(cmd, res); err != nil {
		return err
	}

	if !cfg.Scan.Watch {
		return nil
	}

	cliLogger.Sugar().Infof("watching %v for changes", cfg.Scan.Roots)
	w, err := scan.NewWatcher(cfg.Scan.Roots, cfg.Scan.Extensions)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	w.OnChange = func(path string) {
		cliLogger.Sugar().Infof("change detected: %s, re-scanning", path)
		res, err := run()
		if err != nil {
			cliLogger.Sugar().Errorf("re-scan failed: %v", err)
			return
		}
		if err := writeReport(cmd, res); err != nil {
			cliLogger.Sugar().Errorf("report failed: %v", err)
		}
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// runOnce executes one full Scan -> Index -> Mutate -> Policy ->
// Analyze -> Result pass against cfg.
func runOnce(cfg *config.Config) (*result.Result, error) {
	provider := &scan.TreeSitterProvider{
		Roots:       cfg.Scan.Roots,
		Extensions:  cfg.Scan.Extensions,
		IgnoreGlobs: cfg.Scan.IgnoreGlobs,
	}

	g := symgraph.NewSourceGraph()
	ix := index.New(g)
	if err := ix.Run(provider); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	for _, w := range ix.Warnings {
		cliLogger.Sugar().Warnf("%s: %s", w.Message, w.Record.File)
	}

	mutRes := mutate.Run(g, mutate.Config{
		EntryPointFilenames: cfg.Retention.EntryPointFilenames,
		ExternalCodableUSRs: cfg.Retention.ExternalCodableUSRs,
	})

	var extraSeeds map[string]bool
	if cfg.Policy.Enabled {
		overrideText, err := loadPolicyOverride(cfg.Policy.Path)
		if err != nil {
			return nil, err
		}
		extraSeeds, err = policy.Evaluate(g, policy.Config{
			ExternalTestBaseClassUSRs: cfg.Retention.ExternalTestBaseClassUSRs,
			ExternalCodableUSRs:       cfg.Retention.ExternalCodableUSRs,
			OverridePath:              cfg.Policy.Path,
			OverrideText:              overrideText,
		})
		if err != nil {
			return nil, fmt.Errorf("policy: %w", err)
		}
	}

	analyze.Run(g, mutRes, analyze.Config{
		RetainPublic:                   cfg.Retention.RetainPublic,
		RetainObjcAnnotated:            cfg.Retention.RetainObjcAnnotated,
		RetainAssignOnlyProperties:     cfg.Retention.RetainAssignOnlyProperties,
		RetainUnusedProtocolFuncParams: cfg.Retention.RetainUnusedProtocolFuncParams,
		ExternalTestBaseClassUSRs:      cfg.Retention.ExternalTestBaseClassUSRs,
	}, extraSeeds)

	return result.Build(g), nil
}

func loadPolicyOverride(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read policy override %s: %w", path, err)
	}
	return string(data), nil
}

func writeReport(cmd *cobra.Command, res *result.Result) error {
	switch format {
	case "json":
		return reportfmt.WriteJSON(cmd.OutOrStdout(), res)
	default:
		reportfmt.WriteTerminal(cmd.OutOrStdout(), res)
		return nil
	}
}

func parseLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func enabledCategories(lc config.LoggingConfig) []string {
	if len(lc.Categories) == 0 {
		return nil
	}
	var cats []string
	for name, on := range lc.Categories {
		if on {
			cats = append(cats, name)
		}
	}
	return cats
}
