// Package config loads and validates run configuration for the
// analyzer (C7): a YAML-tagged struct tree with a DefaultConfig
// constructor and environment-variable overrides, grounded on the
// teacher's internal/config package (one file per sub-config, a
// top-level Config aggregating them, applyEnvOverrides as a method on
// *Config).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration tree for a `reap` run. No part of
// the analysis path reads process-global state: the CLI constructs
// exactly one Config and passes the parts each stage needs explicitly
// to mutate.Run, policy.Evaluate and analyze.Run; the Indexer takes no
// configuration (spec.md §9, "Global mutable configuration").
type Config struct {
	Retention RetentionConfig `yaml:"retention"`
	Scan      ScanConfig      `yaml:"scan"`
	Logging   LoggingConfig   `yaml:"logging"`
	Policy    PolicyConfig    `yaml:"policy"`
}

// RetentionConfig maps 1:1 onto spec.md §6.2's configuration table.
type RetentionConfig struct {
	RetainPublic                   bool     `yaml:"retain_public"`
	RetainObjcAnnotated             bool     `yaml:"retain_objc_annotated"`
	RetainAssignOnlyProperties      bool     `yaml:"retain_assign_only_properties"`
	RetainUnusedProtocolFuncParams bool     `yaml:"retain_unused_protocol_func_params"`
	EntryPointFilenames             []string `yaml:"entry_point_filenames"`
	ExternalTestBaseClassUSRs       []string `yaml:"external_test_base_class_usrs"`
	ExternalCodableUSRs             []string `yaml:"external_codable_usrs"`
}

// ScanConfig configures the reference IndexProvider (C10).
type ScanConfig struct {
	Roots            []string `yaml:"roots"`
	Extensions       []string `yaml:"extensions"`
	IgnoreGlobs      []string `yaml:"ignore_globs"`
	Watch            bool     `yaml:"watch"`
	CachePath        string   `yaml:"cache_path"`
	ParallelWorkers  int      `yaml:"parallel_workers"`
}

// PolicyConfig configures the optional Mangle extension point (C9).
type PolicyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the configuration a bare `reap scan .` run
// uses absent a config file, mirroring the teacher's DefaultConfig()
// idiom (internal/config/config.go).
func DefaultConfig() *Config {
	return &Config{
		Retention: RetentionConfig{
			RetainPublic:                   true,
			RetainObjcAnnotated:             true,
			RetainAssignOnlyProperties:      false,
			RetainUnusedProtocolFuncParams: false,
			// main.swift is the target language's conventional entry
			// point; main.go covers the bundled TreeSitterProvider's
			// own source (scan.TreeSitterProvider parses Go).
			EntryPointFilenames:             []string{"main.swift", "main.go"},
		},
		Scan: ScanConfig{
			Roots:           []string{"."},
			Extensions:      []string{".go"},
			Watch:           false,
			CachePath:       ".reap/cache.sqlite",
			ParallelWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:      "info",
			JSON:       false,
			Categories: nil,
		},
		Policy: PolicyConfig{
			Enabled: true,
		},
	}
}

// Load reads a YAML config file at path, layering it over
// DefaultConfig() so a partial file only overrides what it mentions,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &Error{Op: "read", Path: path, Err: err}
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &Error{Op: "parse", Path: path, Err: err}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers a small set of environment variables over
// the loaded config, grounded on the teacher's
// internal/config/env_override_test.go precedence-chain idiom (later
// checks win over earlier ones when both are set).
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("REAP_RETAIN_PUBLIC"); v != "" {
		c.Retention.RetainPublic = v == "true" || v == "1"
	}
	if v := os.Getenv("REAP_SCAN_ROOT"); v != "" {
		c.Scan.Roots = []string{v}
	}
	if v := os.Getenv("REAP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("REAP_POLICY_PATH"); v != "" {
		c.Policy.Path = v
		c.Policy.Enabled = true
	}
}

// Validate checks cross-field invariants the YAML decoder cannot
// express, returning a ConfigurationError (spec.md §7) on violation.
func (c *Config) Validate() error {
	for _, f := range c.Retention.EntryPointFilenames {
		if f == "" {
			return &Error{Op: "validate", Path: "retention.entry_point_filenames", Err: fmt.Errorf("empty entry point filename")}
		}
	}
	if len(c.Scan.Roots) == 0 {
		return &Error{Op: "validate", Path: "scan.roots", Err: fmt.Errorf("at least one scan root is required")}
	}
	if c.Scan.ParallelWorkers < 0 {
		return &Error{Op: "validate", Path: "scan.parallel_workers", Err: fmt.Errorf("parallel_workers must be >= 0")}
	}
	if c.Policy.Enabled && c.Policy.Path != "" {
		if _, err := os.Stat(c.Policy.Path); err != nil {
			return &Error{Op: "validate", Path: c.Policy.Path, Err: fmt.Errorf("policy file not found: %w", err)}
		}
	}
	return nil
}
