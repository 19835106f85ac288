// Package policy implements Policy (C9): an optional, additive,
// Datalog-backed extension point for the data-driven seed rules in
// spec.md §4.4.1 (items 3, 4, 6). It compiles an embedded default
// Mangle program, plus an optional user override file, against EDB
// facts derived from a symgraph.SourceGraph, and returns the
// `retain_seed(Usr)` predicate as a plain set of USRs. Grounded on the
// teacher's internal/core Mangle kernel (kernel_types.go's
// `//go:embed defaults/*.mg`, kernel_eval.go's parse/analyze/evaluate
// sequence, kernel.go's atomToFact/baseTermToValue result extraction).
package policy

import (
	"embed"
	"fmt"
	"strings"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

//go:embed defaults/*.mg
var defaultProgram embed.FS

const defaultFactLimit = 500000

// Config carries the USR lists the built-in Policy facts are derived
// from; these are the same lists the Analyzer and Mutators otherwise
// read directly from config.RetentionConfig.
type Config struct {
	ExternalTestBaseClassUSRs []string
	ExternalCodableUSRs       []string
	// OverridePath is an optional path to a user-supplied .mg file
	// appended after the embedded default program (spec.md SPEC_FULL §4.8).
	OverridePath string
	OverrideText string
}

// Evaluate loads the default program (plus cfg's override text, if
// any), derives EDB facts from g, runs the Mangle engine to a
// fixpoint, and returns the USRs of every `retain_seed` fact. Disabled
// Policy (cfg zero value, no override) still runs the embedded
// default against the graph's own attribute/inheritance/conformance
// facts, reproducing exactly the built-in seed rules it mirrors — it
// never needs to be skipped for correctness, only for speed.
func Evaluate(g *symgraph.SourceGraph, cfg Config) (map[string]bool, error) {
	log := logging.Get(logging.CategoryPolicy)

	programText, err := loadProgram(cfg)
	if err != nil {
		return nil, err
	}

	parsed, err := parse.Unit(strings.NewReader(programText))
	if err != nil {
		return nil, fmt.Errorf("policy: parse program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(parsed, nil)
	if err != nil {
		return nil, fmt.Errorf("policy: analyze program: %w", err)
	}

	store := factstore.NewSimpleInMemoryStore()
	atoms, err := buildFacts(g, cfg)
	if err != nil {
		return nil, err
	}
	for _, atom := range atoms {
		store.Add(atom)
	}

	log.Info("evaluating policy program (%d base facts)", len(atoms))
	if _, err := engine.EvalProgramWithStats(programInfo, store, engine.WithCreatedFactLimit(defaultFactLimit)); err != nil {
		return nil, fmt.Errorf("policy: evaluate: %w", err)
	}

	seeds := make(map[string]bool)
	for pred := range programInfo.Decls {
		if pred.Symbol != "retain_seed" {
			continue
		}
		_ = store.GetFacts(ast.NewQuery(pred), func(a ast.Atom) error {
			if len(a.Args) != 1 {
				return nil
			}
			if c, ok := a.Args[0].(ast.Constant); ok {
				seeds[c.Symbol] = true
			}
			return nil
		})
	}
	log.Info("policy yielded %d seed usrs", len(seeds))
	return seeds, nil
}

func loadProgram(cfg Config) (string, error) {
	data, err := defaultProgram.ReadFile("defaults/retention.mg")
	if err != nil {
		return "", fmt.Errorf("policy: read embedded default program: %w", err)
	}
	var sb strings.Builder
	sb.Write(data)
	if cfg.OverrideText != "" {
		sb.WriteString("\n")
		sb.WriteString(cfg.OverrideText)
	}
	return sb.String(), nil
}

// buildFacts derives the EDB facts documented in SPEC_FULL.md §4.8
// from the SourceGraph and the configured USR lists.
func buildFacts(g *symgraph.SourceGraph, cfg Config) ([]ast.Atom, error) {
	var atoms []ast.Atom
	add := func(predicate string, args ...ast.BaseTerm) error {
		atoms = append(atoms, ast.NewAtom(predicate, args...))
		return nil
	}

	for _, usr := range cfg.ExternalTestBaseClassUSRs {
		if err := add("external_base_class", ast.String(usr)); err != nil {
			return nil, err
		}
	}
	for _, usr := range cfg.ExternalCodableUSRs {
		if err := add("external_codable_protocol", ast.String(usr)); err != nil {
			return nil, err
		}
	}

	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.USR == "" {
			continue
		}
		for attr := range d.Attributes {
			if err := add("has_attribute", ast.String(d.USR), ast.String(attr)); err != nil {
				return nil, err
			}
		}
		for _, refID := range d.Related {
			ref := g.Reference(refID)
			if ref == nil {
				continue
			}
			targetUSR := ref.USR
			if ref.Resolved {
				target := g.Declaration(ref.Target)
				if target == nil {
					continue
				}
				targetUSR = target.USR
			}
			// Unresolved related edges still name a USR (an external
			// base class or protocol) even though no in-graph
			// Declaration backs them; Kind still tells class from
			// protocol in that case.
			switch ref.Kind {
			case symgraph.KindClass:
				if err := add("inherits", ast.String(d.USR), ast.String(targetUSR)); err != nil {
					return nil, err
				}
			case symgraph.KindProtocol:
				if err := add("conforms", ast.String(d.USR), ast.String(targetUSR)); err != nil {
					return nil, err
				}
			}
		}
	}

	return atoms, nil
}
