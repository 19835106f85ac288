// Package analyze implements the Analyzer (C5): the retention
// algorithm that marks declarations reachable from a seed set, then
// reports everything left unmarked (spec.md §4.4).
package analyze

import (
	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/mutate"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// Config carries the retention configuration recognized by spec.md
// §6.2. EntryPointFilenames and ExternalCodableUSRs are consumed
// upstream by the Mutators (mutate.Config); this Config only repeats
// ExternalTestBaseClassUSRs, which the Analyzer itself needs for the
// framework-coupled seed rule.
type Config struct {
	RetainPublic                   bool
	RetainObjcAnnotated             bool
	RetainAssignOnlyProperties      bool
	RetainUnusedProtocolFuncParams bool
	ExternalTestBaseClassUSRs       []string
}

// Run executes the Analyzer against an already-mutated graph: seeds
// retention, propagates it to a fixpoint, determines unused parameters
// and assign-only properties, recording the outcome on the graph's
// declarations for C6 Result to project. extraSeeds is the
// optional Policy-produced set of USRs to seed-retain in addition to
// the built-in rules (spec.md §4.8); pass nil when Policy is disabled.
func Run(g *symgraph.SourceGraph, mutRes *mutate.Result, cfg Config, extraSeeds map[string]bool) {
	log := logging.Get(logging.CategoryAnalyze)
	log.Info("seeding retention")

	a := &analyzer{g: g, mutRes: mutRes, cfg: cfg}
	a.buildReverseIndices()
	a.seed(extraSeeds)
	a.propagate()

	log.Info("analyzing parameters and properties")
	a.analyzeParameters()
	a.analyzeAssignOnlyProperties()

	log.Info("analysis complete")
}
