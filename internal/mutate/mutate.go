// Package mutate implements the Mutators (C4): small, ordered,
// idempotent graph transformations that run once after indexing and
// before the Analyzer's retention pass (spec.md §4.3).
package mutate

import (
	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// Config carries the subset of run configuration the Mutators need.
type Config struct {
	// EntryPointFilenames are file basenames whose top-level
	// declarations are treated as process roots (M-EntryPoint).
	EntryPointFilenames []string

	// ExternalCodableUSRs are foreign codability protocol USRs that
	// trigger CodingKeys retention in M-ImplicitMembers.
	ExternalCodableUSRs []string
}

// Result carries cross-mutator facts the Analyzer needs but that are
// cheapest to compute once, during the single graph walk each mutator
// already performs, rather than re-derived from scratch in C5.
type Result struct {
	// OverrideBase maps an override method to the nearest ancestor
	// method it overrides (M-OverrideChains).
	OverrideBase map[symgraph.DeclID]symgraph.DeclID
	// OverrideSubs is OverrideBase inverted: base method -> every
	// direct override of it.
	OverrideSubs map[symgraph.DeclID][]symgraph.DeclID

	// ConformanceWitnesses maps a conforming type to the member
	// declarations that witness a requirement of one of its *resolved*
	// (in-graph) protocols, keyed by the protocol declaration.
	ConformanceWitnesses map[symgraph.DeclID]map[symgraph.DeclID][]symgraph.DeclID

	// ProtocolExtensionDefaults maps a protocol requirement to the
	// default-implementation declaration provided by a protocol
	// extension of the same protocol, if any.
	ProtocolExtensionDefaults map[symgraph.DeclID]symgraph.DeclID

	// RequirementWitnesses maps a protocol requirement declaration to
	// every conforming type's member that witnesses it, across every
	// conforming type — the per-requirement view of ConformanceWitnesses,
	// needed to group a requirement's parameters with every witness's
	// corresponding parameter for unused-parameter analysis (spec.md
	// §4.4.3).
	RequirementWitnesses map[symgraph.DeclID][]symgraph.DeclID

	// ForeignWitnessParams is the set of parameter declarations that
	// belong to a method witnessing a *foreign* (out-of-module)
	// protocol requirement — every such parameter is retained
	// unconditionally (spec.md §4.4.3).
	ForeignWitnessParams map[symgraph.DeclID]bool

	// RawRepresentableEnums is the set of enum declarations considered
	// raw-representable (spec.md §4.4.2): one of their own `related`
	// edges names a built-in raw-value protocol/type directly.
	RawRepresentableEnums map[symgraph.DeclID]bool
}

func newResult() *Result {
	return &Result{
		OverrideBase:              make(map[symgraph.DeclID]symgraph.DeclID),
		OverrideSubs:              make(map[symgraph.DeclID][]symgraph.DeclID),
		ConformanceWitnesses:      make(map[symgraph.DeclID]map[symgraph.DeclID][]symgraph.DeclID),
		ProtocolExtensionDefaults: make(map[symgraph.DeclID]symgraph.DeclID),
		RequirementWitnesses:      make(map[symgraph.DeclID][]symgraph.DeclID),
		ForeignWitnessParams:      make(map[symgraph.DeclID]bool),
		RawRepresentableEnums:     make(map[symgraph.DeclID]bool),
	}
}

// Run executes every mutator in a fixed order (spec.md §4.3): index
// wiring, M-Comment, M-Accessibility, M-ImplicitMembers,
// M-ExternalConformance, M-OverrideChains, the conformance-witness and
// raw-representable passes, then M-EntryPoint. Each mutator
// is idempotent; running Run twice in a row is a no-op on the second
// call (spec.md §8, round-trip property).
func Run(g *symgraph.SourceGraph, cfg Config) *Result {
	log := logging.Get(logging.CategoryMutate)
	log.Info("running mutators")

	wireIndices(g)
	runComment(g)
	runAccessibility(g)
	runImplicitMembers(g, cfg)

	res := newResult()
	runExternalConformance(g, res)
	runOverrideChains(g, res)
	runConformanceWitnesses(g, res)
	runRawRepresentable(g, res)
	runEntryPoint(g, cfg)

	log.Info("mutators complete")
	return res
}
