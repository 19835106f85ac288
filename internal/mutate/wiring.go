package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// wireIndices populates SourceGraph's byExtendedUsr and conformances
// secondary indices from the `related` edges the Indexer already
// attached. Spec.md §4.1 assigns maintenance of these indices jointly
// to the Indexer and the Mutators; this repository does it here, as
// the first step of the mutator pipeline, so every mutator after it
// can use SourceGraph.ExtensionsOf / ConformingTypes directly.
func wireIndices(g *symgraph.SourceGraph) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind.IsExtension() {
			if extended := extendedTypeUSR(g, id); extended != "" {
				g.IndexExtension(extended, id)
			}
			continue
		}
		if d.Kind != symgraph.KindClass && d.Kind != symgraph.KindStruct && d.Kind != symgraph.KindEnum {
			continue
		}
		for _, protoID := range resolvedProtocolConformances(g, id) {
			proto := g.Declaration(protoID)
			g.IndexConformance(proto.USR, id)
		}
	}
}

// extendedTypeUSR returns the USR of the type an extension declares
// itself over, read off its first related edge (the extended-type
// relation an IndexProvider reports for an extension declaration).
func extendedTypeUSR(g *symgraph.SourceGraph, extID symgraph.DeclID) string {
	d := g.Declaration(extID)
	for _, refID := range d.Related {
		ref := g.Reference(refID)
		if ref == nil {
			continue
		}
		if ref.Kind.IsType() && !ref.Kind.IsExtension() {
			return ref.USR
		}
	}
	return ""
}

// resolvedProtocolConformances returns every distinct protocol
// declaration id that id's `related` edges resolve to in-graph
// (unresolved/foreign conformances are handled separately by
// M-ExternalConformance).
func resolvedProtocolConformances(g *symgraph.SourceGraph, id symgraph.DeclID) []symgraph.DeclID {
	d := g.Declaration(id)
	var out []symgraph.DeclID
	seen := make(map[symgraph.DeclID]bool)
	for _, refID := range d.Related {
		ref := g.Reference(refID)
		if ref == nil || !ref.Resolved || ref.Kind != symgraph.KindProtocol || seen[ref.Target] {
			continue
		}
		seen[ref.Target] = true
		out = append(out, ref.Target)
	}
	return out
}

// unresolvedProtocolConformances returns the protocol USRs id's
// `related` edges name but that could not be resolved in-graph —
// conformance to a protocol declared outside the analyzed modules.
func unresolvedProtocolConformances(g *symgraph.SourceGraph, id symgraph.DeclID) []string {
	d := g.Declaration(id)
	var out []string
	for _, refID := range d.Related {
		ref := g.Reference(refID)
		if ref == nil || ref.Resolved || ref.Kind != symgraph.KindProtocol {
			continue
		}
		out = append(out, ref.USR)
	}
	return out
}
