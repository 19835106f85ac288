package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// runExternalConformance implements M-ExternalConformance (spec.md
// §4.3): for any declaration that conforms to a protocol declared
// outside the analyzed modules (an unresolved protocol usr), mark
// every member that would plausibly be a protocol witness as retained
// — the external protocol's requirements cannot be enumerated, so any
// member visible enough to satisfy a public protocol requirement (at
// least internal) is assumed required.
func runExternalConformance(g *symgraph.SourceGraph, res *Result) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind != symgraph.KindClass && d.Kind != symgraph.KindStruct && d.Kind != symgraph.KindEnum {
			continue
		}
		if len(unresolvedProtocolConformances(g, id)) == 0 {
			continue
		}
		for _, childID := range d.Declarations {
			child := g.Declaration(childID)
			if child.Access.Value < symgraph.AccessInternal {
				continue
			}
			child.IsRetained = true
			if child.Kind.IsFunction() {
				for _, paramID := range child.Declarations {
					if g.Declaration(paramID).Kind == symgraph.KindVarParameter {
						res.ForeignWitnessParams[paramID] = true
					}
				}
			}
		}
	}
}
