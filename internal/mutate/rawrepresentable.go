package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// builtinRawValueNames are the raw-value types/protocols that make an
// enum raw-representable out of the box (spec.md §4.4.2): an enum
// conforming to one of these exposes a `rawValue` member and an
// `init(rawValue:)` initializer that external callers may construct
// the enum through even when no in-graph reference ever names them
// directly.
var builtinRawValueNames = map[string]bool{
	"String":           true,
	"Int":              true,
	"Character":        true,
	"Float":            true,
	"Double":           true,
	"RawRepresentable": true,
}

// runRawRepresentable implements the raw-representable-enum portion of
// spec.md §4.4.2: records every enum whose `related` edges name a
// built-in raw-value type or protocol, so the Analyzer retains every
// one of the enum's cases whenever the enum itself is retained.
func runRawRepresentable(g *symgraph.SourceGraph, res *Result) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if d.Kind != symgraph.KindEnum {
			continue
		}
		for _, refID := range d.Related {
			ref := g.Reference(refID)
			if ref == nil {
				continue
			}
			if builtinRawValueNames[ref.Name] {
				res.RawRepresentableEnums[id] = true
				break
			}
		}
	}
}
