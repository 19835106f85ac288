// Package result implements Result (C6): the final sorted projection
// of an analyzed SourceGraph into the three reportable buckets spec.md
// §4.5 and §6.3 describe. Grounded on the teacher's
// internal/types/extract.go sorted-projection-of-a-fact-store idiom,
// generalized here from fact tuples to graph declarations.
package result

import (
	"sort"

	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// Reason classifies why an Item is being reported, per spec.md §6.3.
type Reason string

const (
	ReasonUnused          Reason = "unused"
	ReasonAssignOnly      Reason = "assignOnly"
	ReasonUnusedParameter Reason = "unusedParameter"
)

// Item is one reportable tuple: (file, line, column, kind, name, reason).
type Item struct {
	Location symgraph.Location
	Kind     symgraph.Kind
	Name     string
	USR      string
	Reason   Reason
}

// Result is the core's final output (C6).
type Result struct {
	UnreferencedDeclarations []Item
	UnusedParameters         []Item
	AssignOnlyProperties     []Item
}

// Build projects every declaration of an analyzed graph into a Result.
// The graph must already have had mutate.Run and analyze.Run applied;
// Build only reads IsRetained/IsAssignOnly/UnusedParameters/ignored
// state, it performs no further graph mutation.
func Build(g *symgraph.SourceGraph) *Result {
	r := &Result{}

	for _, id := range g.AllDeclarations() {
		if g.IsIgnored(id) {
			continue
		}
		d := g.Declaration(id)

		switch {
		case d.IsAssignOnly:
			r.AssignOnlyProperties = append(r.AssignOnlyProperties, itemOf(d, ReasonAssignOnly))
		case d.Kind == symgraph.KindVarParameter:
			// Parameters are never reported here: a retained owner's
			// unused parameters are projected below from
			// d.UnusedParameters, and a dead owner's parameters are
			// reported as ignored, not unused (spec.md §4.4.3).
		case !d.IsRetained:
			r.UnreferencedDeclarations = append(r.UnreferencedDeclarations, itemOf(d, ReasonUnused))
		}

		if d.IsRetained {
			for _, paramID := range d.UnusedParameters {
				if g.IsIgnored(paramID) {
					continue
				}
				param := g.Declaration(paramID)
				if param == nil {
					continue
				}
				r.UnusedParameters = append(r.UnusedParameters, itemOf(param, ReasonUnusedParameter))
			}
		}
	}

	sortItems(r.UnreferencedDeclarations)
	sortItems(r.UnusedParameters)
	sortItems(r.AssignOnlyProperties)

	return r
}

func itemOf(d *symgraph.Declaration, reason Reason) Item {
	return Item{Location: d.Loc, Kind: d.Kind, Name: d.Name, USR: d.USR, Reason: reason}
}

// sortItems orders by (file, line, column, kind, name), spec.md §4.4.5.
func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Location != b.Location {
			return a.Location.Less(b.Location)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Name < b.Name
	})
}
