package analyze

import (
	"github.com/QuentinArnault/periphery/internal/mutate"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// analyzer holds the mutable state the retention fixpoint reads and
// writes, plus the small reverse indices it needs that the graph
// itself does not maintain (spec.md §9: "Worklist fixpoint" — pop,
// mark, enqueue newly-retained neighbors, guarded by isRetained).
type analyzer struct {
	g      *symgraph.SourceGraph
	mutRes *mutate.Result
	cfg    Config

	// witnessTypesOf maps a protocol declaration to every conforming
	// type that has at least one recorded witness of it, the reverse of
	// mutate.Result.ConformanceWitnesses (keyed by type first).
	witnessTypesOf map[symgraph.DeclID][]symgraph.DeclID

	worklist []symgraph.DeclID
}

func (a *analyzer) buildReverseIndices() {
	a.witnessTypesOf = make(map[symgraph.DeclID][]symgraph.DeclID)
	for typeID, byProto := range a.mutRes.ConformanceWitnesses {
		for protoID := range byProto {
			a.witnessTypesOf[protoID] = append(a.witnessTypesOf[protoID], typeID)
		}
	}
}

// retain marks id retained if not already, enqueues it for propagation,
// and reports whether this call changed anything.
func (a *analyzer) retain(id symgraph.DeclID) bool {
	d := a.g.Declaration(id)
	if d == nil || d.IsRetained {
		return false
	}
	d.IsRetained = true
	a.worklist = append(a.worklist, id)
	return true
}

// propagate drains the worklist, applying every propagation rule in
// spec.md §4.4.2 to each newly-retained declaration until no further
// declaration is retained (a monotone fixpoint over a finite lattice).
func (a *analyzer) propagate() {
	for len(a.worklist) > 0 {
		id := a.worklist[len(a.worklist)-1]
		a.worklist = a.worklist[:len(a.worklist)-1]
		a.propagateFrom(id)
	}
}

func (a *analyzer) propagateFrom(id symgraph.DeclID) {
	d := a.g.Declaration(id)
	if d == nil {
		return
	}

	for _, ancestorID := range a.g.Ancestors(id) {
		a.retain(ancestorID)
	}

	for _, refID := range d.References {
		ref := a.g.Reference(refID)
		if ref != nil && ref.Resolved {
			a.retain(ref.Target)
		}
	}

	if d.Kind == symgraph.KindTypealias {
		for _, refID := range d.Related {
			ref := a.g.Reference(refID)
			if ref != nil && ref.Resolved {
				a.retain(ref.Target)
			}
		}
	}

	if d.Kind == symgraph.KindEnum && a.mutRes.RawRepresentableEnums[id] {
		for _, childID := range d.Declarations {
			if a.g.Declaration(childID).Kind == symgraph.KindEnumElement {
				a.retain(childID)
			}
		}
	}

	if baseID, ok := a.mutRes.OverrideBase[id]; ok {
		a.retain(baseID)
	}

	if defaultID, ok := a.mutRes.ProtocolExtensionDefaults[id]; ok {
		a.retain(defaultID)
	}

	if d.Kind == symgraph.KindProtocol {
		for _, typeID := range a.witnessTypesOf[id] {
			for _, memberID := range a.mutRes.ConformanceWitnesses[typeID][id] {
				a.retain(memberID)
			}
		}
	}

	if d.Kind == symgraph.KindClass || d.Kind == symgraph.KindStruct || d.Kind == symgraph.KindEnum {
		a.retainDefaultLifecycleMembers(d)
	}
}

// retainDefaultLifecycleMembers implements seed rule 5 (spec.md
// §4.4.1): a destructor, or an implicit no-argument constructor, of a
// retained type is itself retained — these always run as part of the
// type's lifecycle regardless of whether anything calls them directly.
func (a *analyzer) retainDefaultLifecycleMembers(d *symgraph.Declaration) {
	for _, childID := range d.Declarations {
		child := a.g.Declaration(childID)
		switch {
		case child.Kind == symgraph.KindFunctionDestructor:
			a.retain(childID)
		case child.Kind == symgraph.KindFunctionConstructor && child.IsImplicit && len(parametersOf(a.g, childID)) == 0:
			a.retain(childID)
		}
	}
}
