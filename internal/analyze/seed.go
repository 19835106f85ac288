package analyze

import "github.com/QuentinArnault/periphery/internal/symgraph"

// seed implements spec.md §4.4.1: walks every declaration once, marking
// retained whichever already qualifies as a seed. Rule 6 and the
// entry-point-file part of rule 1 are already applied by the Mutators
// (M-ExternalConformance, M-EntryPoint) before the Analyzer ever runs,
// so a declaration's IsRetained flag may already be true here; seed
// adds the `@main` part of rule 1 and the remaining rules. extraSeeds is the
// optional Policy-derived USR set (spec.md §4.8).
func (a *analyzer) seed(extraSeeds map[string]bool) {
	testBaseUSRs := toSet(a.cfg.ExternalTestBaseClassUSRs)

	for _, id := range a.g.AllDeclarations() {
		d := a.g.Declaration(id)

		if d.IsRetained {
			a.worklist = append(a.worklist, id)
			continue
		}

		if d.HasAttribute("main") && d.Parent.Kind == symgraph.ParentNone {
			a.retain(id)
			continue
		}

		if a.cfg.RetainPublic && (d.Access.Value == symgraph.AccessPublic || d.Access.Value == symgraph.AccessOpen) {
			a.retain(id)
			continue
		}

		if a.cfg.RetainObjcAnnotated && a.isObjcRetained(id, d) {
			a.retain(id)
			continue
		}

		if len(testBaseUSRs) > 0 && a.isTestHarnessMember(id, d, testBaseUSRs) {
			a.retain(id)
			continue
		}

		if isPropertyWrapperSynthesizedMember(a.g, id, d) {
			a.retain(id)
			continue
		}

		if extraSeeds[d.USR] {
			a.retain(id)
			continue
		}
	}

	for paramID := range a.mutRes.ForeignWitnessParams {
		a.retain(paramID)
	}
}

// isObjcRetained implements seed rule 3: a declaration carrying @objc
// directly, or a member of a type carrying @objcMembers, is retained.
// A member of a plain @objc type is not retained unless it itself
// carries @objc.
func (a *analyzer) isObjcRetained(id symgraph.DeclID, d *symgraph.Declaration) bool {
	if d.HasAttribute("objc") || d.HasAttribute("objcMembers") {
		return true
	}
	if d.Parent.Kind != symgraph.ParentIsDecl {
		return false
	}
	parent := a.g.Declaration(d.Parent.Decl)
	return parent != nil && parent.HasAttribute("objcMembers")
}

// isTestHarnessMember implements seed rule 4: a class transitively
// inheriting from one of the configured external test-harness base
// classes, or one of its test* / setUp / tearDown methods.
func (a *analyzer) isTestHarnessMember(id symgraph.DeclID, d *symgraph.Declaration, testBaseUSRs map[string]bool) bool {
	if d.Kind == symgraph.KindClass {
		return inheritsFromForeignBase(a.g, id, testBaseUSRs)
	}
	if !d.Kind.IsFunction() || d.Parent.Kind != symgraph.ParentIsDecl {
		return false
	}
	owner := a.g.Declaration(d.Parent.Decl)
	if owner == nil || owner.Kind != symgraph.KindClass || !inheritsFromForeignBase(a.g, d.Parent.Decl, testBaseUSRs) {
		return false
	}
	return isTestMethodName(d.Name)
}

func isTestMethodName(name string) bool {
	if name == "setUp" || name == "tearDown" {
		return true
	}
	return len(name) >= 4 && name[:4] == "test"
}

// inheritsFromForeignBase reports whether classID's resolved ancestor
// chain (including itself) carries an unresolved `related` reference
// naming one of usrSet's foreign base classes.
func inheritsFromForeignBase(g *symgraph.SourceGraph, classID symgraph.DeclID, usrSet map[string]bool) bool {
	chain := append([]symgraph.DeclID{classID}, g.InheritedTypeReferences(classID)...)
	for _, cid := range chain {
		d := g.Declaration(cid)
		if d == nil {
			continue
		}
		for _, refID := range d.Related {
			ref := g.Reference(refID)
			if ref != nil && !ref.Resolved && usrSet[ref.USR] {
				return true
			}
		}
	}
	return false
}

// isPropertyWrapperSynthesizedMember implements seed rule 7: the
// synthesized accessors of a type carrying @propertyWrapper.
func isPropertyWrapperSynthesizedMember(g *symgraph.SourceGraph, id symgraph.DeclID, d *symgraph.Declaration) bool {
	if d.Parent.Kind != symgraph.ParentIsDecl {
		return false
	}
	owner := g.Declaration(d.Parent.Decl)
	if owner == nil || !owner.HasAttribute("propertyWrapper") {
		return false
	}
	switch d.Kind {
	case symgraph.KindVarInstance:
		return d.Name == "wrappedValue" || d.Name == "projectedValue"
	case symgraph.KindFunctionConstructor:
		return d.Name == "init(wrappedValue:)"
	default:
		return false
	}
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, s := range items {
		out[s] = true
	}
	return out
}
