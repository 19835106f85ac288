package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// runOverrideChains implements M-OverrideChains (spec.md §4.3): a
// method m in class C with modifier "override" is linked to the
// nearest ancestor's m with identical selector (kind + name). The
// chain feeds the Analyzer's override-propagation rules (spec.md
// §4.4.2, §4.4.3).
func runOverrideChains(g *symgraph.SourceGraph, res *Result) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if !d.Kind.IsFunction() || !d.HasModifier("override") {
			continue
		}
		enclosingClass := d.Parent
		if enclosingClass.Kind != symgraph.ParentIsDecl {
			continue
		}
		classID := enclosingClass.Decl
		class := g.Declaration(classID)
		if class == nil || class.Kind != symgraph.KindClass {
			continue
		}

		for _, ancestorID := range g.InheritedTypeReferences(classID) {
			ancestor := g.Declaration(ancestorID)
			if ancestor.Kind != symgraph.KindClass {
				continue
			}
			if baseID, ok := findMember(g, ancestorID, d.Kind, d.Name); ok {
				res.OverrideBase[id] = baseID
				res.OverrideSubs[baseID] = append(res.OverrideSubs[baseID], id)
				break
			}
		}
	}
}

func findMember(g *symgraph.SourceGraph, typeID symgraph.DeclID, kind symgraph.Kind, name string) (symgraph.DeclID, bool) {
	d := g.Declaration(typeID)
	for _, childID := range d.Declarations {
		child := g.Declaration(childID)
		if child.Kind == kind && child.Name == name {
			return childID, true
		}
	}
	return symgraph.NoDecl, false
}
