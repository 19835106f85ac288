package analyze

import "github.com/QuentinArnault/periphery/internal/symgraph"

// analyzeAssignOnlyProperties implements spec.md §4.4.4: a stored
// instance property every one of whose references is a write, backed
// by a syntactically trivial initializer, is reported separately from
// plain unused declarations rather than retained — unless
// RetainAssignOnlyProperties suppresses the rule, or the initializer
// is non-trivial, in which case the property stays retained because
// removing it could change program behavior.
func (a *analyzer) analyzeAssignOnlyProperties() {
	targets := a.referencesByTarget()

	for _, id := range a.g.AllDeclarations() {
		d := a.g.Declaration(id)
		if d.Kind != symgraph.KindVarInstance || d.IsRetained {
			continue
		}
		if d.Parent.Kind != symgraph.ParentIsDecl {
			continue
		}
		owner := a.g.Declaration(d.Parent.Decl)
		if owner == nil || (owner.Kind != symgraph.KindClass && owner.Kind != symgraph.KindStruct) {
			continue
		}

		refs := targets[id]
		if len(refs) == 0 || !allWrites(a.g, refs) {
			continue
		}

		if !d.HasAttribute("trivialInit") || a.cfg.RetainAssignOnlyProperties {
			a.retain(id)
			continue
		}

		d.IsAssignOnly = true
	}
}

func allWrites(g *symgraph.SourceGraph, refIDs []symgraph.RefID) bool {
	for _, refID := range refIDs {
		if !g.Reference(refID).IsWrite {
			return false
		}
	}
	return true
}

// referencesByTarget indexes every resolved reference by its target
// declaration, used by the simple-property rule to inspect a
// property's reference shape directly rather than via SourceGraph's
// (module, usr)-keyed ReferencesTo.
func (a *analyzer) referencesByTarget() map[symgraph.DeclID][]symgraph.RefID {
	out := make(map[symgraph.DeclID][]symgraph.RefID)
	for _, refID := range a.g.AllReferences() {
		ref := a.g.Reference(refID)
		if ref.Resolved {
			out[ref.Target] = append(out[ref.Target], refID)
		}
	}
	return out
}
