package analyze

import "github.com/QuentinArnault/periphery/internal/symgraph"

// analyzeParameters implements spec.md §4.4.3. The general retention
// fixpoint (propagate, in worklist.go) already retains a parameter
// that is referenced in its function's body, since that reference is
// attached to the function and its target is the parameter
// declaration. What remains here: parameters explicitly named `_`,
// the `retainUnusedProtocolFuncParams` blanket, and the symmetric
// override-chain / protocol-witness parameter groups, after which
// every retained function's unused parameters are recorded.
func (a *analyzer) analyzeParameters() {
	groups := newParamUnionFind()

	for subID, baseID := range a.mutRes.OverrideBase {
		pairPositional(groups, parametersOf(a.g, subID), parametersOf(a.g, baseID))
	}
	for reqID, witnesses := range a.mutRes.RequirementWitnesses {
		reqParams := parametersOf(a.g, reqID)
		for _, witnessID := range witnesses {
			pairPositional(groups, reqParams, parametersOf(a.g, witnessID))
		}
	}
	for reqID, defaultID := range a.mutRes.ProtocolExtensionDefaults {
		pairPositional(groups, parametersOf(a.g, reqID), parametersOf(a.g, defaultID))
	}

	for _, id := range a.g.AllDeclarations() {
		d := a.g.Declaration(id)
		if d.Kind != symgraph.KindVarParameter {
			continue
		}
		if d.Name == "_" {
			a.retain(id)
		}
	}

	if a.cfg.RetainUnusedProtocolFuncParams {
		for _, id := range a.g.AllDeclarations() {
			d := a.g.Declaration(id)
			if !d.Kind.IsFunction() || !a.isProtocolRequirementOrExtension(id, d) {
				continue
			}
			for _, paramID := range parametersOf(a.g, id) {
				a.retain(paramID)
			}
		}
	}

	groups.spreadRetention(a.g)

	for _, id := range a.g.AllDeclarations() {
		d := a.g.Declaration(id)
		if !d.Kind.IsFunction() || !d.IsRetained {
			continue
		}
		if symgraph.Has(d.CommentCommands, symgraph.DirectiveIgnoreParameters) {
			continue
		}
		d.UnusedParameters = unusedParametersOf(a.g, id)
	}
}

// isProtocolRequirementOrExtension reports whether id is declared
// directly inside a protocol, or inside one of that protocol's
// extensions.
func (a *analyzer) isProtocolRequirementOrExtension(id symgraph.DeclID, d *symgraph.Declaration) bool {
	if d.Parent.Kind != symgraph.ParentIsDecl {
		return false
	}
	owner := a.g.Declaration(d.Parent.Decl)
	if owner == nil {
		return false
	}
	return owner.Kind == symgraph.KindProtocol || owner.Kind == symgraph.KindExtensionProtocol
}

func parametersOf(g *symgraph.SourceGraph, fnID symgraph.DeclID) []symgraph.DeclID {
	d := g.Declaration(fnID)
	if d == nil {
		return nil
	}
	var out []symgraph.DeclID
	for _, childID := range d.Declarations {
		if g.Declaration(childID).Kind == symgraph.KindVarParameter {
			out = append(out, childID)
		}
	}
	return out
}

func unusedParametersOf(g *symgraph.SourceGraph, fnID symgraph.DeclID) []symgraph.DeclID {
	var out []symgraph.DeclID
	for _, paramID := range parametersOf(g, fnID) {
		if !g.Declaration(paramID).IsRetained {
			out = append(out, paramID)
		}
	}
	return out
}

func pairPositional(groups *paramUnionFind, a, b []symgraph.DeclID) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		groups.union(a[i], b[i])
	}
}
