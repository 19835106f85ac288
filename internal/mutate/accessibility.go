package mutate

import "github.com/QuentinArnault/periphery/internal/symgraph"

// runAccessibility implements M-Accessibility (spec.md §4.3): for a
// member without an explicit modifier, effective accessibility is
// min(extension.accessibility, member.explicitAccessibility ?? public).
// Extension accessibility defaults to the lowest accessibility of its
// extended type's declaration unless explicit.
func runAccessibility(g *symgraph.SourceGraph) {
	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if !d.Kind.IsExtension() {
			continue
		}
		if !d.Access.Explicit {
			d.Access = extensionDefaultAccessibility(g, id)
		}

		extAccess := d.Access
		for _, childID := range d.Declarations {
			child := g.Declaration(childID)
			if child.Access.Explicit {
				continue
			}
			effective := extAccess.Value
			if child.Access.Value != symgraph.AccessInternal || child.Access.Explicit {
				effective = symgraph.Min(extAccess.Value, child.Access.Value)
			} else {
				effective = symgraph.Min(extAccess.Value, symgraph.AccessPublic)
			}
			child.Access = symgraph.AccessibilityInfo{Value: effective, Explicit: false}
		}
	}
}

// extensionDefaultAccessibility computes the fallback accessibility for
// an extension with no explicit modifier: the lowest accessibility of
// the extended type's own declaration, or AccessInternal if the
// extended type cannot be located (foreign type).
func extensionDefaultAccessibility(g *symgraph.SourceGraph, extID symgraph.DeclID) symgraph.AccessibilityInfo {
	usr := extendedTypeUSR(g, extID)
	if usr == "" {
		return symgraph.AccessibilityInfo{Value: symgraph.AccessInternal, Explicit: false}
	}
	ext := g.Declaration(extID)
	target, ok := g.ByUSR(ext.Module, usr)
	if !ok {
		return symgraph.AccessibilityInfo{Value: symgraph.AccessInternal, Explicit: false}
	}
	return symgraph.AccessibilityInfo{Value: g.Declaration(target).Access.Value, Explicit: false}
}
