package symgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddDeclaration_Idempotent(t *testing.T) {
	g := NewSourceGraph()
	loc := Location{File: "a.swift", Line: 1, Column: 1}

	id1 := g.AddDeclaration(Declaration{Kind: KindClass, Name: "A", USR: "s:1A", Module: "M", Loc: loc})
	id2 := g.AddDeclaration(Declaration{Kind: KindClass, Name: "A", USR: "s:1A", Module: "M", Loc: loc})

	require.Equal(t, id1, id2)
	require.Len(t, g.AllDeclarations(), 1)
}

func TestAddDeclaration_ParentWiring(t *testing.T) {
	g := NewSourceGraph()
	class := g.AddDeclaration(Declaration{Kind: KindClass, Name: "A", USR: "s:A", Module: "M"})
	method := g.AddDeclaration(Declaration{Kind: KindFunctionMethodInstance, Name: "f", USR: "s:A.f", Module: "M", Parent: DeclParent(class)})

	require.Equal(t, []DeclID{class}, g.RootDeclarations())
	require.Equal(t, []DeclID{method}, g.Declaration(class).Declarations)
	require.Equal(t, class, g.Declaration(method).Parent.Decl)
}

func TestReferenceResolution(t *testing.T) {
	g := NewSourceGraph()
	class := g.AddDeclaration(Declaration{Kind: KindClass, Name: "A", USR: "s:A", Module: "M"})
	caller := g.AddDeclaration(Declaration{Kind: KindFunctionFree, Name: "use", USR: "s:use", Module: "M"})

	refID := g.AddReference(Reference{Kind: KindClass, Name: "A", USR: "s:A", Parent: DeclParent(caller)})
	ref := g.Reference(refID)
	ref.Resolved = true
	ref.Target = class

	refs := g.ReferencesTo("M", "s:A")
	require.Equal(t, []RefID{refID}, refs)

	require.Contains(t, g.Declaration(caller).References, refID)
}

func TestRemove_DetachesAndTombstonesDescendants(t *testing.T) {
	g := NewSourceGraph()
	class := g.AddDeclaration(Declaration{Kind: KindClass, Name: "A", USR: "s:A", Module: "M"})
	method := g.AddDeclaration(Declaration{Kind: KindFunctionMethodInstance, Name: "f", USR: "s:A.f", Module: "M", Parent: DeclParent(class)})

	g.Remove(class)

	require.Empty(t, g.RootDeclarations())
	require.Empty(t, g.AllDeclarations())
	_, ok := g.ByUSR("M", "s:A")
	require.False(t, ok)
	_, ok = g.ByUSR("M", "s:A.f")
	require.False(t, ok)
	require.NotNil(t, g.Declaration(method)) // arena slot preserved, just tombstoned
}

func TestInheritedTypeReferences_TransitiveClosure(t *testing.T) {
	g := NewSourceGraph()
	base := g.AddDeclaration(Declaration{Kind: KindClass, Name: "Base", USR: "s:Base", Module: "M"})
	mid := g.AddDeclaration(Declaration{Kind: KindClass, Name: "Mid", USR: "s:Mid", Module: "M"})
	leaf := g.AddDeclaration(Declaration{Kind: KindClass, Name: "Leaf", USR: "s:Leaf", Module: "M"})

	r1 := g.AddReference(Reference{Kind: KindClass, USR: "s:Mid", IsRelated: true, Parent: DeclParent(leaf), Resolved: true, Target: mid})
	g.Declaration(leaf).Related = append(g.Declaration(leaf).Related, r1)

	r2 := g.AddReference(Reference{Kind: KindClass, USR: "s:Base", IsRelated: true, Parent: DeclParent(mid), Resolved: true, Target: base})
	g.Declaration(mid).Related = append(g.Declaration(mid).Related, r2)

	got := g.InheritedTypeReferences(leaf)
	require.ElementsMatch(t, []DeclID{mid, base}, got)
}

func TestValidate_DetectsAccessorParentViolation(t *testing.T) {
	g := NewSourceGraph()
	fn := g.AddDeclaration(Declaration{Kind: KindFunctionFree, Name: "f", USR: "s:f", Module: "M"})
	g.AddDeclaration(Declaration{Kind: KindFunctionAccessorGetter, Name: "get", USR: "s:f.get", Module: "M", Parent: DeclParent(fn)})

	err := g.Validate()
	require.Error(t, err)
}

func TestValidate_PassesOnWellFormedGraph(t *testing.T) {
	g := NewSourceGraph()
	v := g.AddDeclaration(Declaration{Kind: KindVarInstance, Name: "x", USR: "s:x", Module: "M"})
	g.AddDeclaration(Declaration{Kind: KindFunctionAccessorGetter, Name: "get", USR: "s:x.get", Module: "M", Parent: DeclParent(v)})

	require.NoError(t, g.Validate())
}
