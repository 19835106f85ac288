package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunAccessibility_MemberInheritsExtensionCeiling(t *testing.T) {
	g := symgraph.NewSourceGraph()
	ext := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindExtensionStruct, Name: "Ext", USR: "s:ext", Module: "M",
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessFileprivate, Explicit: true},
	})
	member := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "m", USR: "s:ext.m", Module: "M",
		Parent: symgraph.DeclParent(ext),
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal, Explicit: false},
	})

	runAccessibility(g)

	got := g.Declaration(member).Access
	require.Equal(t, symgraph.AccessFileprivate, got.Value)
	require.False(t, got.Explicit)
}

func TestRunAccessibility_ExplicitMemberAccessUnaffected(t *testing.T) {
	g := symgraph.NewSourceGraph()
	ext := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindExtensionStruct, Name: "Ext", USR: "s:ext", Module: "M",
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessPublic, Explicit: true},
	})
	member := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "m", USR: "s:ext.m", Module: "M",
		Parent: symgraph.DeclParent(ext),
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessPrivate, Explicit: true},
	})

	runAccessibility(g)

	got := g.Declaration(member).Access
	require.Equal(t, symgraph.AccessPrivate, got.Value)
	require.True(t, got.Explicit)
}

func TestRunAccessibility_ExtensionDefaultsToExtendedTypeAccess(t *testing.T) {
	g := symgraph.NewSourceGraph()
	typeID := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindStruct, Name: "S", USR: "s:S", Module: "M",
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessFileprivate, Explicit: true},
	})
	ext := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindExtensionStruct, Name: "Ext", USR: "s:ext", Module: "M",
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal, Explicit: false},
	})
	g.AddReference(symgraph.Reference{
		Kind: symgraph.KindStruct, Name: "S", USR: "s:S", Parent: symgraph.DeclParent(ext), IsRelated: true,
	})
	_ = typeID

	runAccessibility(g)

	require.Equal(t, symgraph.AccessFileprivate, g.Declaration(ext).Access.Value)
}
