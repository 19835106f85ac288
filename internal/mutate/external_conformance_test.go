package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunExternalConformance_RetainsVisibleMembersAndParams(t *testing.T) {
	g := symgraph.NewSourceGraph()
	cls := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindClass, Name: "C", USR: "s:C", Module: "M"})
	g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, Name: "ForeignDelegate", USR: "mod:ForeignDelegate", Parent: symgraph.DeclParent(cls), IsRelated: true})

	method := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "callback", USR: "s:C.callback", Module: "M",
		Parent: symgraph.DeclParent(cls), Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal},
	})
	param := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindVarParameter, Name: "arg", USR: "s:C.callback.arg", Module: "M", Parent: symgraph.DeclParent(method),
	})
	private := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindVarInstance, Name: "hidden", USR: "s:C.hidden", Module: "M",
		Parent: symgraph.DeclParent(cls), Access: symgraph.AccessibilityInfo{Value: symgraph.AccessPrivate},
	})

	res := newResult()
	runExternalConformance(g, res)

	require.True(t, g.Declaration(method).IsRetained)
	require.True(t, res.ForeignWitnessParams[param])
	require.False(t, g.Declaration(private).IsRetained)
}

func TestRunExternalConformance_NoopWithoutUnresolvedConformance(t *testing.T) {
	g := symgraph.NewSourceGraph()
	cls := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindClass, Name: "C", USR: "s:C", Module: "M"})
	method := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "m", USR: "s:C.m", Module: "M",
		Parent: symgraph.DeclParent(cls), Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal},
	})

	res := newResult()
	runExternalConformance(g, res)

	require.False(t, g.Declaration(method).IsRetained)
}
