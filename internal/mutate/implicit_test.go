package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunImplicitMembers_MemberwiseInitSynthesizedForVisibleStruct(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindVarInstance, Name: "x", USR: "s:Point.x", Module: "M", Parent: symgraph.DeclParent(s),
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal},
	})

	runImplicitMembers(g, Config{})

	inits := g.ByKindName(symgraph.KindFunctionConstructor, "init")
	require.Len(t, inits, 1)
	require.True(t, g.Declaration(inits[0]).IsImplicit)
}

func TestRunImplicitMembers_SkipsSynthesisWhenPropertyIsPrivate(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindVarInstance, Name: "x", USR: "s:Point.x", Module: "M", Parent: symgraph.DeclParent(s),
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessPrivate},
	})

	runImplicitMembers(g, Config{})

	require.Empty(t, g.ByKindName(symgraph.KindFunctionConstructor, "init"))
}

func TestRunImplicitMembers_SkipsSynthesisWhenExplicitInitExists(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindVarInstance, Name: "x", USR: "s:Point.x", Module: "M", Parent: symgraph.DeclParent(s),
		Access: symgraph.AccessibilityInfo{Value: symgraph.AccessInternal},
	})
	g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionConstructor, Name: "init", USR: "s:Point.init", Module: "M", Parent: symgraph.DeclParent(s),
	})

	runImplicitMembers(g, Config{})

	require.Len(t, g.ByKindName(symgraph.KindFunctionConstructor, "init"), 1)
}

func TestRunImplicitMembers_EquatableSynthesizesOperator(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, Name: "Equatable", USR: "s:Equatable", Parent: symgraph.DeclParent(s), IsRelated: true})

	runImplicitMembers(g, Config{})

	require.Len(t, g.ByKindName(symgraph.KindFunctionOperatorInfix, "=="), 1)
}

func TestRunImplicitMembers_CodableRetainsCodingKeys(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, Name: "Codable", USR: "s:Codable", Parent: symgraph.DeclParent(s), IsRelated: true})
	keys := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindEnum, Name: "CodingKeys", USR: "s:Point.CodingKeys", Module: "M", Parent: symgraph.DeclParent(s)})

	runImplicitMembers(g, Config{})

	require.True(t, g.Declaration(keys).IsRetained)
}

func TestRunImplicitMembers_ExternalCodableUSRRetainsCodingKeys(t *testing.T) {
	g := symgraph.NewSourceGraph()
	s := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Point", USR: "s:Point", Module: "M"})
	g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, Name: "MyCodable", USR: "s:ext.MyCodable", Parent: symgraph.DeclParent(s), IsRelated: true})
	keys := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindEnum, Name: "CodingKeys", USR: "s:Point.CodingKeys", Module: "M", Parent: symgraph.DeclParent(s)})

	runImplicitMembers(g, Config{ExternalCodableUSRs: []string{"s:ext.MyCodable"}})

	require.True(t, g.Declaration(keys).IsRetained)
}
