package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunConformanceWitnesses_MatchesDirectMember(t *testing.T) {
	g := symgraph.NewSourceGraph()
	proto := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindProtocol, Name: "Drawable", USR: "s:Drawable", Module: "M"})
	req := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:Drawable.draw", Module: "M", Parent: symgraph.DeclParent(proto),
	})

	typ := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Shape", USR: "s:Shape", Module: "M"})
	r := g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, USR: "s:Drawable", IsRelated: true, Parent: symgraph.DeclParent(typ), Resolved: true, Target: proto})
	g.Declaration(typ).Related = append(g.Declaration(typ).Related, r)
	witness := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:Shape.draw", Module: "M", Parent: symgraph.DeclParent(typ),
	})

	res := newResult()
	runConformanceWitnesses(g, res)

	require.Equal(t, []symgraph.DeclID{witness}, res.ConformanceWitnesses[typ][proto])
	require.Equal(t, []symgraph.DeclID{witness}, res.RequirementWitnesses[req])
}

func TestRunConformanceWitnesses_MatchesExtensionMember(t *testing.T) {
	g := symgraph.NewSourceGraph()
	proto := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindProtocol, Name: "Drawable", USR: "s:Drawable", Module: "M"})
	g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:Drawable.draw", Module: "M", Parent: symgraph.DeclParent(proto),
	})

	typ := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Shape", USR: "s:Shape", Module: "M"})
	r := g.AddReference(symgraph.Reference{Kind: symgraph.KindProtocol, USR: "s:Drawable", IsRelated: true, Parent: symgraph.DeclParent(typ), Resolved: true, Target: proto})
	g.Declaration(typ).Related = append(g.Declaration(typ).Related, r)

	ext := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindExtensionStruct, Name: "Shape", USR: "s:ext.Shape", Module: "M"})
	g.IndexExtension("s:Shape", ext)
	witness := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:ext.Shape.draw", Module: "M", Parent: symgraph.DeclParent(ext),
	})

	res := newResult()
	runConformanceWitnesses(g, res)

	require.Equal(t, []symgraph.DeclID{witness}, res.ConformanceWitnesses[typ][proto])
}

func TestRunConformanceWitnesses_ProtocolExtensionDefaultLinked(t *testing.T) {
	g := symgraph.NewSourceGraph()
	proto := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindProtocol, Name: "Drawable", USR: "s:Drawable", Module: "M"})
	req := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:Drawable.draw", Module: "M", Parent: symgraph.DeclParent(proto),
	})
	ext := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindExtensionProtocol, Name: "Drawable", USR: "s:ext.Drawable", Module: "M"})
	g.IndexExtension("s:Drawable", ext)
	def := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "draw", USR: "s:ext.Drawable.draw", Module: "M", Parent: symgraph.DeclParent(ext),
	})

	res := newResult()
	runConformanceWitnesses(g, res)

	require.Equal(t, def, res.ProtocolExtensionDefaults[req])
}
