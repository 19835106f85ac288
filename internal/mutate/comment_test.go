package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunComment_IgnoreMarksDescendants(t *testing.T) {
	g := symgraph.NewSourceGraph()
	class := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindClass, Name: "A", USR: "s:A", Module: "M",
		Loc:             symgraph.Location{File: "a.swift", Line: 1},
		CommentCommands: []symgraph.CommentCommand{{Kind: symgraph.DirectiveIgnore}},
	})
	method := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "f", USR: "s:A.f", Module: "M",
		Loc: symgraph.Location{File: "a.swift", Line: 2}, Parent: symgraph.DeclParent(class),
	})

	runComment(g)

	require.True(t, g.IsIgnored(class))
	require.True(t, g.IsIgnored(method))
}

func TestRunComment_IgnoreAllAppliesFromLineForward(t *testing.T) {
	g := symgraph.NewSourceGraph()
	before := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "before", USR: "s:before", Module: "M",
		Loc: symgraph.Location{File: "a.swift", Line: 1},
	})
	marker := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "marker", USR: "s:marker", Module: "M",
		Loc:             symgraph.Location{File: "a.swift", Line: 5},
		CommentCommands: []symgraph.CommentCommand{{Kind: symgraph.DirectiveIgnoreAll}},
	})
	after := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "after", USR: "s:after", Module: "M",
		Loc: symgraph.Location{File: "a.swift", Line: 10},
	})

	runComment(g)

	require.False(t, g.IsIgnored(before))
	require.True(t, g.IsIgnored(marker))
	require.True(t, g.IsIgnored(after))
}
