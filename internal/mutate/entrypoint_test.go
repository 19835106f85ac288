package mutate

import (
	"testing"

	"github.com/QuentinArnault/periphery/internal/symgraph"
	"github.com/stretchr/testify/require"
)

func TestRunEntryPoint_RetainsTopLevelDeclsOfEntryFile(t *testing.T) {
	g := symgraph.NewSourceGraph()
	mainFn := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "main", USR: "s:main", Module: "M",
		Loc: symgraph.Location{File: "src/main.swift", Line: 1},
	})
	other := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "helper", USR: "s:helper", Module: "M",
		Loc: symgraph.Location{File: "src/helper.swift", Line: 1},
	})

	runEntryPoint(g, Config{EntryPointFilenames: []string{"main.swift"}})

	require.True(t, g.Declaration(mainFn).IsRetained)
	require.False(t, g.Declaration(other).IsRetained)
}

func TestRunEntryPoint_RetainsDeclsParentedUnderSyntheticModule(t *testing.T) {
	g := symgraph.NewSourceGraph()
	module := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindModule, Name: "M", USR: "module:M"})
	mainFn := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "main", USR: "s:main", Module: "M",
		Loc: symgraph.Location{File: "main.go", Line: 1}, Parent: symgraph.DeclParent(module),
	})
	method := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionMethodInstance, Name: "helper", USR: "s:Widget.helper", Module: "M",
		Loc: symgraph.Location{File: "main.go", Line: 5}, Parent: symgraph.DeclParent(mainFn),
	})

	runEntryPoint(g, Config{EntryPointFilenames: []string{"main.go"}})

	require.True(t, g.Declaration(mainFn).IsRetained)
	require.False(t, g.Declaration(method).IsRetained)
}

func TestRunEntryPoint_NoopWhenUnconfigured(t *testing.T) {
	g := symgraph.NewSourceGraph()
	fn := g.AddDeclaration(symgraph.Declaration{
		Kind: symgraph.KindFunctionFree, Name: "main", USR: "s:main", Module: "M",
		Loc: symgraph.Location{File: "src/main.swift", Line: 1},
	})

	runEntryPoint(g, Config{})

	require.False(t, g.Declaration(fn).IsRetained)
}
