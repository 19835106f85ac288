package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuentinArnault/periphery/internal/symgraph"
)

func TestEvaluate_ObjcAttribute(t *testing.T) {
	g := symgraph.NewSourceGraph()
	id := g.AddDeclaration(symgraph.Declaration{
		Kind:       symgraph.KindClass,
		Name:       "Foo",
		USR:        "s:4Foo",
		Attributes: map[string]bool{"objc": true},
	})
	_ = id

	seeds, err := Evaluate(g, Config{})
	require.NoError(t, err)
	assert.True(t, seeds["s:4Foo"])
}

func TestEvaluate_TestHarnessInheritance(t *testing.T) {
	g := symgraph.NewSourceGraph()
	baseID := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindClass, Name: "Base", USR: "s:4Base"})
	subID := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindClass, Name: "Sub", USR: "s:3Sub"})
	g.AddReference(symgraph.Reference{
		Kind: symgraph.KindClass, USR: "s:4Base", Resolved: true, Target: baseID,
		IsRelated: true, Parent: symgraph.DeclParent(subID),
	})

	seeds, err := Evaluate(g, Config{ExternalTestBaseClassUSRs: []string{"s:4Base"}})
	require.NoError(t, err)
	assert.True(t, seeds["s:3Sub"])
}

func TestEvaluate_ExternalCodableConformance(t *testing.T) {
	g := symgraph.NewSourceGraph()
	typeID := g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindStruct, Name: "Payload", USR: "s:7Payload"})
	g.AddReference(symgraph.Reference{
		Kind: symgraph.KindProtocol, USR: "external:Codable", Resolved: false,
		IsRelated: true, Parent: symgraph.DeclParent(typeID),
	})

	seeds, err := Evaluate(g, Config{ExternalCodableUSRs: []string{"external:Codable"}})
	require.NoError(t, err)
	assert.True(t, seeds["s:7Payload"])
}

func TestEvaluate_NoMatches(t *testing.T) {
	g := symgraph.NewSourceGraph()
	g.AddDeclaration(symgraph.Declaration{Kind: symgraph.KindClass, Name: "Plain", USR: "s:5Plain"})

	seeds, err := Evaluate(g, Config{})
	require.NoError(t, err)
	assert.Empty(t, seeds)
}
