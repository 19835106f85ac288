package reportfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuentinArnault/periphery/internal/result"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

func sampleResult() *result.Result {
	return &result.Result{
		UnreferencedDeclarations: []result.Item{
			{
				Location: symgraph.Location{File: "a.go", Line: 3, Column: 1},
				Kind:     symgraph.KindClass,
				Name:     "Dead",
				USR:      "s:1Dead",
				Reason:   result.ReasonUnused,
			},
		},
	}
}

func TestWriteJSON_RoundTripsFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	decls, ok := decoded["unreferenced_declarations"].([]interface{})
	require.True(t, ok)
	require.Len(t, decls, 1)

	item := decls[0].(map[string]interface{})
	assert.Equal(t, "a.go", item["file"])
	assert.Equal(t, "Dead", item["name"])
	assert.Equal(t, "unused", item["reason"])
}

func TestWriteJSON_EmptyResultProducesEmptyArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &result.Result{}))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Empty(t, decoded["unreferenced_declarations"])
}

func TestWriteTerminal_IncludesNameAndLocation(t *testing.T) {
	var buf bytes.Buffer
	WriteTerminal(&buf, sampleResult())

	out := buf.String()
	assert.Contains(t, out, "Dead")
	assert.Contains(t, out, "a.go:3:1")
}

func TestWriteTerminal_NoFindingsMessage(t *testing.T) {
	var buf bytes.Buffer
	WriteTerminal(&buf, &result.Result{})

	assert.Contains(t, buf.String(), "no dead code found")
}
