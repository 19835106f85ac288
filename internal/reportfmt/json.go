package reportfmt

import (
	"encoding/json"
	"io"

	"github.com/QuentinArnault/periphery/internal/result"
)

// jsonItem is the wire shape of a result.Item (spec.md §6.3): Location
// is flattened into lowercase file/line/column fields, since
// symgraph.Location carries no json struct tags of its own.
type jsonItem struct {
	File     string        `json:"file"`
	Line     int           `json:"line"`
	Column   int           `json:"column"`
	Kind     string        `json:"kind"`
	Name     string        `json:"name"`
	USR      string        `json:"usr"`
	Reason   result.Reason `json:"reason"`
}

type jsonReport struct {
	UnreferencedDeclarations []jsonItem `json:"unreferenced_declarations"`
	UnusedParameters         []jsonItem `json:"unused_parameters"`
	AssignOnlyProperties     []jsonItem `json:"assign_only_properties"`
}

// WriteJSON renders r as indented JSON to w, per spec.md §6.3's
// "emit JSON" report format.
func WriteJSON(w io.Writer, r *result.Result) error {
	out := jsonReport{
		UnreferencedDeclarations: toJSONItems(r.UnreferencedDeclarations),
		UnusedParameters:         toJSONItems(r.UnusedParameters),
		AssignOnlyProperties:     toJSONItems(r.AssignOnlyProperties),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONItems(items []result.Item) []jsonItem {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		out = append(out, jsonItem{
			File:   it.Location.File,
			Line:   it.Location.Line,
			Column: it.Location.Column,
			Kind:   string(it.Kind),
			Name:   it.Name,
			USR:    it.USR,
			Reason: it.Reason,
		})
	}
	return out
}
