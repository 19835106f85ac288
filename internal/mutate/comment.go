package mutate

import (
	"sort"

	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// runComment implements M-Comment (spec.md §4.3): walks declarations in
// location order and applies their parsed `// periphery:ignore[:...]`
// directives.
//
//   - ignore: marks this declaration and its descendants ignored.
//   - ignore:parameters: ignore unused parameters of this function.
//   - ignore:all: from this declaration forward in the same file,
//     ignore everything.
func runComment(g *symgraph.SourceGraph) {
	ids := orderedByLocation(g, g.AllDeclarations())

	ignoreAllFrom := map[string]int{} // file -> line from which ignore:all applies

	for _, id := range ids {
		d := g.Declaration(id)

		if line, ok := ignoreAllFrom[d.Loc.File]; ok && d.Loc.Line >= line {
			g.MarkIgnored(id)
			for _, desc := range g.Descendants(id) {
				g.MarkIgnored(desc)
			}
			continue
		}

		for _, cmd := range d.CommentCommands {
			switch cmd.Kind {
			case symgraph.DirectiveIgnore:
				g.MarkIgnored(id)
				for _, desc := range g.Descendants(id) {
					g.MarkIgnored(desc)
				}
			case symgraph.DirectiveIgnoreAll:
				if cur, ok := ignoreAllFrom[d.Loc.File]; !ok || d.Loc.Line < cur {
					ignoreAllFrom[d.Loc.File] = d.Loc.Line
				}
				g.MarkIgnored(id)
				for _, desc := range g.Descendants(id) {
					g.MarkIgnored(desc)
				}
			case symgraph.DirectiveIgnoreParameters:
				// Parameters are ignored at unused-parameter reporting
				// time (internal/analyze); record the directive is
				// present by marking each parameter child ignored only
				// with respect to the *parameter* report, not the
				// declaration itself — achieved by leaving the function
				// retained-or-not unaffected and letting C5 consult
				// d.CommentCommands directly.
			}
		}
	}
}

func orderedByLocation(g *symgraph.SourceGraph, ids []symgraph.DeclID) []symgraph.DeclID {
	out := append([]symgraph.DeclID(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		a, b := g.Declaration(out[i]), g.Declaration(out[j])
		return a.Loc.Less(b.Loc)
	})
	return out
}
