package mutate

import (
	"path/filepath"

	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// runEntryPoint implements M-EntryPoint (spec.md §4.3): every top-level
// declaration of a configured entry-point file is a process root and is
// retained directly, independent of whatever the Analyzer's seed rules
// would otherwise decide.
func runEntryPoint(g *symgraph.SourceGraph, cfg Config) {
	if len(cfg.EntryPointFilenames) == 0 {
		return
	}
	entryFiles := toSet(cfg.EntryPointFilenames)

	for _, id := range g.AllDeclarations() {
		d := g.Declaration(id)
		if !isFileScoped(g, d) {
			continue
		}
		if entryFiles[filepath.Base(d.Loc.File)] {
			d.IsRetained = true
		}
	}
}

// isFileScoped reports whether d is a direct member of its file rather
// than of some other declaration (a class, struct or function): either
// a true graph root, or parented only by the Indexer's synthetic module
// container (spec.md §4.2, step 2).
func isFileScoped(g *symgraph.SourceGraph, d *symgraph.Declaration) bool {
	switch d.Parent.Kind {
	case symgraph.ParentNone:
		return true
	case symgraph.ParentIsDecl:
		parent := g.Declaration(d.Parent.Decl)
		return parent != nil && parent.Kind == symgraph.KindModule
	default:
		return false
	}
}
