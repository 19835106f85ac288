package index

import (
	"sort"

	"github.com/QuentinArnault/periphery/internal/logging"
	"github.com/QuentinArnault/periphery/internal/symgraph"
)

// moduleContainer synthesizes a top-level `module` declaration the
// first time a module is seen; records with an empty ContainerUSR are
// parented under it. A non-empty ContainerUSR that matches no
// declaration is not redirected here: secondPassEdges reports it as an
// InconsistencyError (spec.md §4.2, step 2).
type moduleContainer struct {
	usr string
	id  symgraph.DeclID
}

// Indexer runs the two-pass materialization described in spec.md §4.2.
type Indexer struct {
	graph *symgraph.SourceGraph

	log *logging.Logger

	byContainerUSR map[string]symgraph.DeclID
	modules        map[string]moduleContainer

	Warnings []Warning
}

// New creates an Indexer writing into graph.
func New(graph *symgraph.SourceGraph) *Indexer {
	return &Indexer{
		graph:          graph,
		log:            logging.Get(logging.CategoryIndex),
		byContainerUSR: make(map[string]symgraph.DeclID),
		modules:        make(map[string]moduleContainer),
	}
}

// Run consumes every record from provider and populates the Indexer's
// SourceGraph. Returns an *InconsistencyError on a fatal provider
// contract violation; recoverable conditions are accumulated onto
// ix.Warnings instead.
func (ix *Indexer) Run(provider Provider) error {
	records, err := provider.Records()
	if err != nil {
		return err
	}

	// Stable providers yield the same stream every run, but defensively
	// sort the working copy by location so de-duplication and container
	// lookups are insensitive to the provider's internal iteration
	// order (spec.md §6.1: "The provider must be stable").
	records = append([]Record(nil), records...)
	sort.SliceStable(records, func(i, j int) bool {
		return loc(records[i]).Less(loc(records[j]))
	})

	if err := ix.firstPassDeclarations(records); err != nil {
		return err
	}
	if err := ix.secondPassEdges(records); err != nil {
		return err
	}
	ix.resolveReferences()
	ix.rewireParents(records)

	return nil
}

func loc(r Record) symgraph.Location {
	return symgraph.Location{File: r.File, Line: r.Line, Column: r.Column}
}

// firstPassDeclarations creates a Declaration for every `def` occurrence.
func (ix *Indexer) firstPassDeclarations(records []Record) error {
	for _, rec := range records {
		if rec.Role != RoleDef {
			continue
		}

		if rec.USR != "" {
			if existing, ok := ix.graph.ByUSR(rec.Module, rec.USR); ok && ix.graph.Declaration(existing).Kind != rec.Kind {
				return &InconsistencyError{Reason: "duplicate usr with conflicting kinds", Record: rec}
			}
		}

		access := symgraph.ParseAccessibility(rec.Accessibility)

		d := symgraph.Declaration{
			Kind:    rec.Kind,
			Name:    rec.Name,
			USR:     rec.USR,
			Module:  rec.Module,
			Loc:     loc(rec),
			Access:  access,
			Parent:  ix.containerParent(rec),
		}
		d.Attributes = toSet(rec.Attributes)
		d.Modifiers = toSet(rec.Modifiers)
		d.CommentCommands = symgraph.ParseCommentCommands(rec.Comment)

		id := ix.graph.AddDeclaration(d)
		if rec.USR != "" {
			ix.byContainerUSR[rec.USR] = id
		}
	}
	return nil
}

// secondPassEdges creates a Reference for every `ref`/`related` occurrence.
func (ix *Indexer) secondPassEdges(records []Record) error {
	for _, rec := range records {
		if rec.Role == RoleDef {
			continue
		}

		parent := ix.containerParent(rec)
		if parent.Kind == symgraph.ParentNone {
			return &InconsistencyError{Reason: "reference container could not be located", Record: rec}
		}

		ref := symgraph.Reference{
			Kind:      rec.Kind,
			Name:      rec.Name,
			USR:       rec.USR,
			Loc:       loc(rec),
			Parent:    parent,
			IsRelated: rec.Role == RoleRelated,
			IsWrite:   rec.IsWrite,
		}
		ix.graph.AddReference(ref)
	}
	return nil
}

// containerParent resolves a record's ContainerUSR to a Parent,
// synthesizing a `module` declaration when the container is absent
// (spec.md §4.2, step 2).
func (ix *Indexer) containerParent(rec Record) symgraph.Parent {
	if rec.ContainerUSR == "" {
		return ix.moduleParent(rec.Module)
	}
	if id, ok := ix.byContainerUSR[rec.ContainerUSR]; ok {
		return symgraph.DeclParent(id)
	}
	return symgraph.NoParent
}

func (ix *Indexer) moduleParent(module string) symgraph.Parent {
	mc, ok := ix.modules[module]
	if ok {
		return symgraph.DeclParent(mc.id)
	}
	usr := "module:" + module
	id := ix.graph.AddDeclaration(symgraph.Declaration{
		Kind:   symgraph.KindModule,
		Name:   module,
		USR:    usr,
		Module: module,
	})
	ix.modules[module] = moduleContainer{usr: usr, id: id}
	ix.byContainerUSR[usr] = id
	return symgraph.DeclParent(id)
}

// resolveReferences matches every Reference's (kind, usr) against the
// graph, flagging unresolved edges as external symbols (spec.md §4.2,
// step 3; invariant 2 in spec.md §3).
func (ix *Indexer) resolveReferences() {
	for _, refID := range ix.graph.AllReferences() {
		ref := ix.graph.Reference(refID)
		if ref.USR == "" {
			continue
		}
		enclosing := ix.graph.EnclosingDeclaration(ref.Parent)
		module := ""
		if d := ix.graph.Declaration(enclosing); d != nil {
			module = d.Module
		}

		target, ok := ix.graph.ByUSR(module, ref.USR)
		if !ok {
			// Try cross-module: a reference's usr may resolve in any
			// module when the provider does not report one precisely.
			target, ok = ix.findByUSRAnyModule(ref.USR)
		}
		if !ok {
			ix.Warnings = append(ix.Warnings, Warning{
				Message: "unresolved reference treated as external symbol",
				Record:  Record{File: ref.Loc.File, Line: ref.Loc.Line, Column: ref.Loc.Column, USR: ref.USR, Kind: ref.Kind},
			})
			continue
		}
		targetDecl := ix.graph.Declaration(target)
		if targetDecl.Kind.ReferenceEquivalent() != ref.Kind {
			continue
		}
		ref.Resolved = true
		ref.Target = target
	}
}

func (ix *Indexer) findByUSRAnyModule(usr string) (symgraph.DeclID, bool) {
	for _, mc := range ix.modules {
		if id, ok := ix.graph.ByUSR(mc.usr, usr); ok {
			return id, ok
		}
	}
	for _, id := range ix.graph.AllDeclarations() {
		d := ix.graph.Declaration(id)
		if d.USR == usr {
			return id, true
		}
	}
	return symgraph.NoDecl, false
}

// rewireParents checks accessor declarations after both passes. It
// does not move any declaration: every declaration keeps the parent
// firstPassDeclarations derived from its ContainerUSR, so an accessor
// whose owning var sorts after it by location stays without a parent,
// and an accessor parented under a non-variable is only logged at
// debug level. Enum elements and parameters are not examined.
func (ix *Indexer) rewireParents(records []Record) {
	for _, rec := range records {
		if rec.Role != RoleDef {
			continue
		}
		if !rec.Kind.IsAccessor() {
			continue
		}
		id, ok := ix.graph.ByUSR(rec.Module, rec.USR)
		if !ok {
			continue
		}
		d := ix.graph.Declaration(id)
		if d.Parent.Kind != symgraph.ParentIsDecl {
			continue
		}
		owner := ix.graph.Declaration(d.Parent.Decl)
		if owner != nil && !owner.Kind.IsVariable() {
			ix.log.Debug("accessor %s parented under non-variable %s; leaving as-is", rec.USR, owner.USR)
		}
	}
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}
