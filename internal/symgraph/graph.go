package symgraph

// moduleUsr scopes a USR to the module it was declared in, per
// invariant 1 in spec.md §3: "usr uniquely identifies a Declaration
// within one module; across modules, (module, usr) is unique."
type moduleUsr struct {
	module string
	usr    string
}

type kindName struct {
	kind Kind
	name string
}

// SourceGraph is the mutable container of record for an analysis run
// (C2). It is built once by the Indexer, transformed in place by the
// Mutators in a fixed order, and then read only by the Analyzer and
// Result stages (spec.md §3, Lifecycle; spec.md §5, Concurrency).
type SourceGraph struct {
	decls []Declaration
	refs  []Reference

	rootDeclarations []DeclID

	byUsr         map[moduleUsr]DeclID
	byKindName    map[kindName][]DeclID
	byExtendedUsr map[string][]DeclID
	conformances  map[string][]DeclID

	ignoredDeclarations map[DeclID]bool

	// removed marks tombstoned ids so arena slots are never reused or
	// silently iterated after Remove.
	removed map[DeclID]bool
}

// NewSourceGraph constructs an empty graph.
func NewSourceGraph() *SourceGraph {
	return &SourceGraph{
		byUsr:               make(map[moduleUsr]DeclID),
		byKindName:          make(map[kindName][]DeclID),
		byExtendedUsr:       make(map[string][]DeclID),
		conformances:        make(map[string][]DeclID),
		ignoredDeclarations: make(map[DeclID]bool),
		removed:             make(map[DeclID]bool),
	}
}

// AddDeclaration inserts decl into the arena, assigning it a fresh ID
// and maintaining every secondary index. Idempotent on (kind, usr,
// location): a record already present under the same key is returned
// instead of being duplicated (spec.md §4.1, §4.2 "Duplicate
// definitions ... are de-duplicated").
func (g *SourceGraph) AddDeclaration(d Declaration) DeclID {
	if d.USR != "" {
		key := moduleUsr{module: d.Module, usr: d.USR}
		if existing, ok := g.byUsr[key]; ok {
			ex := &g.decls[existing]
			if ex.Kind == d.Kind && ex.Loc == d.Loc {
				return existing
			}
		}
	}

	id := DeclID(len(g.decls))
	d.ID = id
	if d.Attributes == nil {
		d.Attributes = make(map[string]bool)
	}
	if d.Modifiers == nil {
		d.Modifiers = make(map[string]bool)
	}
	g.decls = append(g.decls, d)

	if d.USR != "" {
		g.byUsr[moduleUsr{module: d.Module, usr: d.USR}] = id
	}
	if d.Name != "" {
		kn := kindName{kind: d.Kind, name: d.Name}
		g.byKindName[kn] = append(g.byKindName[kn], id)
	}

	switch d.Parent.Kind {
	case ParentNone:
		g.rootDeclarations = append(g.rootDeclarations, id)
	case ParentIsDecl:
		parent := &g.decls[d.Parent.Decl]
		parent.Declarations = append(parent.Declarations, id)
	case ParentIsRef:
		parent := &g.refs[d.Parent.Ref]
		parent.Declarations = append(parent.Declarations, id)
	}

	return id
}

// AddReference inserts ref into the arena, assigning it a fresh ID and
// attaching it to its container's References or Related slice.
func (g *SourceGraph) AddReference(r Reference) RefID {
	id := RefID(len(g.refs))
	r.ID = id
	g.refs = append(g.refs, r)

	switch r.Parent.Kind {
	case ParentIsDecl:
		container := &g.decls[r.Parent.Decl]
		if r.IsRelated {
			container.Related = append(container.Related, id)
		} else {
			container.References = append(container.References, id)
		}
	case ParentIsRef:
		container := &g.refs[r.Parent.Ref]
		container.Nested = append(container.Nested, id)
	}

	return id
}

// Declaration returns a pointer into the arena for live mutation.
// Callers must not retain the pointer across a Remove call.
func (g *SourceGraph) Declaration(id DeclID) *Declaration {
	if id < 0 || int(id) >= len(g.decls) {
		return nil
	}
	return &g.decls[id]
}

// Reference returns a pointer into the arena for live mutation.
func (g *SourceGraph) Reference(id RefID) *Reference {
	if id < 0 || int(id) >= len(g.refs) {
		return nil
	}
	return &g.refs[id]
}

// AllDeclarations iterates every live (non-removed) declaration.
func (g *SourceGraph) AllDeclarations() []DeclID {
	out := make([]DeclID, 0, len(g.decls))
	for i := range g.decls {
		id := DeclID(i)
		if !g.removed[id] {
			out = append(out, id)
		}
	}
	return out
}

// AllReferences iterates every live reference.
func (g *SourceGraph) AllReferences() []RefID {
	out := make([]RefID, 0, len(g.refs))
	for i := range g.refs {
		out = append(out, RefID(i))
	}
	return out
}

// RootDeclarations returns the top-level declarations (those whose
// parent chain terminates without an enclosing Declaration or Reference).
func (g *SourceGraph) RootDeclarations() []DeclID {
	out := make([]DeclID, 0, len(g.rootDeclarations))
	for _, id := range g.rootDeclarations {
		if !g.removed[id] {
			out = append(out, id)
		}
	}
	return out
}

// ByUSR looks up a declaration by (module, usr).
func (g *SourceGraph) ByUSR(module, usr string) (DeclID, bool) {
	id, ok := g.byUsr[moduleUsr{module: module, usr: usr}]
	if ok && g.removed[id] {
		return NoDecl, false
	}
	return id, ok
}

// ByKindName returns every live declaration of the given kind and name.
func (g *SourceGraph) ByKindName(k Kind, name string) []DeclID {
	ids := g.byKindName[kindName{kind: k, name: name}]
	out := make([]DeclID, 0, len(ids))
	for _, id := range ids {
		if !g.removed[id] {
			out = append(out, id)
		}
	}
	return out
}

// IndexExtension records that extension decl extends the type with
// extendedUSR, maintained by the Indexer/Mutators as extensions are
// materialized.
func (g *SourceGraph) IndexExtension(extendedUSR string, decl DeclID) {
	g.byExtendedUsr[extendedUSR] = append(g.byExtendedUsr[extendedUSR], decl)
}

// ExtensionsOf returns every extension declaration recorded against
// the type identified by usr.
func (g *SourceGraph) ExtensionsOf(usr string) []DeclID {
	return append([]DeclID(nil), g.byExtendedUsr[usr]...)
}

// IndexConformance records that decl conforms to the protocol
// identified by protocolUSR.
func (g *SourceGraph) IndexConformance(protocolUSR string, decl DeclID) {
	for _, existing := range g.conformances[protocolUSR] {
		if existing == decl {
			return
		}
	}
	g.conformances[protocolUSR] = append(g.conformances[protocolUSR], decl)
}

// ConformingTypes returns every declaration recorded as conforming to
// the protocol identified by usr.
func (g *SourceGraph) ConformingTypes(usr string) []DeclID {
	return append([]DeclID(nil), g.conformances[usr]...)
}

// MarkIgnored marks a declaration (and, by convention, its descendants
// — callers are expected to call this for every descendant) as
// ignored: present in the graph, excluded from unused-reporting.
func (g *SourceGraph) MarkIgnored(id DeclID) { g.ignoredDeclarations[id] = true }

// IsIgnored reports whether id has been marked ignored.
func (g *SourceGraph) IsIgnored(id DeclID) bool { return g.ignoredDeclarations[id] }

// Remove detaches decl from its parent, tombstones it and every
// descendant, and unwinds the secondary indices. Used by mutators that
// reinterpret edges (e.g. collapsing accessor redundancy).
func (g *SourceGraph) Remove(id DeclID) {
	d := g.Declaration(id)
	if d == nil || g.removed[id] {
		return
	}

	for _, child := range append([]DeclID(nil), d.Declarations...) {
		g.Remove(child)
	}

	switch d.Parent.Kind {
	case ParentNone:
		g.rootDeclarations = removeDeclID(g.rootDeclarations, id)
	case ParentIsDecl:
		if parent := g.Declaration(d.Parent.Decl); parent != nil {
			parent.Declarations = removeDeclID(parent.Declarations, id)
		}
	case ParentIsRef:
		if parent := g.Reference(d.Parent.Ref); parent != nil {
			parent.Declarations = removeDeclID(parent.Declarations, id)
		}
	}

	if d.USR != "" {
		delete(g.byUsr, moduleUsr{module: d.Module, usr: d.USR})
	}
	if d.Name != "" {
		kn := kindName{kind: d.Kind, name: d.Name}
		g.byKindName[kn] = removeDeclID(g.byKindName[kn], id)
	}

	g.removed[id] = true
}

func removeDeclID(ids []DeclID, target DeclID) []DeclID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// Descendants returns every declaration reachable from id by following
// owned children (depth-first).
func (g *SourceGraph) Descendants(id DeclID) []DeclID {
	var out []DeclID
	var walk func(DeclID)
	walk = func(cur DeclID) {
		d := g.Declaration(cur)
		if d == nil {
			return
		}
		for _, child := range d.Declarations {
			out = append(out, child)
			walk(child)
		}
	}
	walk(id)
	return out
}

// InheritedTypeReferences returns the transitive closure over `related`
// edges (class inheritance and protocol conformance) starting at id.
func (g *SourceGraph) InheritedTypeReferences(id DeclID) []DeclID {
	seen := map[DeclID]bool{id: true}
	var out []DeclID
	var walk func(DeclID)
	walk = func(cur DeclID) {
		d := g.Declaration(cur)
		if d == nil {
			return
		}
		for _, refID := range d.Related {
			ref := g.Reference(refID)
			if ref == nil || !ref.Resolved {
				continue
			}
			if seen[ref.Target] {
				continue
			}
			seen[ref.Target] = true
			out = append(out, ref.Target)
			walk(ref.Target)
		}
	}
	walk(id)
	return out
}

// ReferencesTo returns every live Reference resolved to usr within module.
func (g *SourceGraph) ReferencesTo(module, usr string) []RefID {
	target, ok := g.ByUSR(module, usr)
	if !ok {
		return nil
	}
	var out []RefID
	for i := range g.refs {
		r := &g.refs[i]
		if r.Resolved && r.Target == target {
			out = append(out, RefID(i))
		}
	}
	return out
}

// Ancestors returns the chain of enclosing declarations for id, nearest
// first, stopping at a top-level declaration or a Reference parent.
func (g *SourceGraph) Ancestors(id DeclID) []DeclID {
	var out []DeclID
	cur := id
	for {
		d := g.Declaration(cur)
		if d == nil || d.Parent.Kind != ParentIsDecl {
			return out
		}
		out = append(out, d.Parent.Decl)
		cur = d.Parent.Decl
	}
}

// EnclosingDeclaration walks a Parent chain that may pass through
// References (e.g. a closure argument) until it lands on a Declaration,
// or returns NoDecl if the chain terminates first.
func (g *SourceGraph) EnclosingDeclaration(p Parent) DeclID {
	for {
		switch p.Kind {
		case ParentIsDecl:
			return p.Decl
		case ParentIsRef:
			ref := g.Reference(p.Ref)
			if ref == nil {
				return NoDecl
			}
			p = ref.Parent
		default:
			return NoDecl
		}
	}
}
