package symgraph

import "fmt"

// Validate checks invariants 1-5 of spec.md §3 against the current
// graph state. It is not run on every mutation (spec.md §4.1: "Graph
// invariants are not checked at every mutation (performance)") — it
// is called explicitly; in this repository only tests call it.
func (g *SourceGraph) Validate() error {
	seenUsr := make(map[moduleUsr]DeclID)
	for i := range g.decls {
		id := DeclID(i)
		if g.removed[id] {
			continue
		}
		d := &g.decls[i]

		// Invariant 1: usr uniqueness within (module, usr).
		if d.USR != "" {
			key := moduleUsr{module: d.Module, usr: d.USR}
			if other, ok := seenUsr[key]; ok && other != id {
				return fmt.Errorf("symgraph: duplicate (module=%q, usr=%q) at decl %d and %d", d.Module, d.USR, other, id)
			}
			seenUsr[key] = id
		}

		// Invariant 3: parent chain terminates at a top-level decl or module.
		if err := g.validateParentChain(id); err != nil {
			return err
		}

		// Invariant 4: accessors' parent is the owning var.* declaration.
		if d.Kind.IsAccessor() {
			if d.Parent.Kind != ParentIsDecl {
				return fmt.Errorf("symgraph: accessor %d has no owning declaration parent", id)
			}
			owner := g.Declaration(d.Parent.Decl)
			if owner == nil || !owner.Kind.IsVariable() {
				return fmt.Errorf("symgraph: accessor %d's parent %d is not a variable declaration", id, d.Parent.Decl)
			}
		}

		// Invariant 5: extension children accessibility lower-bound.
		if d.Parent.Kind == ParentIsDecl {
			parent := g.Declaration(d.Parent.Decl)
			if parent != nil && parent.Kind.IsExtension() {
				if d.Access.Value < parent.Access.Value {
					return fmt.Errorf("symgraph: extension member %d has accessibility %s below extension %d's %s", id, d.Access.Value, d.Parent.Decl, parent.Access.Value)
				}
			}
		}
	}

	// Invariant 2: resolved reference kind/usr match their target.
	for i := range g.refs {
		r := &g.refs[i]
		if !r.Resolved {
			continue
		}
		target := g.Declaration(r.Target)
		if target == nil {
			return fmt.Errorf("symgraph: reference %d resolved to missing declaration %d", r.ID, r.Target)
		}
		if target.USR != r.USR {
			return fmt.Errorf("symgraph: reference %d usr %q does not match target %d usr %q", r.ID, r.USR, r.Target, target.USR)
		}
		if target.Kind.ReferenceEquivalent() != r.Kind {
			return fmt.Errorf("symgraph: reference %d kind %q does not match target %d kind %q", r.ID, r.Kind, r.Target, target.Kind)
		}
	}

	return nil
}

func (g *SourceGraph) validateParentChain(id DeclID) error {
	cur := id
	visited := map[DeclID]bool{}
	for {
		if visited[cur] {
			return fmt.Errorf("symgraph: cyclic parent chain at declaration %d", id)
		}
		visited[cur] = true
		d := g.Declaration(cur)
		if d == nil {
			return fmt.Errorf("symgraph: parent chain from %d references missing declaration %d", id, cur)
		}
		switch d.Parent.Kind {
		case ParentNone:
			return nil
		case ParentIsRef:
			// Terminates at a reference (e.g. a closure/local scope); acceptable.
			return nil
		case ParentIsDecl:
			cur = d.Parent.Decl
		}
	}
}
