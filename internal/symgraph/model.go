// Package symgraph holds the value types (C1) and the in-memory graph
// (C2) the rest of the analyzer reasons over: Declarations and
// References connected by parent, child, reference and related edges.
package symgraph

import "fmt"

// Location is a canonicalized, totally-ordered source position.
type Location struct {
	File   string
	Line   int
	Column int
}

// Less orders locations lexicographically by (file, line, column).
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// DeclID addresses a Declaration within a SourceGraph's arena.
type DeclID int

// RefID addresses a Reference within a SourceGraph's arena.
type RefID int

// NoDecl and NoRef are the sentinel "absent" ids.
const (
	NoDecl DeclID = -1
	NoRef  RefID  = -1
)

// ParentKind discriminates which arm of the Parent tagged union is set.
type ParentKind int

const (
	ParentNone ParentKind = iota
	ParentIsDecl
	ParentIsRef
)

// Parent is a back-edge to the enclosing Declaration or Reference.
// It is modeled as an explicit tagged variant rather than an interface
// or inheritance hierarchy, per spec.md §9 ("Polymorphic parent /
// Entity abstraction"): a Declaration's parent is never an owning
// pointer, only a stable id plus a discriminant.
type Parent struct {
	Kind ParentKind
	Decl DeclID
	Ref  RefID
}

// NoParent is the empty Parent value.
var NoParent = Parent{Kind: ParentNone, Decl: NoDecl, Ref: NoRef}

// DeclParent builds a Parent pointing at a Declaration.
func DeclParent(id DeclID) Parent { return Parent{Kind: ParentIsDecl, Decl: id, Ref: NoRef} }

// RefParent builds a Parent pointing at a Reference.
func RefParent(id RefID) Parent { return Parent{Kind: ParentIsRef, Decl: NoDecl, Ref: id} }

// Declaration is a defined symbol in the source graph (spec.md §3).
type Declaration struct {
	ID   DeclID
	Kind Kind
	Name string
	USR  string
	// Module is the provider-reported module this declaration belongs
	// to; USR uniqueness is scoped to (Module, USR) across modules.
	Module string
	Loc    Location

	Access AccessibilityInfo

	Attributes map[string]bool
	Modifiers  map[string]bool

	Parent      Parent
	Declarations []DeclID // owned children
	References   []RefID  // outgoing "uses" from this declaration
	Related      []RefID  // outgoing structural edges (superclass, conformance, typealias target)

	CommentCommands []CommentCommand

	IsImplicit bool
	IsRetained bool

	// IsAssignOnly marks a stored property every one of whose references
	// is a write, with a syntactically trivial initializer, under
	// `retainAssignOnlyProperties=false` (spec.md §4.4.4). It is mutually
	// exclusive with IsRetained: an assign-only property is reported,
	// just in its own result bucket rather than alongside plain unused
	// declarations.
	IsAssignOnly bool

	UnusedParameters []DeclID
}

// HasAttribute reports whether the declaration carries the named attribute.
func (d *Declaration) HasAttribute(name string) bool { return d.Attributes[name] }

// HasModifier reports whether the declaration carries the named modifier.
func (d *Declaration) HasModifier(name string) bool { return d.Modifiers[name] }

// Reference is an edge from a use-site to a referenced symbol (spec.md §3).
type Reference struct {
	ID   RefID
	Kind Kind
	Name string
	USR  string
	Loc  Location

	Parent Parent

	Declarations []DeclID // rare: a reference that owns implicit declarations
	Nested       []RefID

	IsRelated bool

	// IsWrite marks an occurrence that assigns to its target rather
	// than reading it, the reference-shape signal the simple-property
	// rule (spec.md §4.4.4) judges trivial-initializer assign-only
	// properties from.
	IsWrite bool

	// Resolved is set by the Indexer once the USR is matched against
	// an in-graph Declaration; Target is meaningless until then.
	Resolved bool
	Target   DeclID
}
