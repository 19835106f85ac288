// Package index implements the Indexer (C3): it pulls raw occurrence
// records from an IndexProvider and materializes them into a
// symgraph.SourceGraph.
package index

import "github.com/QuentinArnault/periphery/internal/symgraph"

// Role classifies an occurrence record as defining a symbol,
// referencing one, or recording a related (structural) edge.
type Role string

const (
	RoleDef     Role = "def"
	RoleRef     Role = "ref"
	RoleRelated Role = "related"
)

// Record is one occurrence as reported by an IndexProvider (spec.md §6.1).
type Record struct {
	Module      string
	File        string
	Line        int
	Column      int
	Kind        symgraph.Kind
	Name        string
	USR         string
	Role        Role
	ContainerUSR string // empty for a synthetic top-level container
	Attributes  []string
	Modifiers   []string
	Accessibility string
	// Comment is the raw comment text immediately preceding this
	// occurrence's location, used to parse periphery directives.
	Comment string
	// IsWrite marks a `ref` occurrence that assigns to its target
	// rather than reading it (spec.md §4.4.4).
	IsWrite bool
}

// Provider is the external collaborator that drives a compiler/build
// to produce an index store and yields its occurrences (spec.md §6.1).
// Implementations must be complete (every reference's ContainerUSR
// resolves to a previously emitted definition, or is empty) and stable
// (identical input yields an identical stream).
type Provider interface {
	// Records streams every occurrence for the target module set. The
	// Indexer consumes the full stream before running resolution.
	Records() ([]Record, error)
}
