package index

import "fmt"

// InconsistencyError reports a provider contract violation: a
// dangling container reference, or a duplicate usr with conflicting
// kinds (spec.md §7). It is fatal — the run aborts.
type InconsistencyError struct {
	Reason string
	Record Record
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("index: inconsistency (%s) at %s:%d:%d (usr=%q)", e.Reason, e.Record.File, e.Record.Line, e.Record.Column, e.Record.USR)
}

// Warning is a recoverable condition: an unresolved reference whose
// usr matches no in-graph declaration and whose kind is not a
// known-external kind. Analysis continues; the symbol is treated as
// external (spec.md §7).
type Warning struct {
	Message string
	Record  Record
}

func (w Warning) String() string {
	return fmt.Sprintf("index: warning: %s at %s:%d:%d (usr=%q)", w.Message, w.Record.File, w.Record.Line, w.Record.Column, w.Record.USR)
}
