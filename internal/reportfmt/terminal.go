package reportfmt

import (
	"fmt"
	"io"

	"github.com/QuentinArnault/periphery/internal/result"
)

// WriteTerminal renders r as a styled, human-readable report to w.
func WriteTerminal(w io.Writer, r *result.Result) {
	s := NewStyles()

	total := len(r.UnreferencedDeclarations) + len(r.UnusedParameters) + len(r.AssignOnlyProperties)
	fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("reap: %d finding(s)", total)))

	writeSection(w, s, "Unreferenced declarations", r.UnreferencedDeclarations)
	writeSection(w, s, "Unused parameters", r.UnusedParameters)
	writeSection(w, s, "Assign-only properties", r.AssignOnlyProperties)

	if total == 0 {
		fmt.Fprintln(w, s.Muted.Render("no dead code found"))
	}
}

func writeSection(w io.Writer, s Styles, title string, items []result.Item) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, s.Section.Render(fmt.Sprintf("%s (%s)", title, s.Count.Render(fmt.Sprintf("%d", len(items))))))
	for _, it := range items {
		loc := s.Location.Render(fmt.Sprintf("%s:%d:%d", it.Location.File, it.Location.Line, it.Location.Column))
		kind := s.Kind.Render(string(it.Kind))
		name := s.Name.Render(it.Name)
		reason := s.Reason.Render(string(it.Reason))
		fmt.Fprintf(w, "  %s  %s %s  %s\n", loc, kind, name, reason)
	}
}
