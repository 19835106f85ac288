package symgraph

import "strings"

// DirectiveKind is one of the `// periphery:ignore[:...]` comment
// commands recognized by M-Comment.
type DirectiveKind string

const (
	DirectiveIgnore           DirectiveKind = "ignore"
	DirectiveIgnoreParameters DirectiveKind = "ignore:parameters"
	DirectiveIgnoreAll        DirectiveKind = "ignore:all"
)

// CommentCommand is a single parsed directive attached to a declaration.
type CommentCommand struct {
	Kind DirectiveKind
}

const directivePrefix = "periphery:"

// ParseCommentCommands extracts periphery directives from the raw
// comment text immediately preceding a declaration. Multiple
// directives may appear across multiple comment lines.
func ParseCommentCommands(rawComment string) []CommentCommand {
	var cmds []CommentCommand
	for _, line := range strings.Split(rawComment, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "//")
		line = strings.TrimPrefix(line, "/*")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, directivePrefix) {
			continue
		}
		rest := strings.TrimPrefix(line, directivePrefix)
		rest = strings.TrimSpace(rest)
		switch {
		case rest == "ignore":
			cmds = append(cmds, CommentCommand{Kind: DirectiveIgnore})
		case rest == "ignore:parameters":
			cmds = append(cmds, CommentCommand{Kind: DirectiveIgnoreParameters})
		case rest == "ignore:all":
			cmds = append(cmds, CommentCommand{Kind: DirectiveIgnoreAll})
		}
	}
	return cmds
}

// Has reports whether cmds contains a directive of the given kind.
func Has(cmds []CommentCommand, kind DirectiveKind) bool {
	for _, c := range cmds {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
