package config

import "fmt"

// Error is a ConfigurationError per spec.md §7: a fatal, user-facing
// configuration problem (missing file, invalid field). Entry-point
// filenames are only checked for being non-empty; a name that matches
// no file under the scan roots is not reported as an Error.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
