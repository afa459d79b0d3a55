// Package errors defines the structured error types reported by the
// go-xj readers.
package errors

import "fmt"

// Input format names used in error messages.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// A SyntaxError reports input that does not match the restricted grammar.
// Offset is a byte offset into the normalized (single-line) input text;
// Fragment is a short excerpt starting at the offense.
type SyntaxError struct {
	Format   string
	Offset   int
	Fragment string
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("xj: %s syntax error at offset %d: %s", e.Format, e.Offset, e.Msg)
	}
	return fmt.Sprintf("xj: %s syntax error at offset %d: %s (near %q)", e.Format, e.Offset, e.Msg, e.Fragment)
}

// Syntax builds a SyntaxError for the given format, clipping the fragment
// to a readable length.
func Syntax(format string, offset int, fragment, msg string) *SyntaxError {
	const maxFragment = 24
	if len(fragment) > maxFragment {
		fragment = fragment[:maxFragment]
	}
	return &SyntaxError{Format: format, Offset: offset, Fragment: fragment, Msg: msg}
}
