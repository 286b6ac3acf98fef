// Package gotags rewrites struct field tags inside Go source text.
//
// The package never owns the text it edits. It reads and replaces ranges of a
// host Document: struct bodies are located by a small state machine that
// skips comments, string literals and nested braces, then every field line in
// a body is re-emitted with the chosen tag key added or removed.
package gotags

import (
	"regexp"

	"github.com/bethropolis/gotags/internal/types"
)

// Document is the part of the host text buffer the rewriter needs.
// buffer.Buffer satisfies it.
type Document interface {
	Size() int
	Bytes() []byte
	Substr(span types.Span) string
	Find(re *regexp.Regexp, from int) (types.Span, bool)
	Replace(span types.Span, text string) (types.EditInfo, error)
	Line(offset int) types.Span
	LineEndings() types.LineEnding
}

// Replacement is one in-place edit. Span refers to the document revision the
// edit was applied to.
type Replacement struct {
	Span types.Span
	Text string
}

// Delta is the change in document length caused by the replacement.
func (r Replacement) Delta() int {
	return len(r.Text) - r.Span.Len()
}
