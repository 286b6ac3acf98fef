// internal/buffer/buffer.go
package buffer

import (
	"regexp"

	"github.com/bethropolis/gotags/internal/types"
)

// Buffer defines the host text buffer: byte-addressed reads, pattern search
// and in-place replacement.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Bytes() []byte
	Size() int
	FilePath() string
	IsModified() bool
	LineEndings() types.LineEnding

	// Substr returns the text covered by span, clamped to the buffer.
	Substr(span types.Span) string
	// Find returns the leftmost match of re in the text from offset `from`.
	// The search input starts at `from`, so `^` also matches there.
	Find(re *regexp.Regexp, from int) (types.Span, bool)
	// Replace swaps the text covered by span for text.
	Replace(span types.Span, text string) (types.EditInfo, error)
	// Line returns the line containing offset, without its terminator.
	Line(offset int) types.Span

	Position(offset int) types.Position
	Offset(pos types.Position) int
}
