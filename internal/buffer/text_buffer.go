// internal/buffer/text_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/bethropolis/gotags/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// TextBuffer keeps the whole document as one byte slice so that every
// operation can be expressed as a byte offset.
type TextBuffer struct {
	content    []byte
	filePath   string
	modified   bool // Track if buffer has unsaved changes
	lineEnding types.LineEnding
}

// NewTextBuffer creates an empty TextBuffer.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{}
}

// FromBytes creates a buffer holding content, as if it had been loaded from filePath.
func FromBytes(filePath string, content []byte) *TextBuffer {
	tb := &TextBuffer{filePath: filePath}
	tb.setContent(content)
	return tb
}

func (tb *TextBuffer) setContent(content []byte) {
	tb.content = make([]byte, len(content))
	copy(tb.content, content)
	tb.lineEnding = types.DetectLineEnding(tb.content)
}

// Load reads a file into the buffer. Replaces existing content.
func (tb *TextBuffer) Load(filePath string) error {
	// Reset modified status on load
	tb.modified = false

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			tb.setContent(nil)
			tb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	tb.setContent(data)
	tb.filePath = filePath
	return nil
}

// Save writes the buffer content to the stored filePath.
func (tb *TextBuffer) Save(filePath string) error {
	path := tb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, tb.content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	tb.filePath = path
	tb.modified = false
	return nil
}

// Bytes returns a copy of the buffer content.
func (tb *TextBuffer) Bytes() []byte {
	out := make([]byte, len(tb.content))
	copy(out, tb.content)
	return out
}

func (tb *TextBuffer) Size() int {
	return len(tb.content)
}

func (tb *TextBuffer) FilePath() string {
	return tb.filePath
}

// IsModified returns true if the buffer has unsaved changes.
func (tb *TextBuffer) IsModified() bool {
	return tb.modified
}

func (tb *TextBuffer) LineEndings() types.LineEnding {
	return tb.lineEnding
}

// clamp keeps an offset inside [0, size].
func (tb *TextBuffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(tb.content) {
		return len(tb.content)
	}
	return offset
}

func (tb *TextBuffer) Substr(span types.Span) string {
	begin, end := tb.clamp(span.Begin), tb.clamp(span.End)
	if begin >= end {
		return ""
	}
	return string(tb.content[begin:end])
}

func (tb *TextBuffer) Find(re *regexp.Regexp, from int) (types.Span, bool) {
	if re == nil {
		return types.Span{}, false
	}
	from = tb.clamp(from)
	loc := re.FindIndex(tb.content[from:])
	if loc == nil {
		return types.Span{}, false
	}
	return types.Span{Begin: from + loc[0], End: from + loc[1]}, true
}

// Replace swaps the text covered by span for text and reports the edit.
func (tb *TextBuffer) Replace(span types.Span, text string) (types.EditInfo, error) {
	if span.Begin < 0 || span.End > len(tb.content) || span.Begin > span.End {
		return types.EditInfo{}, fmt.Errorf("invalid replace range %s (buffer size %d)", span, len(tb.content))
	}

	startPoint := tb.pointAt(span.Begin)
	oldEndPoint := tb.pointAt(span.End)

	newContent := make([]byte, 0, len(tb.content)-span.Len()+len(text))
	newContent = append(newContent, tb.content[:span.Begin]...)
	newContent = append(newContent, text...)
	newContent = append(newContent, tb.content[span.End:]...)
	tb.content = newContent
	tb.modified = true

	newEnd := span.Begin + len(text)
	return types.EditInfo{
		StartIndex:     uint32(span.Begin),
		OldEndIndex:    uint32(span.End),
		NewEndIndex:    uint32(newEnd),
		StartPosition:  startPoint,
		OldEndPosition: oldEndPoint,
		NewEndPosition: tb.pointAt(newEnd),
	}, nil
}

// pointAt computes a tree-sitter point (row, byte column) for offset.
func (tb *TextBuffer) pointAt(offset int) sitter.Point {
	offset = tb.clamp(offset)
	head := tb.content[:offset]
	row := bytes.Count(head, []byte("\n"))
	col := offset - (bytes.LastIndexByte(head, '\n') + 1)
	return sitter.Point{Row: uint32(row), Column: uint32(col)}
}

func isLineTerminator(c byte) bool {
	return c == '\n' || c == '\r'
}

func (tb *TextBuffer) Line(offset int) types.Span {
	offset = tb.clamp(offset)
	begin := offset
	for begin > 0 && !isLineTerminator(tb.content[begin-1]) {
		begin--
	}
	end := offset
	for end < len(tb.content) && !isLineTerminator(tb.content[end]) {
		end++
	}
	return types.Span{Begin: begin, End: end}
}

// lineStarts returns the offset of every line start. "\r\n" counts as one terminator.
func (tb *TextBuffer) lineStarts() []int {
	starts := []int{0}
	for i := 0; i < len(tb.content); i++ {
		switch tb.content[i] {
		case '\r':
			if i+1 < len(tb.content) && tb.content[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position converts a byte offset into a line and rune column.
func (tb *TextBuffer) Position(offset int) types.Position {
	offset = tb.clamp(offset)
	starts := tb.lineStarts()
	line := 0
	for line+1 < len(starts) && starts[line+1] <= offset {
		line++
	}
	col := utf8.RuneCount(tb.content[starts[line]:offset])
	return types.Position{Line: line, Col: col}
}

// Offset converts a position into a byte offset, clamping out-of-range lines and columns.
func (tb *TextBuffer) Offset(pos types.Position) int {
	starts := tb.lineStarts()
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(starts) {
		return len(tb.content)
	}
	line := tb.Line(starts[pos.Line])
	offset := line.Begin
	for col := 0; col < pos.Col && offset < line.End; col++ {
		_, size := utf8.DecodeRune(tb.content[offset:line.End])
		offset += size
	}
	return offset
}

// Ensure TextBuffer satisfies the Buffer interface
var _ Buffer = (*TextBuffer)(nil)
