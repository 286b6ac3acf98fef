package gotags

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/types"
)

// maxFieldSteps bounds the work done on one struct body so that malformed
// input can never keep the scanner looping.
const maxFieldSteps = 1000

var blockCommentEnd = regexp.MustCompile(`\*/`)

// RewriteStructBody rewrites every field line in body with action. Each
// replacement is applied to doc as soon as it is computed. The applied
// replacements are returned in order. The returned error is only set when
// doc refuses a replacement.
func RewriteStructBody(doc Document, body types.Span, action Action) ([]Replacement, error) {
	var applied []Replacement
	begin, skip, end := body.Begin, body.Begin, body.End

	for steps := 0; begin < end; steps++ {
		if steps >= maxFieldSteps {
			logger.Warnf("gotags: giving up on struct body %s after %d steps", body, steps)
			break
		}

		line := doc.Line(begin)
		lineEnd := line.End
		if lineEnd > end {
			lineEnd = end
		}
		if begin < skip {
			begin = nextLine(doc, line, begin)
			continue
		}

		match, ok := findAtLineStart(doc, fieldLinePattern, max(skip, begin))
		if !ok {
			break
		}
		if match.Begin < lineEnd && endsDeclaration(doc, match) {
			old := doc.Substr(match)
			text := RewriteField(old, action)
			delta := len(text) - len(old)
			if text != old {
				if _, err := doc.Replace(match, text); err != nil {
					return applied, fmt.Errorf("replacing field at %s: %w", match, err)
				}
				applied = append(applied, Replacement{Span: match, Text: text})
				logger.DebugTagf("gotags", "field %q -> %q", old, text)
			}
			skip += delta
			end += delta
			begin = match.End + delta
			continue
		}

		// No field on this line. A block comment opening here hides every
		// line up to its terminator.
		open := blockCommentStart(doc.Substr(types.Span{Begin: begin, End: lineEnd}))
		if open < 0 {
			begin = nextLine(doc, line, begin)
			continue
		}
		closing, ok := doc.Find(blockCommentEnd, begin+open+2)
		if !ok {
			logger.DebugTagf("gotags", "block comment at offset %d never closes", begin+open)
			break
		}
		skip = closing.End
		begin = closing.End
	}
	return applied, nil
}

// endsDeclaration reports whether the field match is followed on its last
// line only by blanks, a comment, ';' or '}'. Lines like "Inner struct {" or
// "M map[K, V]" match the field pattern only partially and must be left alone.
func endsDeclaration(doc Document, match types.Span) bool {
	rest := doc.Substr(types.Span{Begin: match.End, End: doc.Line(match.End).End})
	rest = strings.TrimLeft(rest, "\t ")
	return rest == "" ||
		strings.HasPrefix(rest, "//") ||
		strings.HasPrefix(rest, "/*") ||
		rest[0] == ';' || rest[0] == '}'
}

// blockCommentStart returns the index of the first "/*" in line that is not
// inside a string literal, or -1. A "//" ends the search.
func blockCommentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				i++
			case c == quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '/':
			if i+1 < len(line) {
				switch line[i+1] {
				case '/':
					return -1
				case '*':
					return i
				}
			}
		}
	}
	return -1
}

// nextLine returns the offset of the line after line, always past current.
func nextLine(doc Document, line types.Span, current int) int {
	next := line.End + terminatorLen([]byte(doc.Substr(types.Span{Begin: line.End, End: line.End + 2})), 0)
	if next <= current {
		next = current + 1
	}
	return next
}
