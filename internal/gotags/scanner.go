package gotags

import (
	"fmt"
	"regexp"

	"github.com/bethropolis/gotags/internal/types"
)

// lineStart anchors a pattern at the start of a line. RE2's multi-line ^
// only follows '\n', so a lone '\r' is matched as well and trimmed off by
// findAtLineStart.
const lineStart = `(?:^|\r)`

// structHeaderPattern matches "type Name struct {" at a line start.
var structHeaderPattern = regexp.MustCompile(`(?m)` + lineStart + `[\t ]*type[\t ]+\w+[\t ]+struct[\t ]*\{`)

// findAtLineStart runs a pattern built on lineStart and drops the leading
// '\r' a match may carry.
func findAtLineStart(doc Document, re *regexp.Regexp, from int) (types.Span, bool) {
	m, ok := doc.Find(re, from)
	if ok && m.Begin < m.End && doc.Substr(types.Span{Begin: m.Begin, End: m.Begin + 1}) == "\r" {
		m.Begin++
	}
	return m, ok
}

type scanState int

const (
	stateNormal scanState = iota
	stateLineComment
	stateBlockComment
	stateRawString
	stateQuoted
)

func (s scanState) String() string {
	switch s {
	case stateLineComment:
		return "//"
	case stateBlockComment:
		return "/*"
	case stateRawString:
		return "`"
	case stateQuoted:
		return "quote"
	default:
		return "normal"
	}
}

// bodyScanner walks struct body text one byte at a time until it reaches the
// closing brace at nesting depth 0.
type bodyScanner struct {
	text   []byte
	pos    int
	state  scanState
	depth  int
	quote  byte // delimiter of the open quoted literal
	opened int  // offset where the open comment or literal started
}

func (s *bodyScanner) peek() byte {
	if s.pos+1 < len(s.text) {
		return s.text[s.pos+1]
	}
	return 0
}

func (s *bodyScanner) enter(state scanState) {
	s.state = state
	s.opened = s.pos
}

// closingBrace returns the offset of the struct's closing brace.
func (s *bodyScanner) closingBrace() (int, error) {
	for s.pos < len(s.text) {
		c := s.text[s.pos]
		switch s.state {
		case stateNormal:
			switch {
			case c == '/' && s.peek() == '*':
				s.enter(stateBlockComment)
				s.pos += 2
				continue
			case c == '/' && s.peek() == '/':
				s.enter(stateLineComment)
				s.pos += 2
				continue
			case c == '`':
				s.enter(stateRawString)
			case c == '"' || c == '\'':
				s.enter(stateQuoted)
				s.quote = c
			case c == '{':
				s.depth++
			case c == '}':
				if s.depth == 0 {
					return s.pos, nil
				}
				s.depth--
			}
		case stateBlockComment:
			if c == '*' && s.peek() == '/' {
				s.state = stateNormal
				s.pos += 2
				continue
			}
		case stateLineComment:
			if c == '\n' || c == '\r' {
				s.state = stateNormal
			}
		case stateRawString:
			if c == '`' {
				s.state = stateNormal
			}
		case stateQuoted:
			if c == '\\' {
				s.pos += 2
				continue
			}
			if c == s.quote {
				s.state = stateNormal
			}
		}
		s.pos++
	}

	if s.state != stateNormal {
		return -1, fmt.Errorf("%w: unfound ending of %q opened at line %d",
			ErrUnterminatedLiteral, s.state.String(), lineNumber(s.text, s.opened))
	}
	return -1, ErrMalformedStruct
}

func lineNumber(text []byte, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' || (text[i] == '\r' && (i+1 >= len(text) || text[i+1] != '\n')) {
			line++
		}
	}
	return line
}

// FindStructBody finds the first struct declared at or after from whose
// header starts no later than limit, and returns the span strictly between
// its braces. The line terminator right after the opening brace is not part
// of the body.
//
// It fails with ErrNotFound when no such struct exists, ErrUnterminatedLiteral
// when a comment or literal in the body never closes, and ErrMalformedStruct
// when the buffer ends before the closing brace.
func FindStructBody(doc Document, from, limit int) (types.Span, error) {
	header, ok := findAtLineStart(doc, structHeaderPattern, from)
	if !ok || header.Begin > limit {
		return types.Span{}, fmt.Errorf("%w in %s", ErrNotFound, types.Span{Begin: from, End: limit})
	}

	text := doc.Bytes()
	sc := &bodyScanner{text: text, pos: header.End}
	end, err := sc.closingBrace()
	if err != nil {
		if err == ErrMalformedStruct {
			return types.Span{}, fmt.Errorf("%w: no closing brace for struct at line %d",
				ErrMalformedStruct, lineNumber(text, header.Begin))
		}
		return types.Span{}, err
	}

	begin := header.End + terminatorLen(text, header.End)
	if begin > end {
		begin = end
	}
	return types.Span{Begin: begin, End: end}, nil
}

// terminatorLen returns the length of the line terminator at offset, or 0.
func terminatorLen(text []byte, offset int) int {
	if offset >= len(text) {
		return 0
	}
	switch text[offset] {
	case '\n':
		return 1
	case '\r':
		if offset+1 < len(text) && text[offset+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}
