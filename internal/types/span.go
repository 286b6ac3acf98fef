package types

import "fmt"

// Span is a half-open byte range [Begin, End) into a buffer.
// A span is only meaningful for the buffer revision it was computed against;
// after a replacement, spans beyond the edit point must be shifted by the
// replacement's length delta.
type Span struct {
	Begin int
	End   int
}

// NewSpan returns a span covering [begin, end), swapping the bounds if needed.
func NewSpan(begin, end int) Span {
	if begin > end {
		begin, end = end, begin
	}
	return Span{Begin: begin, End: end}
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Begin }

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool { return s.End <= s.Begin }

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Begin && offset < s.End
}

// Shift moves both bounds by delta.
func (s Span) Shift(delta int) Span {
	return Span{Begin: s.Begin + delta, End: s.End + delta}
}

// Adjust maps s through a replacement of [start, oldEnd) by text ending at
// newEnd. Offsets at or after oldEnd move by the length delta; offsets inside
// the replaced range are clamped to the new text.
func (s Span) Adjust(start, oldEnd, newEnd int) Span {
	move := func(off int) int {
		switch {
		case off >= oldEnd:
			return off + newEnd - oldEnd
		case off > newEnd:
			return newEnd
		}
		return off
	}
	return Span{Begin: move(s.Begin), End: move(s.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Begin, s.End)
}
