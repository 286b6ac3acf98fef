package types

// LineEnding identifies the line terminator style of a document.
type LineEnding int

const (
	LineEndingUnix       LineEnding = iota // "\n"
	LineEndingWindows                      // "\r\n"
	LineEndingClassicMac                   // "\r"
)

// Sep returns the terminator bytes for the style.
func (le LineEnding) Sep() string {
	switch le {
	case LineEndingWindows:
		return "\r\n"
	case LineEndingClassicMac:
		return "\r"
	default:
		return "\n"
	}
}

func (le LineEnding) String() string {
	switch le {
	case LineEndingWindows:
		return "Windows"
	case LineEndingClassicMac:
		return "CR"
	default:
		return "Unix"
	}
}

// DetectLineEnding picks the style of the first terminator found in text.
// Text without any terminator is treated as Unix.
func DetectLineEnding(text []byte) LineEnding {
	for i, c := range text {
		switch c {
		case '\n':
			return LineEndingUnix
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return LineEndingWindows
			}
			return LineEndingClassicMac
		}
	}
	return LineEndingUnix
}
