package event

import (
	"github.com/bethropolis/gotags/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferLoaded   // a file was read into the buffer
	TypeBufferModified // a replacement was applied
	TypeBufferSaved    // the buffer was written back

	TypeCommandExecuted // a named command finished, successfully or not
	TypeTagsRewritten   // a tag action finished on the buffer

	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeBufferLoaded:
		return "BufferLoaded"
	case TypeBufferModified:
		return "BufferModified"
	case TypeBufferSaved:
		return "BufferSaved"
	case TypeCommandExecuted:
		return "CommandExecuted"
	case TypeTagsRewritten:
		return "TagsRewritten"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	default:
		return "Unknown"
	}
}

// Event is what travels through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferLoadedData is sent with TypeBufferLoaded.
type BufferLoadedData struct {
	FilePath    string
	LineEndings types.LineEnding
}

// BufferModifiedData carries the edit for incremental reparsing.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferSavedData is sent with TypeBufferSaved.
type BufferSavedData struct {
	FilePath string
}

// CommandExecutedData reports the outcome of a command line.
type CommandExecutedData struct {
	Name string
	Args []string
	Err  error
}

// TagsRewrittenData summarizes one tag action.
type TagsRewrittenData struct {
	Action       string
	Bodies       int
	Replacements int
	Errors       []error
}
