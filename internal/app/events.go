package app

import (
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/logger"
)

func (a *App) subscribeCore() {
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferChangeForStatus)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferChangeForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferChangeForStatus)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForSyntax)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModifiedForSelections)
}

// handleBufferChangeForStatus refreshes the file info on the status line.
func (a *App) handleBufferChangeForStatus(event.Event) bool {
	a.statusBar.SetFileInfo(a.buffer.FilePath(), a.buffer.IsModified())
	return false
}

// handleBufferModifiedForSyntax feeds edits to the incremental parser.
func (a *App) handleBufferModifiedForSyntax(e event.Event) bool {
	if a.checker == nil {
		return false
	}
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.checker.Edit(data.Edit)
	} else {
		logger.Warnf("app: unexpected BufferModified payload %T", e.Data)
	}
	return false
}

// handleBufferModifiedForSelections keeps selections on the same text after
// a replacement.
func (a *App) handleBufferModifiedForSelections(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		return false
	}
	edit := data.Edit
	for i, s := range a.selections {
		a.selections[i] = s.Adjust(int(edit.StartIndex), int(edit.OldEndIndex), int(edit.NewEndIndex))
	}
	return false
}
