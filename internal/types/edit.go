package types

import sitter "github.com/smacker/go-tree-sitter"

// EditInfo encapsulates the information needed for tree-sitter's Edit function.
type EditInfo struct {
	StartIndex     uint32       // Start byte of the edit
	OldEndIndex    uint32       // End byte of the old text
	NewEndIndex    uint32       // End byte of the new text
	StartPosition  sitter.Point // Start position (row, column)
	OldEndPosition sitter.Point // Old end position
	NewEndPosition sitter.Point // New end position
}

// Delta returns how many bytes the edit added (negative when it removed text).
func (e EditInfo) Delta() int {
	return int(e.NewEndIndex) - int(e.OldEndIndex)
}

// Input converts the edit into the form tree-sitter's Tree.Edit expects.
func (e EditInfo) Input() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}
