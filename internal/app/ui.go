package app

import (
	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/statusbar"
	"github.com/bethropolis/gotags/internal/tui"
)

// TerminalPicker shows items in a full-screen quick panel titled title, with
// the status line on the bottom row.
func TerminalPicker(title string) Picker {
	return func(items []string, status *statusbar.StatusBar) int {
		var footer tui.Footer
		if status != nil {
			footer = status
		}
		index, err := tui.Pick(title, items, footer)
		if err != nil {
			logger.Errorf("app: quick panel: %v", err)
			return -1
		}
		return index
	}
}
