// Package tui wraps the tcell screen and provides the quick panel picker.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a TUI on the real terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initializes s and wraps it. Tests pass a SimulationScreen.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	return &TUI{screen: s}, nil
}

// Close finalizes the screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }
func (t *TUI) Clear()                 { t.screen.Clear() }
func (t *TUI) Show()                  { t.screen.Show() }
func (t *TUI) Size() (int, int)       { return t.screen.Size() }

// GetScreen provides direct access to the screen.
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
