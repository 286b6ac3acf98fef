package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gotags/internal/config"
)

// Footer draws itself on the bottom rows of a screen of the given size.
type Footer interface {
	Draw(screen tcell.Screen, width, height int)
}

// QuickPanel is a modal list picker. Keys: Up/Down or k/j move, Enter
// picks, 1-9 pick directly, Esc or q dismiss.
type QuickPanel struct {
	Title    string
	Items    []string
	Selected int
	Footer   Footer // drawn on the last rows when set

	StyleTitle    tcell.Style
	StyleItem     tcell.Style
	StyleSelected tcell.Style
}

// NewQuickPanel creates a panel over items.
func NewQuickPanel(title string, items []string) *QuickPanel {
	return &QuickPanel{
		Title:         title,
		Items:         items,
		StyleTitle:    tcell.StyleDefault.Bold(true),
		StyleItem:     tcell.StyleDefault,
		StyleSelected: tcell.StyleDefault.Reverse(true),
	}
}

// HandleKey applies one key. done is true once the panel closed, and index
// is then the pick or -1.
func (qp *QuickPanel) HandleKey(ev *tcell.EventKey) (index int, done bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		qp.move(-1)
	case tcell.KeyDown, tcell.KeyTab:
		qp.move(1)
	case tcell.KeyEnter:
		if len(qp.Items) == 0 {
			return -1, true
		}
		return qp.Selected, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return -1, true
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'k':
			qp.move(-1)
		case r == 'j':
			qp.move(1)
		case r == 'q':
			return -1, true
		case r >= '1' && r <= '9':
			if i := int(r - '1'); i < len(qp.Items) {
				qp.Selected = i
				return i, true
			}
		}
	}
	return -1, false
}

func (qp *QuickPanel) move(step int) {
	if len(qp.Items) == 0 {
		return
	}
	qp.Selected = (qp.Selected + step + len(qp.Items)) % len(qp.Items)
}

// Draw renders the panel from the top-left corner of screen.
func (qp *QuickPanel) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}
	rows := height
	if qp.Footer != nil {
		rows -= config.StatusBarHeight
	}
	DrawText(screen, 0, 0, width, qp.Title, qp.StyleTitle)
	for i, item := range qp.Items {
		y := i + 1
		if y >= rows {
			break
		}
		style := qp.StyleItem
		if i == qp.Selected {
			style = qp.StyleSelected
			FillRow(screen, 0, y, width, style)
		}
		DrawText(screen, 0, y, width, fmt.Sprintf(" %d. %s", i+1, item), style)
	}
	if qp.Footer != nil {
		qp.Footer.Draw(screen, width, height)
	}
}

// Run shows the panel on t until the user picks or dismisses it. It
// returns the picked index or -1.
func (qp *QuickPanel) Run(t *TUI) int {
	for {
		qp.Draw(t.screen)
		t.Show()
		switch ev := t.PollEvent().(type) {
		case nil:
			return -1
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if index, done := qp.HandleKey(ev); done {
				return index
			}
		}
	}
}

// Pick runs a quick panel on the real terminal. footer may be nil.
func Pick(title string, items []string, footer Footer) (int, error) {
	t, err := New()
	if err != nil {
		return -1, err
	}
	defer t.Close()
	qp := NewQuickPanel(title, items)
	qp.Footer = footer
	return qp.Run(t), nil
}
