// Package statusbar keeps the status line state: file info and short-lived
// messages.
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gotags/internal/config"
	"github.com/bethropolis/gotags/internal/tui"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleError     tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides the default styles and timeout.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		StyleError:     tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed).Bold(true),
		MessageTimeout: config.MessageTimeout,
	}
}

// StatusBar is the status line.
type StatusBar struct {
	config Config
	mu     sync.Mutex
	now    func() time.Time

	filePath   string
	isModified bool

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetFileInfo updates the file shown when no message is active.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetTemporaryMessage shows a message until MessageTimeout elapses.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears the message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.clearLocked()
}

func (sb *StatusBar) clearLocked() {
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// messageLocked returns the active message, expiring a stale one.
func (sb *StatusBar) messageLocked() (string, bool) {
	if sb.tempMessageTime.IsZero() {
		return "", false
	}
	if sb.now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.clearLocked()
		return "", false
	}
	return sb.tempMessage, true
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.messageLocked()
}

// Drain returns the active message and clears it.
func (sb *StatusBar) Drain() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	msg, ok := sb.messageLocked()
	sb.clearLocked()
	return msg, ok
}

// Text returns what the status line currently shows.
func (sb *StatusBar) Text() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	text, _ := sb.textLocked()
	return text
}

func (sb *StatusBar) textLocked() (string, tcell.Style) {
	if msg, ok := sb.messageLocked(); ok {
		if strings.Contains(msg, "Error") {
			return msg, sb.config.StyleError
		}
		return msg, sb.config.StyleMessage
	}

	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	if sb.isModified {
		return path + " [Modified]", sb.config.StyleModified
	}
	return path, sb.config.StyleDefault
}

// Draw renders the status line on the last row of screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - config.StatusBarHeight

	sb.mu.Lock()
	text, style := sb.textLocked()
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	tui.DrawText(screen, 0, y, width, text, style)
}
