// Package plugin defines what plugins see of the host and how they are
// loaded.
package plugin

import (
	"github.com/bethropolis/gotags/internal/buffer"
	"github.com/bethropolis/gotags/internal/commands"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/syntax"
	"github.com/bethropolis/gotags/internal/types"
)

// CommandFunc is the signature of commands registered by plugins.
type CommandFunc = commands.Func

// EditorAPI is the controlled surface plugins use to work with the host.
type EditorAPI interface {
	// --- Buffer ---
	GetBufferFilePath() string
	IsBufferModified() bool
	GetBufferBytes() []byte
	// GetBuffer returns the active buffer. Replacements made through it are
	// announced as TypeBufferModified events.
	GetBuffer() buffer.Buffer
	// GetSelections returns the selected spans in buffer order. With no
	// explicit selection the whole buffer is selected.
	GetSelections() []types.Span
	SaveBuffer() error
	// GetFieldStats counts struct fields in the buffer as last parsed.
	GetFieldStats() (syntax.FieldStats, error)

	// --- Events ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Commands ---
	RegisterCommand(name string, cmdFunc CommandFunc) error
	ExecuteCommand(cmdline string) error

	// --- UI ---
	// ShowQuickPanel offers items to the user. onSelect receives the chosen
	// index, or -1 when the panel was dismissed.
	ShowQuickPanel(items []string, onSelect func(index int))
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name is the unique plugin identifier, also its config table name.
	Name() string

	// Initialize is called once with the host API. Plugins register their
	// commands and subscriptions here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the host exits.
	Shutdown() error
}
