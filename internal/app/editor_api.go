package app

import (
	"fmt"

	"github.com/bethropolis/gotags/internal/buffer"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/internal/syntax"
	"github.com/bethropolis/gotags/internal/types"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the plugin.EditorAPI of an App.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer ---

func (api *appEditorAPI) GetBufferFilePath() string { return api.app.buffer.FilePath() }
func (api *appEditorAPI) IsBufferModified() bool    { return api.app.buffer.IsModified() }
func (api *appEditorAPI) GetBufferBytes() []byte    { return api.app.buffer.Bytes() }

func (api *appEditorAPI) GetBuffer() buffer.Buffer {
	return &notifyingBuffer{Buffer: api.app.buffer, events: api.app.eventManager}
}

func (api *appEditorAPI) GetSelections() []types.Span {
	return api.app.Selections()
}

func (api *appEditorAPI) GetFieldStats() (syntax.FieldStats, error) {
	return api.app.FieldStats()
}

func (api *appEditorAPI) SaveBuffer() error {
	path := api.app.buffer.FilePath()
	if path == "" {
		return fmt.Errorf("no file name")
	}
	return api.app.SaveAs(path)
}

// SaveAs writes the buffer to path.
func (a *App) SaveAs(path string) error {
	if err := a.buffer.Save(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	a.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	a.statusBar.SetTemporaryMessage("Saved %s", path)
	return nil
}

// notifyingBuffer announces every replacement on the event bus.
type notifyingBuffer struct {
	buffer.Buffer
	events *event.Manager
}

func (b *notifyingBuffer) Replace(span types.Span, text string) (types.EditInfo, error) {
	edit, err := b.Buffer.Replace(span, text)
	if err == nil {
		b.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
	}
	return edit, err
}

// --- Events ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Commands ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

func (api *appEditorAPI) ExecuteCommand(cmdline string) error {
	return api.app.Execute(cmdline)
}

// --- UI ---

func (api *appEditorAPI) ShowQuickPanel(items []string, onSelect func(index int)) {
	index := -1
	if api.app.picker != nil {
		index = api.app.picker(items, api.app.statusBar)
	} else {
		logger.Debugf("app: no quick panel available, dismissing %d item(s)", len(items))
	}
	if index >= len(items) {
		index = -1
	}
	onSelect(index)
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
