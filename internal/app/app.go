// Package app wires the buffer, plugins, commands and status line into a
// headless editor session over one file.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/gotags/internal/buffer"
	"github.com/bethropolis/gotags/internal/commands"
	"github.com/bethropolis/gotags/internal/config"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/internal/statusbar"
	"github.com/bethropolis/gotags/internal/syntax"
	"github.com/bethropolis/gotags/internal/syntax/lang"
	"github.com/bethropolis/gotags/internal/types"
)

const parseTimeout = 3 * time.Second

// Picker asks the user to choose one of items and returns its index, or -1.
// status is the session's status line, for pickers that draw it.
type Picker func(items []string, status *statusbar.StatusBar) int

// Options configures a new App.
type Options struct {
	FilePath string
	Config   *config.Config // defaults when nil
	Picker   Picker         // the quick panel is dismissed when nil
	Plugins  []func() plugin.Plugin
}

// App is one editing session.
type App struct {
	buffer        *buffer.TextBuffer
	selections    []types.Span
	cfg           *config.Config
	picker        Picker
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	commands      *commands.Registry
	editorAPI     *appEditorAPI
	checker       *syntax.Checker
	syntaxErrors  int
}

// NewApp loads opts.FilePath and initializes plugins. A missing file gives
// an empty buffer.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	buf := buffer.NewTextBuffer()
	if err := buf.Load(opts.FilePath); err != nil {
		return nil, fmt.Errorf("loading %s: %w", opts.FilePath, err)
	}

	a := &App{
		buffer:        buf,
		cfg:           cfg,
		picker:        opts.Picker,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  event.NewManager(),
		pluginManager: plugin.NewManager(),
		commands:      commands.NewRegistry(),
	}
	a.editorAPI = newEditorAPI(a)

	syntax.RegisterLanguages()
	if syntax.IsGo(opts.FilePath) {
		a.checker = syntax.NewChecker(lang.GetForFile(opts.FilePath))
		a.syntaxErrors = a.checkSyntax()
	}

	a.subscribeCore()
	registerAppCommands(a)

	constructors := opts.Plugins
	if constructors == nil {
		constructors = defaultPlugins
	}
	if err := registerPlugins(a.pluginManager, constructors); err != nil {
		logger.Warnf("app: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("app: %v", err)
	}

	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{
		FilePath:    buf.FilePath(),
		LineEndings: buf.LineEndings(),
	})
	a.eventManager.Dispatch(event.TypeAppReady, nil)
	return a, nil
}

// Close shuts plugins down and releases the parser.
func (a *App) Close() {
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	a.pluginManager.ShutdownPlugins()
	if a.checker != nil {
		a.checker.Close()
	}
}

// Buffer returns the session buffer.
func (a *App) Buffer() *buffer.TextBuffer { return a.buffer }

// StatusBar returns the status line.
func (a *App) StatusBar() *statusbar.StatusBar { return a.statusBar }

// API returns the plugin-facing API of the session.
func (a *App) API() plugin.EditorAPI { return a.editorAPI }

// Subscribe forwards to the session's event bus.
func (a *App) Subscribe(eventType event.Type, handler event.Handler) {
	a.eventManager.Subscribe(eventType, handler)
}

// SetSelections replaces the selections. An empty list selects everything.
func (a *App) SetSelections(spans []types.Span) {
	a.selections = append([]types.Span(nil), spans...)
}

// SelectLines selects whole lines. Ranges are 1-based and inclusive.
func (a *App) SelectLines(ranges [][2]int) {
	spans := make([]types.Span, 0, len(ranges))
	for _, r := range ranges {
		begin := a.buffer.Offset(types.Position{Line: r[0] - 1})
		end := a.buffer.Line(a.buffer.Offset(types.Position{Line: r[1] - 1})).End
		spans = append(spans, types.NewSpan(begin, end))
	}
	a.SetSelections(spans)
}

// SelectedText returns the text of every selection, joined with the
// buffer's line separator.
func (a *App) SelectedText() string {
	text := ""
	for i, s := range a.Selections() {
		if i > 0 {
			text += a.buffer.LineEndings().Sep()
		}
		text += a.buffer.Substr(s)
	}
	return text
}

// Selections returns the current selections, or the whole buffer.
func (a *App) Selections() []types.Span {
	if len(a.selections) == 0 {
		return []types.Span{{Begin: 0, End: a.buffer.Size()}}
	}
	return append([]types.Span(nil), a.selections...)
}

// Execute runs a command line such as "gotags-apply json-add". Failures are
// also shown on the status line.
func (a *App) Execute(cmdline string) error {
	name, args, _ := commands.Parse(cmdline)
	err := a.commands.Execute(cmdline)
	var cmdErr *commands.Error
	switch {
	case err == nil:
	case errors.As(err, &cmdErr):
		a.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, cmdErr.Err)
	case errors.Is(err, commands.ErrUnknownCommand):
		a.statusBar.SetTemporaryMessage("Unknown command: %s", name)
	default:
		a.statusBar.ResetTemporaryMessage()
	}
	a.eventManager.Dispatch(event.TypeCommandExecuted, event.CommandExecutedData{Name: name, Args: args, Err: err})
	a.verifySyntax()
	return err
}

// SyntaxErrors returns the number of syntax errors last seen in the buffer.
func (a *App) SyntaxErrors() int {
	return a.syntaxErrors
}

// FieldStats counts struct fields in the buffer as last parsed.
func (a *App) FieldStats() (syntax.FieldStats, error) {
	if a.checker == nil {
		return syntax.FieldStats{}, fmt.Errorf("no parser for %s", a.buffer.FilePath())
	}
	return a.checker.Fields()
}

// checkSyntax reparses the buffer and returns its error count, or -1 when
// parsing failed.
func (a *App) checkSyntax() int {
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()
	if err := a.checker.Parse(ctx, a.buffer.Bytes()); err != nil {
		logger.Warnf("app: %v", err)
		return -1
	}
	errs, err := a.checker.Errors()
	if err != nil {
		logger.Warnf("app: %v", err)
		return -1
	}
	if len(errs) > 0 {
		logger.DebugTagf("syntax", "%s: %d syntax error(s), first at %s", a.buffer.FilePath(), len(errs), errs[0])
	}
	return len(errs)
}

// verifySyntax warns when an edit left more syntax errors than before.
func (a *App) verifySyntax() {
	if a.checker == nil || !a.buffer.IsModified() {
		return
	}
	before := a.syntaxErrors
	after := a.checkSyntax()
	if after < 0 {
		return
	}
	a.syntaxErrors = after
	if before >= 0 && after > before {
		logger.Warnf("app: %s has %d new syntax error(s) after the last command", a.buffer.FilePath(), after-before)
		a.statusBar.SetTemporaryMessage("Warning: %d new syntax error(s) after rewrite", after-before)
	}
}
