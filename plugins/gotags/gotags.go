// Package gotags is the plugin that exposes the struct tag actions as
// commands.
package gotags

import (
	"fmt"
	"log/slog"

	"github.com/bethropolis/gotags/internal/config"
	"github.com/bethropolis/gotags/internal/event"
	"github.com/bethropolis/gotags/internal/gotags"
	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/internal/syntax"
)

var _ plugin.Plugin = (*GoTags)(nil)

const (
	Name = "gotags"

	MenuCommand  = "gotags"
	ApplyCommand = "gotags-apply"

	errorPrefix = "GoTags Error:"
)

// GoTags registers the tag menu and the direct apply command.
type GoTags struct {
	api     plugin.EditorAPI
	debug   bool
	ormKey  string
	types   *gotags.TypeMap
	actions []gotags.Action
}

// New creates the plugin.
func New() plugin.Plugin {
	return &GoTags{ormKey: config.DefaultORMTag}
}

func (p *GoTags) Name() string { return Name }

// Initialize reads [plugins.gotags] and registers the commands.
func (p *GoTags) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if v, ok := api.GetPluginConfigValue(Name, "debug"); ok {
		if b, isBool := v.(bool); isBool {
			p.debug = b
		} else {
			logger.Warnf("%s: invalid type for 'debug' config (%T), using default (%v)", Name, v, p.debug)
		}
	}
	if p.debug && logger.Level() > slog.LevelDebug {
		logger.SetLevel(slog.LevelDebug)
	}
	if v, ok := api.GetPluginConfigValue(Name, "orm_tag"); ok {
		if s, isStr := v.(string); isStr && s != "" {
			p.ormKey = s
		} else {
			logger.Warnf("%s: invalid 'orm_tag' config (%v), using default (%s)", Name, v, p.ormKey)
		}
	}

	p.types = gotags.NewTypeMap(p.loadTypes)
	p.actions = gotags.NewActions(p.ormKey, p.types)

	if err := api.RegisterCommand(MenuCommand, p.menu); err != nil {
		return fmt.Errorf("registering '%s': %w", MenuCommand, err)
	}
	if err := api.RegisterCommand(ApplyCommand, p.apply); err != nil {
		return fmt.Errorf("registering '%s': %w", ApplyCommand, err)
	}
	logger.Debugf("%s: initialized with orm key %q", Name, p.ormKey)
	return nil
}

func (p *GoTags) Shutdown() error { return nil }

// Actions returns the available actions in menu order.
func (p *GoTags) Actions() []gotags.Action {
	return p.actions
}

// loadTypes reads [plugins.gotags.orm_types]. Non-string values are skipped.
func (p *GoTags) loadTypes() map[string]string {
	types := make(map[string]string)
	v, ok := p.api.GetPluginConfigValue(Name, "orm_types")
	if !ok {
		return types
	}
	table, ok := v.(map[string]interface{})
	if !ok {
		logger.Warnf("%s: 'orm_types' must be a table, got %T", Name, v)
		return types
	}
	for goTypes, column := range table {
		s, isStr := column.(string)
		if !isStr {
			logger.Warnf("%s: orm type %q maps to %T, want string", Name, goTypes, column)
			continue
		}
		types[goTypes] = s
	}
	return types
}

func (p *GoTags) tracef(format string, args ...interface{}) {
	if p.debug {
		logger.DebugTagf(Name, format, args...)
	}
}

// checkDocument refuses buffers that are not Go source.
func (p *GoTags) checkDocument() error {
	path := p.api.GetBufferFilePath()
	if !syntax.IsGo(path) {
		return fmt.Errorf("%w: %s", gotags.ErrUnsupportedDocument, path)
	}
	return nil
}

// menu shows the action list and runs the picked action.
func (p *GoTags) menu(_ []string) error {
	if err := p.checkDocument(); err != nil {
		p.refuse(err)
		return nil
	}
	labels := make([]string, len(p.actions))
	for i, a := range p.actions {
		labels[i] = a.Label
	}
	p.api.ShowQuickPanel(labels, func(index int) {
		if index < 0 || index >= len(p.actions) {
			p.tracef("menu dismissed")
			return
		}
		p.run(p.actions[index])
	})
	return nil
}

// apply runs the action named by the single argument, e.g. "json-add".
func (p *GoTags) apply(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <action>", ApplyCommand)
	}
	a, ok := gotags.FindAction(p.actions, args[0])
	if !ok {
		return fmt.Errorf("unknown action %q", args[0])
	}
	if err := p.checkDocument(); err != nil {
		p.refuse(err)
		return nil
	}
	p.run(a)
	return nil
}

func (p *GoTags) refuse(err error) {
	p.api.SetStatusMessage("%s GoTags works only in .go file", errorPrefix)
	p.api.DispatchEvent(event.TypeTagsRewritten, event.TagsRewrittenData{Errors: []error{err}})
}

// run applies a to the current selections.
func (p *GoTags) run(a gotags.Action) {
	doc := p.api.GetBuffer()
	p.tracef("line endings: %s", doc.LineEndings())

	res := gotags.NewRewriter(doc, a).Run(p.api.GetSelections())
	for _, body := range res.Bodies {
		p.tracef("struct body %s at %s", body, doc.Position(body.Begin))
	}

	switch {
	case len(res.Errors) > 1:
		p.api.SetStatusMessage("%s %v (and %d more)", errorPrefix, res.Errors[0], len(res.Errors)-1)
	case len(res.Errors) == 1:
		p.api.SetStatusMessage("%s %v", errorPrefix, res.Errors[0])
	case len(res.Bodies) == 0:
		p.api.SetStatusMessage("GoTags: no struct in selection")
	case !res.Changed():
		p.api.SetStatusMessage("GoTags: %s, nothing to change", a.Label)
	default:
		p.api.SetStatusMessage("GoTags: %s, %d field(s) in %d struct(s)", a.Label, len(res.Replacements), len(res.Bodies))
	}

	p.api.DispatchEvent(event.TypeTagsRewritten, event.TagsRewrittenData{
		Action:       a.ID,
		Bodies:       len(res.Bodies),
		Replacements: len(res.Replacements),
		Errors:       res.Errors,
	})
}
