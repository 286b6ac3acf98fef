// Package tagstats reports how many struct fields in the buffer carry tags.
package tagstats

import (
	"bytes"
	"fmt"

	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/internal/syntax"
)

const (
	Name    = "tagstats"
	Command = "tagstats"
)

var _ plugin.Plugin = (*TagStats)(nil)

// TagStats counts fields, tagged fields and lines in Go buffers.
type TagStats struct {
	api plugin.EditorAPI
}

// New creates the plugin.
func New() plugin.Plugin {
	return &TagStats{}
}

func (p *TagStats) Name() string { return Name }

// Initialize registers the tagstats command.
func (p *TagStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand(Command, p.execute); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", Command, err)
	}
	return nil
}

func (p *TagStats) Shutdown() error { return nil }

func (p *TagStats) execute(_ []string) error {
	if p.api == nil {
		return fmt.Errorf("%s plugin not initialized with API", Name)
	}
	path := p.api.GetBufferFilePath()
	if !syntax.IsGo(path) {
		return fmt.Errorf("no field statistics for %s", path)
	}

	stats, err := p.api.GetFieldStats()
	if err != nil {
		return err
	}
	src := p.api.GetBufferBytes()
	lines := bytes.Count(src, []byte("\n"))
	if len(src) > 0 && src[len(src)-1] != '\n' {
		lines++
	}
	logger.DebugTagf(Name, "%s: %+v", path, stats)
	p.api.SetStatusMessage("Lines: %d, Fields: %d, Tagged: %d, Untagged: %d", lines, stats.Fields, stats.Tagged, stats.Fields-stats.Tagged)
	return nil
}
