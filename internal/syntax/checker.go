// Package syntax keeps a tree-sitter tree in step with a buffer and reports
// syntax errors and struct field statistics.
package syntax

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/syntax/lang"
	"github.com/bethropolis/gotags/internal/types"
)

var ErrNotParsed = errors.New("source not parsed")

// FieldStats counts struct field declarations in a tree.
type FieldStats struct {
	Fields int
	Tagged int
}

// Checker parses one document and reparses it incrementally after edits.
type Checker struct {
	parser *sitter.Parser
	lang   *lang.Language
	tree   *sitter.Tree
}

// NewChecker creates a checker for l.
func NewChecker(l *lang.Language) *Checker {
	parser := sitter.NewParser()
	parser.SetLanguage(l.TreeSitterLang)
	return &Checker{parser: parser, lang: l}
}

// Language returns the checker's language.
func (c *Checker) Language() *lang.Language {
	return c.lang
}

// Parse parses source. When a previous tree exists and has been edited,
// unchanged subtrees are reused.
func (c *Checker) Parse(ctx context.Context, source []byte) error {
	tree, err := c.parser.ParseCtx(ctx, c.tree, source)
	if err != nil {
		return fmt.Errorf("parsing %s source: %w", c.lang.Name, err)
	}
	if c.tree != nil {
		c.tree.Close()
	}
	c.tree = tree
	return nil
}

// Edit records a buffer edit on the current tree so the next Parse is
// incremental. Without a tree it does nothing.
func (c *Checker) Edit(edit types.EditInfo) {
	if c.tree == nil {
		return
	}
	c.tree.Edit(edit.Input())
	logger.DebugTagf("syntax", "tree edit %d..%d -> %d", edit.StartIndex, edit.OldEndIndex, edit.NewEndIndex)
}

// Errors returns the start of every error or missing node. Columns are
// byte offsets within the line.
func (c *Checker) Errors() ([]types.Position, error) {
	if c.tree == nil {
		return nil, ErrNotParsed
	}
	var out []types.Position
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" || n.IsMissing() {
			p := n.StartPoint()
			out = append(out, types.Position{Line: int(p.Row), Col: int(p.Column)})
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(c.tree.RootNode())
	return out, nil
}

// Fields counts field declarations and tagged fields.
func (c *Checker) Fields() (FieldStats, error) {
	var stats FieldStats
	if c.tree == nil {
		return stats, ErrNotParsed
	}
	if c.lang.FieldQuery == "" {
		return stats, nil
	}
	q, err := sitter.NewQuery([]byte(c.lang.FieldQuery), c.lang.TreeSitterLang)
	if err != nil {
		return stats, fmt.Errorf("compiling field query: %w", err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, c.tree.RootNode())
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			switch q.CaptureNameForId(capture.Index) {
			case "field":
				stats.Fields++
			case "tag":
				stats.Tagged++
			}
		}
	}
	return stats, nil
}

// Close releases the tree and parser.
func (c *Checker) Close() {
	if c.tree != nil {
		c.tree.Close()
		c.tree = nil
	}
	c.parser.Close()
}
