// Package lang maps file names to tree-sitter languages.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Language is a registered source language.
type Language struct {
	// Name is the display name, e.g. "Go".
	Name string

	// TreeSitterLang is the grammar used for parsing.
	TreeSitterLang *sitter.Language

	// Extensions are the file extensions, with the dot, mapped to this language.
	Extensions []string

	// FieldQuery captures struct field declarations as @field and their tag
	// literals as @tag. Empty when the language has no struct tags.
	FieldQuery string
}
